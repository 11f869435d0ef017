package handlers

import (
	"errors"
	"nanum-admin/backend/models"
	"nanum-admin/backend/services"
	"nanum-admin/backend/system"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// groupTargets scopes a query to the live targets of group, newest first
func (h *Handler) groupTargets(group models.Group) *gorm.DB {
	return h.DB.Where("group_id = ?", group.ID).Order("created_at DESC, id DESC")
}

func (h *Handler) ownedTarget(c *fiber.Ctx) (models.Group, models.Target, error) {
	var target models.Target
	group, err := h.ownedGroup(c)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return group, target, fiber.NewError(fiber.StatusNotFound, msgGroupNotFound)
		}
		return group, target, err
	}
	id, ok := paramID(c, "targetId")
	if !ok {
		return group, target, fiber.NewError(fiber.StatusNotFound, msgTargetMissing)
	}
	if err := h.DB.Where("id = ? AND group_id = ?", id, group.ID).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return group, target, fiber.NewError(fiber.StatusNotFound, msgTargetMissing)
		}
		return group, target, err
	}
	return group, target, nil
}

func lookupFailed(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fail(c, fe.Code, fe.Message)
	}
	system.Error("Failed to load target: %v", err)
	return fail(c, fiber.StatusInternalServerError, msgServerError)
}

// GetTargets - List a group's recipients
func (h *Handler) GetTargets(c *fiber.Ctx) error {
	group, err := h.ownedGroup(c)
	if err != nil {
		return h.groupLookupFailed(c, err, msgGroupNotFound)
	}
	var targets []models.Target
	if err := h.groupTargets(group).Find(&targets).Error; err != nil {
		system.Error("Failed to list targets of group %d: %v", group.ID, err)
		return fail(c, fiber.StatusInternalServerError, msgServerError)
	}
	return respond(c, fiber.StatusOK, models.TargetViews(targets), "")
}

// SearchTargets - Match q against name, mobile phone or office phone
func (h *Handler) SearchTargets(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return fail(c, fiber.StatusBadRequest, "검색어를 입력해주세요.")
	}
	group, err := h.ownedGroup(c)
	if err != nil {
		return h.groupLookupFailed(c, err, msgGroupNotFound)
	}

	// phones are stored without hyphens
	pattern := "%" + q + "%"
	phonePattern := "%" + strings.ReplaceAll(q, "-", "") + "%"
	var targets []models.Target
	err = h.groupTargets(group).
		Where("name LIKE ? OR mobile_phone LIKE ? OR phone LIKE ?", pattern, phonePattern, phonePattern).
		Find(&targets).Error
	if err != nil {
		system.Error("Failed to search targets of group %d: %v", group.ID, err)
		return fail(c, fiber.StatusInternalServerError, msgServerError)
	}
	return respond(c, fiber.StatusOK, models.TargetViews(targets), "")
}

// GetTarget - Show one recipient
func (h *Handler) GetTarget(c *fiber.Ctx) error {
	_, target, err := h.ownedTarget(c)
	if err != nil {
		return lookupFailed(c, err)
	}
	return respond(c, fiber.StatusOK, target.View(), "")
}

// CreateTarget - Add a recipient to a group
func (h *Handler) CreateTarget(c *fiber.Ctx) error {
	var input models.TargetInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, fiber.StatusBadRequest, msgInvalidInput)
	}
	group, err := h.ownedGroup(c)
	if err != nil {
		return h.groupLookupFailed(c, err, msgGroupNotFound)
	}

	input.Normalize()
	if err := services.ValidatePayload(input); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	target := models.Target{GroupID: group.ID}
	input.Apply(&target)
	if err := h.DB.Create(&target).Error; err != nil {
		system.Error("Failed to create target in group %d: %v", group.ID, err)
		return fail(c, fiber.StatusInternalServerError, msgServerError)
	}
	return respond(c, fiber.StatusCreated, fiber.Map{"targetId": target.ID}, "대상자가 생성되었습니다.")
}

// UpdateTarget - Apply every provided field, then re-check the whole recipient
func (h *Handler) UpdateTarget(c *fiber.Ctx) error {
	var patch models.TargetPatch
	if err := c.BodyParser(&patch); err != nil {
		return fail(c, fiber.StatusBadRequest, msgInvalidInput)
	}
	_, target, err := h.ownedTarget(c)
	if err != nil {
		return lookupFailed(c, err)
	}

	merged := patch.Merge(models.TargetInputFrom(target))
	merged.Normalize()
	if err := services.ValidatePayload(merged); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	merged.Apply(&target)
	if err := h.DB.Save(&target).Error; err != nil {
		system.Error("Failed to update target %d: %v", target.ID, err)
		return fail(c, fiber.StatusInternalServerError, msgServerError)
	}
	return respond(c, fiber.StatusOK, nil, "대상자 정보가 수정되었습니다.")
}

// DeleteTarget - Soft delete
func (h *Handler) DeleteTarget(c *fiber.Ctx) error {
	_, target, err := h.ownedTarget(c)
	if err != nil {
		return lookupFailed(c, err)
	}
	if err := h.DB.Delete(&target).Error; err != nil {
		system.Error("Failed to delete target %d: %v", target.ID, err)
		return fail(c, fiber.StatusInternalServerError, msgServerError)
	}
	return respond(c, fiber.StatusOK, nil, "대상자가 삭제되었습니다.")
}
