package handlers

import (
	"errors"
	"nanum-admin/backend/models"
	"nanum-admin/backend/services"
	"nanum-admin/backend/system"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const targetCountColumn = "(SELECT COUNT(*) FROM nm_targets t WHERE t.group_id = nm_groups.id AND t.deleted_at IS NULL) AS target_count"

// ownedGroup loads the live group named by :id if it belongs to the caller
func (h *Handler) ownedGroup(c *fiber.Ctx) (models.Group, error) {
	var group models.Group
	id, ok := paramID(c, "id")
	if !ok {
		return group, gorm.ErrRecordNotFound
	}
	err := h.DB.Model(&models.Group{}).
		Select("nm_groups.*, "+targetCountColumn).
		Where("nm_groups.id = ? AND nm_groups.org_id = ?", id, orgID(c)).
		First(&group).Error
	return group, err
}

// GetGroups - List the caller's groups, newest first
func (h *Handler) GetGroups(c *fiber.Ctx) error {
	var groups []models.Group
	err := h.DB.Model(&models.Group{}).
		Select("nm_groups.*, "+targetCountColumn).
		Where("nm_groups.org_id = ?", orgID(c)).
		Order("nm_groups.created_at DESC, nm_groups.id DESC").
		Find(&groups).Error
	if err != nil {
		system.Error("Failed to list groups: %v", err)
		return fail(c, fiber.StatusInternalServerError, msgServerError)
	}
	return respond(c, fiber.StatusOK, groups, "")
}

// GetGroup - Show one group
func (h *Handler) GetGroup(c *fiber.Ctx) error {
	group, err := h.ownedGroup(c)
	if err != nil {
		return h.groupLookupFailed(c, err, msgGroupNotFound)
	}
	return respond(c, fiber.StatusOK, group, "")
}

// CreateGroup - Add a group for the caller
func (h *Handler) CreateGroup(c *fiber.Ctx) error {
	var input models.GroupInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, fiber.StatusBadRequest, msgInvalidInput)
	}
	input.Normalize()
	if err := services.ValidatePayload(input); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	group := models.Group{OrgID: orgID(c)}
	input.Apply(&group)
	if err := h.DB.Create(&group).Error; err != nil {
		system.Error("Failed to create group: %v", err)
		return fail(c, fiber.StatusInternalServerError, msgServerError)
	}

	AddEvent("success", "Group created: "+group.Name)
	return respond(c, fiber.StatusCreated, fiber.Map{"groupId": group.ID}, "그룹이 생성되었습니다.")
}

// UpdateGroup - Apply the non-empty fields of the body, then re-check the whole group
func (h *Handler) UpdateGroup(c *fiber.Ctx) error {
	var patch models.GroupInput
	if err := c.BodyParser(&patch); err != nil {
		return fail(c, fiber.StatusBadRequest, msgInvalidInput)
	}

	group, err := h.ownedGroup(c)
	if err != nil {
		return h.groupLookupFailed(c, err, "그룹을 찾을 수 없습니다.")
	}

	patch.Normalize()
	merged := models.MergeGroupUpdate(models.GroupInputFrom(group), patch)
	merged.Normalize()
	if err := services.ValidatePayload(merged); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	merged.Apply(&group)
	if err := h.DB.Save(&group).Error; err != nil {
		system.Error("Failed to update group %d: %v", group.ID, err)
		return fail(c, fiber.StatusInternalServerError, msgServerError)
	}
	return respond(c, fiber.StatusOK, nil, "사업 정보가 수정되었습니다.")
}

// DeleteGroup - Soft delete
func (h *Handler) DeleteGroup(c *fiber.Ctx) error {
	group, err := h.ownedGroup(c)
	if err != nil {
		return h.groupLookupFailed(c, err, "그룹을 찾을 수 없습니다.")
	}
	if err := h.DB.Delete(&group).Error; err != nil {
		system.Error("Failed to delete group %d: %v", group.ID, err)
		return fail(c, fiber.StatusInternalServerError, msgServerError)
	}

	AddEvent("warning", "Group deleted: "+group.Name)
	return respond(c, fiber.StatusOK, nil, "사업이 삭제되었습니다.")
}

func (h *Handler) groupLookupFailed(c *fiber.Ctx, err error, notFound string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, fiber.StatusNotFound, notFound)
	}
	system.Error("Failed to load group: %v", err)
	return fail(c, fiber.StatusInternalServerError, msgServerError)
}
