package handlers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"nanum-admin/backend/models"
	"nanum-admin/backend/services"
	"nanum-admin/backend/system"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	localsOrgID = "orgID"

	maxFailedLogins = 5
	lockoutDuration = 5 * time.Minute

	minPasswordLength = 8
)

// LoginRequest struct
type LoginRequest struct {
	BusinessNumber string `json:"businessNumber"`
	Password       string `json:"password"`
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, msgInvalidInput)
	}
	req.BusinessNumber = strings.TrimSpace(req.BusinessNumber)
	if req.BusinessNumber == "" || req.Password == "" {
		return fail(c, fiber.StatusBadRequest, "사업자번호와 비밀번호를 입력해주세요.")
	}

	var org models.Organization
	if err := h.DB.Where("business_number = ?", req.BusinessNumber).First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.Metrics.observeLogin("unknown")
			system.Warn("Failed login attempt for business number: %s", req.BusinessNumber)
			return fail(c, fiber.StatusUnauthorized, "등록되지 않은 사업자번호입니다.")
		}
		system.Error("Login lookup failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, msgServerError)
	}

	now := h.now()

	// Check Lock
	if org.LockedUntil != nil && now.Before(*org.LockedUntil) {
		minutes := int(math.Ceil(org.LockedUntil.Sub(now).Minutes()))
		h.Metrics.observeLogin("locked")
		return fail(c, fiber.StatusForbidden, fmt.Sprintf("로그인 시도가 너무 많습니다. %d분 후 다시 시도해주세요.", minutes))
	}

	if err := h.Passwords.Verify(org.PasswordHash, req.Password); err != nil {
		org.FailedAttempts++
		org.LastFailedAttempt = &now
		if org.FailedAttempts >= maxFailedLogins {
			lockUntil := now.Add(lockoutDuration)
			org.LockedUntil = &lockUntil
		}
		if err := h.DB.Save(&org).Error; err != nil {
			system.Error("Failed to record login failure for %s: %v", org.OrgID, err)
		}

		msg := "비밀번호가 일치하지 않습니다."
		if errors.Is(err, services.ErrSaltMismatch) {
			msg = "비밀번호 검증 실패(salt)."
		}
		if org.FailedAttempts >= maxFailedLogins {
			msg = "로그인 시도가 너무 많아 5분간 잠깁니다."
			locked := org
			h.notify("lockout", func(ctx context.Context) error {
				return h.Webhook.SendLockoutAlert(ctx, locked.OrgName, locked.BusinessNumber, *locked.LockedUntil)
			})
		}
		h.Metrics.observeLogin("failure")
		system.Warn("Failed login attempt for %s (attempt %d)", req.BusinessNumber, org.FailedAttempts)
		return fail(c, fiber.StatusUnauthorized, msg)
	}

	// Success. Legacy and plaintext passwords are upgraded to bcrypt.
	dirty := org.FailedAttempts != 0 || org.LockedUntil != nil
	org.FailedAttempts = 0
	org.LockedUntil = nil
	if !services.IsHashed(org.PasswordHash) {
		if hashed, err := services.HashPassword(req.Password); err == nil {
			org.PasswordHash = hashed
			dirty = true
		}
	}
	if dirty {
		if err := h.DB.Save(&org).Error; err != nil {
			system.Warn("Failed to update organization %s after login: %v", org.OrgID, err)
		}
	}

	token, err := h.Tokens.Issue(org.OrgID)
	if err != nil {
		system.Error("Failed to sign token: %v", err)
		return fail(c, fiber.StatusInternalServerError, msgServerError)
	}

	h.Metrics.observeLogin("success")
	AddEvent("success", "Organization logged in: "+org.OrgName)
	return c.JSON(fiber.Map{"ok": true, "token": token, "user": org.User()})
}

// VerifyToken returns the session identity of a still-valid token
func (h *Handler) VerifyToken(c *fiber.Ctx) error {
	var org models.Organization
	if err := h.DB.Where("org_id = ?", orgID(c)).First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, fiber.StatusUnauthorized, "유효하지 않은 토큰입니다.")
		}
		return fail(c, fiber.StatusInternalServerError, msgServerError)
	}
	return c.JSON(fiber.Map{"ok": true, "user": org.User()})
}

// Logout is stateless; the console drops its stored token
func (h *Handler) Logout(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, nil, "로그아웃되었습니다.")
}

// ChangePassword replaces the caller's password after checking the current one
func (h *Handler) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, msgInvalidInput)
	}
	if len(req.NewPassword) < minPasswordLength {
		return fail(c, fiber.StatusBadRequest, fmt.Sprintf("새 비밀번호는 %d자 이상이어야 합니다.", minPasswordLength))
	}

	var org models.Organization
	if err := h.DB.Where("org_id = ?", orgID(c)).First(&org).Error; err != nil {
		return fail(c, fiber.StatusUnauthorized, "유효하지 않은 토큰입니다.")
	}
	if err := h.Passwords.Verify(org.PasswordHash, req.OldPassword); err != nil {
		return fail(c, fiber.StatusUnauthorized, "현재 비밀번호가 일치하지 않습니다.")
	}

	hashed, err := services.HashPassword(req.NewPassword)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, msgServerError)
	}
	if err := h.DB.Model(&org).Update("password_hash", hashed).Error; err != nil {
		system.Error("Failed to change password for %s: %v", org.OrgID, err)
		return fail(c, fiber.StatusInternalServerError, msgServerError)
	}
	system.Info("Organization changed password: %s", org.OrgID)
	return respond(c, fiber.StatusOK, nil, "비밀번호가 변경되었습니다.")
}

// JWTAuthMiddleware validates the bearer token and stores its organization id
func (h *Handler) JWTAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return fail(c, fiber.StatusUnauthorized, "missing bearer token")
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		sub, err := h.Tokens.Parse(tokenString)
		if err != nil {
			if errors.Is(err, services.ErrTokenExpired) {
				return fail(c, fiber.StatusUnauthorized, "token expired")
			}
			return fail(c, fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(localsOrgID, sub)
		return c.Next()
	}
}

// SeedOrganization creates the first organization when none exist
func SeedOrganization(db *gorm.DB, seed system.SeedConfig) error {
	if !seed.Enabled() {
		return nil
	}
	var count int64
	if err := db.Model(&models.Organization{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := services.HashPassword(seed.Password)
	if err != nil {
		return err
	}
	org := models.Organization{
		OrgID:          seed.OrgID,
		OrgName:        seed.OrgName,
		BusinessNumber: seed.BusinessNumber,
		PasswordHash:   hashed,
	}
	if org.OrgID == "" {
		org.OrgID = "org-" + strings.ReplaceAll(seed.BusinessNumber, "-", "")
	}
	if err := db.Create(&org).Error; err != nil {
		return fmt.Errorf("failed to create seed organization: %w", err)
	}
	system.Info("Seeded organization %s (%s)", org.OrgName, org.OrgID)
	return nil
}
