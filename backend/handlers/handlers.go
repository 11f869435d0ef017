package handlers

import (
	"nanum-admin/backend/services"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Handler struct {
	DB        *gorm.DB
	Tokens    *services.TokenService
	Passwords *services.PasswordVerifier
	Metrics   *Metrics
	Webhook   *services.WebhookService // optional activity alerts

	now func() time.Time
}

func NewHandler(db *gorm.DB, tokens *services.TokenService, passwords *services.PasswordVerifier, metrics *Metrics) *Handler {
	return &Handler{DB: db, Tokens: tokens, Passwords: passwords, Metrics: metrics, now: time.Now}
}

// Every JSON response carries {ok, data?, message?}

func respond(c *fiber.Ctx, status int, data interface{}, message string) error {
	body := fiber.Map{"ok": true}
	if data != nil {
		body["data"] = data
	}
	if message != "" {
		body["message"] = message
	}
	return c.Status(status).JSON(body)
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"ok": false, "message": message})
}

const (
	msgServerError   = "서버 오류가 발생했습니다."
	msgInvalidInput  = "요청 형식이 올바르지 않습니다."
	msgGroupNotFound = "사업을 찾을 수 없습니다."
	msgTargetMissing = "대상자를 찾을 수 없습니다."
)

// orgID returns the organization the bearer token was issued to
func orgID(c *fiber.Ctx) string {
	id, _ := c.Locals(localsOrgID).(string)
	return id
}

func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// Health reports whether the database answers
func (h *Handler) Health(c *fiber.Ctx) error {
	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.UserContext())
	}
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"ok": false, "status": "unavailable"})
	}
	return c.JSON(fiber.Map{"ok": true, "status": "ok"})
}
