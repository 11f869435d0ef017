package handlers

import (
	"context"
	"errors"
	"nanum-admin/backend/services"
	"nanum-admin/backend/system"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

const maxEvents = 100

type SystemEvent struct {
	Time    string `json:"time"`
	Type    string `json:"type"` // info, warning, error, success
	Message string `json:"message"`
}

// Event log storage with mutex for thread safety
var (
	eventLog   = []SystemEvent{}
	eventMutex sync.RWMutex
)

// AddEvent records an activity entry, newest first, and logs it
func AddEvent(eventType, message string) {
	eventMutex.Lock()
	event := SystemEvent{
		Time:    time.Now().Format("2006-01-02 15:04:05"),
		Type:    eventType,
		Message: message,
	}
	eventLog = append([]SystemEvent{event}, eventLog...)
	if len(eventLog) > maxEvents {
		eventLog = eventLog[:maxEvents]
	}
	eventMutex.Unlock()

	switch eventType {
	case "error":
		system.Error("%s", message)
	case "warning":
		system.Warn("%s", message)
	default:
		system.Info("%s", message)
	}
}

// GetEventLog returns a copy of the event log
func GetEventLog() []SystemEvent {
	eventMutex.RLock()
	defer eventMutex.RUnlock()

	result := make([]SystemEvent, len(eventLog))
	copy(result, eventLog)
	return result
}

// GetEvents lists recent activity
func (h *Handler) GetEvents(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, GetEventLog(), "")
}

const webhookTimeout = 15 * time.Second

// notify sends a webhook alert in the background when a webhook is configured
func (h *Handler) notify(kind string, send func(ctx context.Context) error) {
	if !h.Webhook.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), webhookTimeout)
		defer cancel()
		if err := send(ctx); err != nil {
			system.Warn("Failed to send %s webhook: %v", kind, err)
		}
	}()
}

// TestWebhook sends a test notification to the configured webhook
// POST /api/webhook/test
func (h *Handler) TestWebhook(c *fiber.Ctx) error {
	if err := h.Webhook.SendTestAlert(c.UserContext()); err != nil {
		if errors.Is(err, services.ErrWebhookDisabled) {
			return fail(c, fiber.StatusBadRequest, "웹훅이 설정되지 않았습니다.")
		}
		system.Warn("Webhook test failed: %v", err)
		return fail(c, fiber.StatusBadGateway, "웹훅 전송에 실패했습니다.")
	}
	return respond(c, fiber.StatusOK, nil, "테스트 메시지를 전송했습니다.")
}
