package handlers

import (
	"bytes"
	"context"
	"nanum-admin/backend/models"
	"nanum-admin/backend/services"
	"nanum-admin/backend/system"
	"net/url"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportRoster streams a group's roster as an xlsx download
// GET /api/businesses/:id/export
func (h *Handler) ExportRoster(c *fiber.Ctx) error {
	group, err := h.ownedGroup(c)
	if err != nil {
		return h.groupLookupFailed(c, err, msgGroupNotFound)
	}

	var targets []models.Target
	if err := h.groupTargets(group).Find(&targets).Error; err != nil {
		system.Error("Failed to load targets for export of group %d: %v", group.ID, err)
		return fail(c, fiber.StatusInternalServerError, msgServerError)
	}

	sheet := services.BuildRosterSheet(group, models.TargetViews(targets))
	var buf bytes.Buffer
	if err := services.WriteRosterXLSX(sheet, &buf); err != nil {
		system.Error("Failed to write roster for group %d: %v", group.ID, err)
		return fail(c, fiber.StatusInternalServerError, "엑셀 파일 생성 중 오류가 발생했습니다.")
	}

	filename := services.RosterFileName(group, h.now())
	c.Set(fiber.HeaderContentDisposition, "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Set(fiber.HeaderContentType, xlsxContentType)

	h.Metrics.observeExport()
	h.notify("export", func(ctx context.Context) error {
		return h.Webhook.SendExportAlert(ctx, group.Name, len(targets))
	})
	AddEvent("success", "Roster exported: "+group.Name)
	return c.Send(buf.Bytes())
}
