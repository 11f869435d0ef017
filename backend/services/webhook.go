package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"nanum-admin/backend/system"
	"net/http"
	"time"
)

var ErrWebhookDisabled = errors.New("webhook not configured")

// WebhookService posts activity alerts to a Discord-compatible webhook
type WebhookService struct {
	webhookURL string
	client     *http.Client
	now        func() time.Time
}

type DiscordEmbed struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Color       int                 `json:"color,omitempty"`
	Fields      []DiscordEmbedField `json:"fields,omitempty"`
	Footer      *DiscordEmbedFooter `json:"footer,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

type DiscordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type DiscordEmbedFooter struct {
	Text string `json:"text"`
}

type DiscordWebhookPayload struct {
	Username string         `json:"username,omitempty"`
	Embeds   []DiscordEmbed `json:"embeds,omitempty"`
}

const (
	ColorOrange = 0xFFAA00
	ColorGreen  = 0x00FF00
	ColorBlue   = 0x00AAFF
)

// NewWebhookService returns a service that does nothing when url is empty
func NewWebhookService(url string) *WebhookService {
	return &WebhookService{
		webhookURL: url,
		client:     &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
}

func (w *WebhookService) IsEnabled() bool {
	return w != nil && w.webhookURL != ""
}

// SendLockoutAlert reports an organization locked out after repeated failed logins
func (w *WebhookService) SendLockoutAlert(ctx context.Context, orgName, businessNumber string, until time.Time) error {
	if !w.IsEnabled() {
		return nil
	}
	return w.sendEmbed(ctx, DiscordEmbed{
		Title:       "로그인 잠금",
		Description: fmt.Sprintf("**%s** 계정이 반복된 로그인 실패로 잠겼습니다.", orgName),
		Color:       ColorOrange,
		Fields: []DiscordEmbedField{
			{Name: "사업자번호", Value: businessNumber, Inline: true},
			{Name: "잠금 해제", Value: until.Format("2006-01-02 15:04:05"), Inline: true},
		},
	})
}

// SendExportAlert reports a roster download
func (w *WebhookService) SendExportAlert(ctx context.Context, group string, targets int) error {
	if !w.IsEnabled() {
		return nil
	}
	return w.sendEmbed(ctx, DiscordEmbed{
		Title:       "명단 다운로드",
		Description: fmt.Sprintf("**%s** 대상자 명단이 다운로드되었습니다.", group),
		Color:       ColorBlue,
		Fields: []DiscordEmbedField{
			{Name: "대상자 수", Value: fmt.Sprintf("%d", targets), Inline: true},
		},
	})
}

// SendTestAlert verifies webhook connectivity
func (w *WebhookService) SendTestAlert(ctx context.Context) error {
	if !w.IsEnabled() {
		return ErrWebhookDisabled
	}
	return w.sendEmbed(ctx, DiscordEmbed{
		Title:       "Webhook Test",
		Description: "Webhook is configured correctly.",
		Color:       ColorGreen,
		Fields: []DiscordEmbedField{
			{Name: "Server Time", Value: w.now().Format("2006-01-02 15:04:05"), Inline: true},
		},
	})
}

func (w *WebhookService) sendEmbed(ctx context.Context, embed DiscordEmbed) error {
	embed.Footer = &DiscordEmbedFooter{Text: "nanum-admin"}
	embed.Timestamp = w.now().UTC().Format(time.RFC3339)
	payload := DiscordWebhookPayload{Username: "nanum-admin", Embeds: []DiscordEmbed{embed}}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.webhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned error status: %d", resp.StatusCode)
	}

	system.Debug("Webhook sent: %s", embed.Title)
	return nil
}
