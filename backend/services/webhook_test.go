package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookDisabled(t *testing.T) {
	w := NewWebhookService("")
	assert.False(t, w.IsEnabled())
	assert.NoError(t, w.SendExportAlert(context.Background(), "겨울나눔", 3))
	assert.ErrorIs(t, w.SendTestAlert(context.Background()), ErrWebhookDisabled)

	var nilService *WebhookService
	assert.NoError(t, nilService.SendLockoutAlert(context.Background(), "a", "b", time.Now()))
}

func TestWebhookSendsEmbed(t *testing.T) {
	var got DiscordWebhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	w := NewWebhookService(srv.URL)
	w.now = func() time.Time { return time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC) }
	until := time.Date(2024, 1, 31, 10, 5, 0, 0, time.Local)
	require.NoError(t, w.SendLockoutAlert(context.Background(), "행복복지관", "123-45-67890", until))

	assert.Equal(t, "nanum-admin", got.Username)
	require.Len(t, got.Embeds, 1)
	embed := got.Embeds[0]
	assert.Equal(t, "로그인 잠금", embed.Title)
	assert.Equal(t, ColorOrange, embed.Color)
	assert.Equal(t, "2024-01-31T10:00:00Z", embed.Timestamp)
	assert.Equal(t, "123-45-67890", embed.Fields[0].Value)
	assert.Equal(t, "2024-01-31 10:05:00", embed.Fields[1].Value)
}

func TestWebhookErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	err := NewWebhookService(srv.URL).SendExportAlert(context.Background(), "겨울나눔", 1)
	assert.EqualError(t, err, "webhook returned error status: 400")
}
