package console

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"nanum-admin/backend/models"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = models.User{OrgID: "org-1", OrgName: "행복복지관", BusinessNumber: "123-45-67890"}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// newTestServer fakes the API: "good" is the only accepted password and token
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["password"] != "good" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"ok": false, "message": "비밀번호가 일치하지 않습니다."})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "token": "good", "user": testUser})
	})
	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer good" {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"ok": false, "message": "invalid token"})
				return
			}
			next(w, r)
		}
	}
	mux.HandleFunc("GET /api/auth/verify", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "user": testUser})
	}))
	mux.HandleFunc("POST /api/auth/logout", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "message": "로그아웃되었습니다."})
	}))
	mux.HandleFunc("GET /api/businesses", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "data": []models.Group{{ID: 1, Name: "겨울나눔", TargetCount: 3}}})
	}))
	mux.HandleFunc("POST /api/businesses", authed(func(w http.ResponseWriter, r *http.Request) {
		var in models.GroupInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Name == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "message": "다음 필수 항목을 입력해주세요: 이름"})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "data": map[string]uint{"groupId": 9}})
	}))
	mux.HandleFunc("GET /api/businesses/1/targets/search", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "data": []models.TargetView{{ID: 2, Name: r.URL.Query().Get("q")}}})
	}))
	mux.HandleFunc("GET /api/businesses/1/export", authed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape("겨울나눔_명단_2024-01-31.xlsx"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		_, _ = w.Write([]byte("xlsx-bytes"))
	}))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientLoginPersistsSession(t *testing.T) {
	srv := newTestServer(t)
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	c := NewClient(srv.URL+"/api/", store)
	ctx := context.Background()

	_, err := c.Login(ctx, "123-45-67890", "bad")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "비밀번호가 일치하지 않습니다.", apiErr.Message)
	assert.ErrorIs(t, err, ErrUnauthorized)

	user, err := c.Login(ctx, "123-45-67890", "good")
	require.NoError(t, err)
	assert.Equal(t, testUser, user)

	// a fresh client reads the same file
	s, err := NewClient(srv.URL+"/api", store).Session()
	require.NoError(t, err)
	assert.True(t, s.Valid())
	assert.Equal(t, testUser, s.User)

	verified, err := c.Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, testUser, verified)

	require.NoError(t, c.Logout(ctx))
	s, err = c.Session()
	require.NoError(t, err)
	assert.False(t, s.Valid())
}

func TestClientUnauthorizedClearsSession(t *testing.T) {
	srv := newTestServer(t)
	store := &MemoryStore{}
	require.NoError(t, store.Save(Session{Token: "stale", User: testUser}))
	c := NewClient(srv.URL+"/api", store)

	_, err := c.ListGroups(context.Background())
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.EqualError(t, err, "invalid token")

	s, err := store.Load()
	require.NoError(t, err)
	assert.False(t, s.Valid())
}

func TestClientFailedLoginKeepsSession(t *testing.T) {
	srv := newTestServer(t)
	store := &MemoryStore{}
	require.NoError(t, store.Save(Session{Token: "good", User: testUser}))
	c := NewClient(srv.URL+"/api", store)

	_, err := c.Login(context.Background(), "123-45-67890", "bad")
	require.Error(t, err)

	s, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "good", s.Token)
}

func TestClientGroupsAndTargets(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL+"/api", nil)
	ctx := context.Background()
	_, err := c.Login(ctx, "123-45-67890", "good")
	require.NoError(t, err)

	groups, err := c.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, int64(3), groups[0].TargetCount)

	id, err := c.CreateGroup(ctx, models.GroupInput{Name: "겨울나눔"})
	require.NoError(t, err)
	assert.Equal(t, uint(9), id)

	_, err = c.CreateGroup(ctx, models.GroupInput{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "다음 필수 항목을 입력해주세요: 이름", apiErr.Message)
	assert.False(t, errors.Is(err, ErrUnauthorized))

	found, err := c.SearchTargets(ctx, 1, "김 철수")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "김 철수", found[0].Name)
}

func TestClientDownloadRoster(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL+"/api", nil)
	ctx := context.Background()
	_, err := c.Login(ctx, "123-45-67890", "good")
	require.NoError(t, err)

	var buf bytes.Buffer
	name, err := c.DownloadRoster(ctx, 1, &buf)
	require.NoError(t, err)
	assert.Equal(t, "겨울나눔_명단_2024-01-31.xlsx", name)
	assert.Equal(t, "xlsx-bytes", buf.String())
}

func TestClientNetworkError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1/api", nil)
	_, err := c.ListGroups(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.Status)
	assert.Equal(t, "사업 목록을 불러오는데 실패했습니다.", apiErr.Message)
}
