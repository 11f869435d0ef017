package console

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"nanum-admin/backend/models"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultTimeout = 10 * time.Second

// ErrUnauthorized is matched by every 401 response
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a failed call. Status is 0 when no response arrived.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return e.Err
}

type envelope struct {
	OK      bool            `json:"ok"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    *models.User    `json:"user"`
}

// Client calls the nanum-admin API with the stored bearer token
type Client struct {
	baseURL string
	http    *http.Client
	store   SessionStore
}

func NewClient(baseURL string, store SessionStore) *Client {
	if store == nil {
		store = &MemoryStore{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		store:   store,
	}
}

func (c *Client) Session() (Session, error) {
	return c.store.Load()
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	s, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
	return req, nil
}

// send performs the request and handles authorization failures. fallback is the
// message used when the server gives none.
func (c *Client) send(req *http.Request, fallback string) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Message: fallback, Err: err}
	}
	if resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	apiErr := &APIError{Status: resp.StatusCode, Message: fallback}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err == nil && env.Message != "" {
		apiErr.Message = env.Message
	}
	if resp.StatusCode == http.StatusUnauthorized && !strings.HasSuffix(req.URL.Path, "/login") {
		_ = c.store.Clear()
	}
	return nil, apiErr
}

func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out interface{}, fallback string) (envelope, error) {
	var env envelope
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return env, err
	}
	resp, err := c.send(req, fallback)
	if err != nil {
		return env, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return env, &APIError{Status: resp.StatusCode, Message: fallback, Err: err}
	}
	if !env.OK {
		msg := env.Message
		if msg == "" {
			msg = fallback
		}
		return env, &APIError{Status: resp.StatusCode, Message: msg}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return env, &APIError{Status: resp.StatusCode, Message: fallback, Err: err}
		}
	}
	return env, nil
}

// Login authenticates and persists the session
func (c *Client) Login(ctx context.Context, businessNumber, password string) (models.User, error) {
	body := map[string]string{"businessNumber": businessNumber, "password": password}
	env, err := c.call(ctx, http.MethodPost, "/login", nil, body, nil, "로그인에 실패했습니다.")
	if err != nil {
		return models.User{}, err
	}
	if env.Token == "" || env.User == nil {
		return models.User{}, &APIError{Status: http.StatusOK, Message: "로그인에 실패했습니다."}
	}
	if err := c.store.Save(Session{Token: env.Token, User: *env.User}); err != nil {
		return models.User{}, err
	}
	return *env.User, nil
}

// Logout tells the server and always drops the local session
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.call(ctx, http.MethodPost, "/auth/logout", nil, nil, nil, "로그아웃에 실패했습니다.")
	if clearErr := c.store.Clear(); clearErr != nil {
		return clearErr
	}
	return err
}

// Verify checks the stored token and returns its identity
func (c *Client) Verify(ctx context.Context) (models.User, error) {
	env, err := c.call(ctx, http.MethodGet, "/auth/verify", nil, nil, nil, "토큰 검증에 실패했습니다.")
	if err != nil {
		return models.User{}, err
	}
	if env.User == nil {
		return models.User{}, &APIError{Status: http.StatusOK, Message: "토큰 검증에 실패했습니다."}
	}
	return *env.User, nil
}

// Groups

func groupPath(id uint) string {
	return "/businesses/" + strconv.FormatUint(uint64(id), 10)
}

func (c *Client) ListGroups(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	_, err := c.call(ctx, http.MethodGet, "/businesses", nil, nil, &groups, "사업 목록을 불러오는데 실패했습니다.")
	return groups, err
}

func (c *Client) GetGroup(ctx context.Context, id uint) (models.Group, error) {
	var group models.Group
	_, err := c.call(ctx, http.MethodGet, groupPath(id), nil, nil, &group, "사업 정보를 불러오는데 실패했습니다.")
	return group, err
}

func (c *Client) CreateGroup(ctx context.Context, in models.GroupInput) (uint, error) {
	var out struct {
		GroupID uint `json:"groupId"`
	}
	_, err := c.call(ctx, http.MethodPost, "/businesses", nil, in, &out, "사업 생성에 실패했습니다.")
	return out.GroupID, err
}

func (c *Client) UpdateGroup(ctx context.Context, id uint, in models.GroupInput) error {
	_, err := c.call(ctx, http.MethodPut, groupPath(id), nil, in, nil, "사업 수정에 실패했습니다.")
	return err
}

func (c *Client) DeleteGroup(ctx context.Context, id uint) error {
	_, err := c.call(ctx, http.MethodDelete, groupPath(id), nil, nil, nil, "사업 삭제에 실패했습니다.")
	return err
}

// Targets

func targetPath(groupID, targetID uint) string {
	return groupPath(groupID) + "/targets/" + strconv.FormatUint(uint64(targetID), 10)
}

func (c *Client) ListTargets(ctx context.Context, groupID uint) ([]models.TargetView, error) {
	var targets []models.TargetView
	_, err := c.call(ctx, http.MethodGet, groupPath(groupID)+"/targets", nil, nil, &targets, "대상자 목록을 불러오는데 실패했습니다.")
	return targets, err
}

func (c *Client) SearchTargets(ctx context.Context, groupID uint, q string) ([]models.TargetView, error) {
	var targets []models.TargetView
	query := url.Values{"q": {q}}
	_, err := c.call(ctx, http.MethodGet, groupPath(groupID)+"/targets/search", query, nil, &targets, "대상자 검색에 실패했습니다.")
	return targets, err
}

func (c *Client) GetTarget(ctx context.Context, groupID, targetID uint) (models.TargetView, error) {
	var target models.TargetView
	_, err := c.call(ctx, http.MethodGet, targetPath(groupID, targetID), nil, nil, &target, "대상자 정보를 불러오는데 실패했습니다.")
	return target, err
}

func (c *Client) CreateTarget(ctx context.Context, groupID uint, in models.TargetInput) (uint, error) {
	var out struct {
		TargetID uint `json:"targetId"`
	}
	_, err := c.call(ctx, http.MethodPost, groupPath(groupID)+"/targets", nil, in, &out, "대상자 생성에 실패했습니다.")
	return out.TargetID, err
}

func (c *Client) UpdateTarget(ctx context.Context, groupID, targetID uint, in models.TargetInput) error {
	_, err := c.call(ctx, http.MethodPut, targetPath(groupID, targetID), nil, in, nil, "대상자 수정에 실패했습니다.")
	return err
}

func (c *Client) DeleteTarget(ctx context.Context, groupID, targetID uint) error {
	_, err := c.call(ctx, http.MethodDelete, targetPath(groupID, targetID), nil, nil, nil, "대상자 삭제에 실패했습니다.")
	return err
}

// DownloadRoster copies the group's xlsx roster to w and returns the server's file name
func (c *Client) DownloadRoster(ctx context.Context, groupID uint, w io.Writer) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, groupPath(groupID)+"/export", nil, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.send(req, "엑셀 다운로드에 실패했습니다.")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", fmt.Errorf("write roster: %w", err)
	}
	filename := ""
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		filename = params["filename"]
	}
	return filename, nil
}
