package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"ai-webchat-be/internal/bootstrap"
	"ai-webchat-be/internal/config"
	"ai-webchat-be/internal/controller"
	"ai-webchat-be/internal/dto"
	"ai-webchat-be/internal/pkg/logger"
	"ai-webchat-be/internal/pkg/serverutils"
	"ai-webchat-be/internal/service"
	"ai-webchat-be/internal/session"
	"ai-webchat-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGateway satisfies the gateway contract without any provider traffic.
type stubGateway struct {
	reply string
}

func (s *stubGateway) Generate(_ context.Context, _ string, _ []llm.Message) string {
	return s.reply
}

func newTestServer(t *testing.T, reply string) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			BaseURL:            "http://localhost:3000",
			Environment:        "test",
			LogFilePath:        filepath.Join(t.TempDir(), "app.log"),
			CorsAllowedOrigins: "http://localhost:5173",
		},
		OAuth: config.OAuthConfig{
			ClientID:     "test-client",
			ClientSecret: "test-secret",
			RedirectURL:  "http://localhost:3000/authorize",
		},
		Session: config.SessionConfig{
			Secret:  "test-session-secret",
			Backend: "memory",
		},
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, false)
	sessions := serverutils.NewSessionManager(session.NewMemoryStore(), cfg.Session.Secret, false)

	gateway := &stubGateway{reply: reply}
	chatService := service.NewChatService(gateway, sysLogger)
	oauthService := service.NewOAuthService(cfg.OAuth, sysLogger)

	container := &bootstrap.Container{
		AuthController: controller.NewAuthController(oauthService, sessions, sysLogger),
		ChatController: controller.NewChatController(chatService, gateway, sessions),
		Sessions:       sessions,
		Logger:         sysLogger,
	}

	return New(cfg, container).GetApp()
}

func doRequest(t *testing.T, app *fiber.App, method, path string, cookie *http.Cookie, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func guestCookie(t *testing.T, app *fiber.App) *http.Cookie {
	t.Helper()

	resp := doRequest(t, app, http.MethodGet, "/guest", nil, nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))

	for _, c := range resp.Cookies() {
		if c.Name == serverutils.SessionCookieName {
			return c
		}
	}
	t.Fatal("guest login did not set a session cookie")
	return nil
}

func TestChatRoutesRequireAuth(t *testing.T) {
	app := newTestServer(t, "ok")

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/chats"},
		{http.MethodPost, "/api/chats"},
		{http.MethodGet, "/api/chats/some-id"},
		{http.MethodDelete, "/api/chats/some-id"},
		{http.MethodPost, "/api/chats/some-id/message"},
	}
	for _, p := range paths {
		resp := doRequest(t, app, p.method, p.path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", p.method, p.path)
	}
}

func TestGuestModeGrantsAPIAccess(t *testing.T) {
	app := newTestServer(t, "ok")
	cookie := guestCookie(t, app)

	resp := doRequest(t, app, http.MethodGet, "/api/user", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user dto.UserResponse
	decodeBody(t, resp, &user)
	assert.Equal(t, "guest", user.ID)
	assert.Equal(t, "guest@example.com", user.Email)
	assert.True(t, user.IsGuest)

	resp = doRequest(t, app, http.MethodGet, "/api/chats", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var chats []dto.ChatSummaryResponse
	decodeBody(t, resp, &chats)
	assert.Empty(t, chats)
}

func TestChatLifecycle(t *testing.T) {
	app := newTestServer(t, "the model reply")
	cookie := guestCookie(t, app)

	// Create
	resp := doRequest(t, app, http.MethodPost, "/api/chats", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created dto.CreateChatResponse
	decodeBody(t, resp, &created)
	assert.NotEmpty(t, created.ChatID)
	assert.Equal(t, "New Chat", created.Title)

	// List includes it
	resp = doRequest(t, app, http.MethodGet, "/api/chats", cookie, nil)
	var chats []dto.ChatSummaryResponse
	decodeBody(t, resp, &chats)
	require.Len(t, chats, 1)
	assert.Equal(t, created.ChatID, chats[0].ChatID)

	// Message turn
	resp = doRequest(t, app, http.MethodPost, "/api/chats/"+created.ChatID+"/message", cookie,
		dto.SendMessageRequest{Message: "hello model"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sent dto.SendMessageResponse
	decodeBody(t, resp, &sent)
	assert.Equal(t, "the model reply", sent.Reply)

	// Detail reflects the completed turn and derived title
	resp = doRequest(t, app, http.MethodGet, "/api/chats/"+created.ChatID, cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail dto.ChatDetailResponse
	decodeBody(t, resp, &detail)
	assert.Equal(t, "hello model", detail.Title)
	require.Len(t, detail.History, 2)
	assert.Equal(t, "user", detail.History[0].Role)
	assert.Equal(t, "model", detail.History[1].Role)

	// Delete, then everything 404s
	resp = doRequest(t, app, http.MethodDelete, "/api/chats/"+created.ChatID, cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var deleted dto.DeleteChatResponse
	decodeBody(t, resp, &deleted)
	assert.Equal(t, "Chat deleted successfully", deleted.Message)

	resp = doRequest(t, app, http.MethodGet, "/api/chats/"+created.ChatID, cookie, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = doRequest(t, app, http.MethodDelete, "/api/chats/"+created.ChatID, cookie, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSendMessageEmptyInputIsBadRequest(t *testing.T) {
	app := newTestServer(t, "ok")
	cookie := guestCookie(t, app)

	resp := doRequest(t, app, http.MethodPost, "/api/chats", cookie, nil)
	var created dto.CreateChatResponse
	decodeBody(t, resp, &created)

	resp = doRequest(t, app, http.MethodPost, "/api/chats/"+created.ChatID+"/message", cookie,
		dto.SendMessageRequest{Message: "", Files: []dto.AttachedFileDTO{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSendMessageFileOnlySucceeds(t *testing.T) {
	app := newTestServer(t, "ok")
	cookie := guestCookie(t, app)

	resp := doRequest(t, app, http.MethodPost, "/api/chats", cookie, nil)
	var created dto.CreateChatResponse
	decodeBody(t, resp, &created)

	resp = doRequest(t, app, http.MethodPost, "/api/chats/"+created.ChatID+"/message", cookie,
		dto.SendMessageRequest{Files: []dto.AttachedFileDTO{{Name: "notes.txt", Content: "payload"}}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/chats/"+created.ChatID, cookie, nil)
	var detail dto.ChatDetailResponse
	decodeBody(t, resp, &detail)
	assert.Equal(t, "File upload", detail.Title)
}

func TestMessageToUnknownChat(t *testing.T) {
	app := newTestServer(t, "ok")
	cookie := guestCookie(t, app)

	resp := doRequest(t, app, http.MethodPost, "/api/chats/missing/message", cookie,
		dto.SendMessageRequest{Message: "hi"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLogoutClearsSession(t *testing.T) {
	app := newTestServer(t, "ok")
	cookie := guestCookie(t, app)

	resp := doRequest(t, app, http.MethodPost, "/api/chats", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/logout", cookie, nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/signin", resp.Header.Get("Location"))

	// Same cookie, but the session behind it is cleared
	resp = doRequest(t, app, http.MethodGet, "/api/chats", cookie, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = doRequest(t, app, http.MethodGet, "/api/user", cookie, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginRedirectsToProvider(t *testing.T) {
	app := newTestServer(t, "ok")

	resp := doRequest(t, app, http.MethodGet, "/login", nil, nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "accounts.google.com")
	assert.Contains(t, resp.Header.Get("Location"), "test-client")
}

func TestAuthorizeWithoutCodeRedirectsToSignin(t *testing.T) {
	app := newTestServer(t, "ok")

	resp := doRequest(t, app, http.MethodGet, "/authorize?error=access_denied", nil, nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/signin?error=auth_failed", resp.Header.Get("Location"))
}

func TestTestGeminiDiagnostic(t *testing.T) {
	app := newTestServer(t, "Hello!")

	resp := doRequest(t, app, http.MethodGet, "/api/test-gemini", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.TestGeminiResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, "success", out.Status)
	assert.Equal(t, "Hello!", out.Response)
}
