package serverutils

import (
	"errors"
	"fmt"

	"ai-webchat-be/internal/entity"
	"ai-webchat-be/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const SessionCookieName = "webchat_session"

const (
	localsSessionID    = "session_id"
	localsSessionState = "session_state"
)

// SessionManager issues and verifies the signed session cookie and bridges it
// to the server-side Store. The cookie only ever carries the session id, as a
// HS256 token signed with the session secret; all real state stays server-side.
type SessionManager struct {
	store  session.Store
	secret []byte
	isProd bool
}

func NewSessionManager(store session.Store, secret string, isProd bool) *SessionManager {
	return &SessionManager{
		store:  store,
		secret: []byte(secret),
		isProd: isProd,
	}
}

// Middleware resolves the request's SessionState into ctx.Locals, creating a
// fresh session (and setting the cookie) when there is none or the cookie
// fails verification.
func (m *SessionManager) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var state *entity.SessionState

		sid, err := m.parseCookie(ctx.Cookies(SessionCookieName))
		if err == nil {
			state, err = m.store.Load(ctx.Context(), sid)
			if err != nil && !errors.Is(err, session.ErrNotFound) {
				return err
			}
		}

		if state == nil {
			sid = uuid.NewString()
			state = entity.NewSessionState()
			if err := m.setCookie(ctx, sid); err != nil {
				return err
			}
		}

		ctx.Locals(localsSessionID, sid)
		ctx.Locals(localsSessionState, state)
		return ctx.Next()
	}
}

// Save persists the request's (possibly mutated) SessionState. Handlers call
// it after every write; there is no dirty tracking.
func (m *SessionManager) Save(ctx *fiber.Ctx) error {
	return m.store.Save(ctx.Context(), SessionID(ctx), CurrentSession(ctx))
}

// Destroy drops the server-side state entirely. The cookie stays behind but
// now points at nothing, which is equivalent to a cleared session.
func (m *SessionManager) Destroy(ctx *fiber.Ctx) error {
	return m.store.Destroy(ctx.Context(), SessionID(ctx))
}

func CurrentSession(ctx *fiber.Ctx) *entity.SessionState {
	state, _ := ctx.Locals(localsSessionState).(*entity.SessionState)
	return state
}

func SessionID(ctx *fiber.Ctx) string {
	sid, _ := ctx.Locals(localsSessionID).(string)
	return sid
}

// RequireAuth guards the chat API: a session user or guest mode is enough,
// anything else is a 401.
func RequireAuth(ctx *fiber.Ctx) error {
	state := CurrentSession(ctx)
	if state == nil || !state.Authenticated() {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Authentication required"))
	}
	return ctx.Next()
}

func (m *SessionManager) setCookie(ctx *fiber.Ctx, sid string) error {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sid": sid})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return err
	}

	cookie := &fiber.Cookie{
		Name:     SessionCookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(session.TTL.Seconds()),
		HTTPOnly: true,
	}
	if m.isProd {
		cookie.Secure = true
		cookie.SameSite = fiber.CookieSameSiteLaxMode
	}
	ctx.Cookie(cookie)
	return nil
}

func (m *SessionManager) parseCookie(raw string) (string, error) {
	if raw == "" {
		return "", errors.New("no session cookie")
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid session cookie: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid session claims")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("missing session id claim")
	}
	return sid, nil
}
