package session

import (
	"context"
	"errors"
	"time"

	"ai-webchat-be/internal/entity"
)

// ErrNotFound is returned by Load when the session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// TTL is how long an idle browser session survives server-side. Every Save
// refreshes it.
const TTL = 24 * time.Hour

// Store holds SessionState per browser session, keyed by the signed cookie's
// session id. All request handling is read-modify-write through this
// interface; there are no hidden globals.
type Store interface {
	Load(ctx context.Context, sessionID string) (*entity.SessionState, error)
	Save(ctx context.Context, sessionID string, state *entity.SessionState) error
	Destroy(ctx context.Context, sessionID string) error
}
