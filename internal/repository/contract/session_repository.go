package contract

import (
	"context"

	"ai-docchat-be/pkg/store"
)

// SessionRepository stores live chat sessions keyed by id. Backends are
// ephemeral by contract: entries expire on a TTL and nothing survives a
// restart.
type SessionRepository interface {
	Save(ctx context.Context, session *store.Session) error
	Get(ctx context.Context, sessionID string) (*store.Session, bool, error)
	Delete(ctx context.Context, sessionID string) error
}
