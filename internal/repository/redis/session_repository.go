package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-docchat-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "chat:session:"

// SessionRepository keeps session snapshots in redis so multiple instances
// can serve the same session. Unlike the in-memory backend, Get hands out a
// rebuilt copy; concurrent writers of one session are last-write-wins.
type SessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionRepository(rdb *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		rdb: rdb,
		ttl: ttl,
	}
}

func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	data, err := json.Marshal(session.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", session.ID(), err)
	}
	return r.rdb.Set(ctx, sessionKeyPrefix+session.ID(), data, r.ttl).Err()
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*store.Session, bool, error) {
	data, err := r.rdb.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var state store.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal session %s: %w", sessionID, err)
	}
	return store.FromState(state), true, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
