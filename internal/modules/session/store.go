// README: Conversation state store backed by Redis.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"flybot/internal/modules/dialog"
)

const keyPrefix = "flybot:conv:"

// ErrNotFound is returned when no state exists for the conversation.
var ErrNotFound = fmt.Errorf("conversation state not found")

// Store persists each conversation's DialogState between turns. One key per
// conversation; the engine relies on the host serializing turns per
// conversation, so no locking happens here either.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(redis *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: redis, ttl: ttl}
}

func key(conversationID string) string {
	return keyPrefix + conversationID
}

// Load fetches the persisted state for a conversation.
func (s *Store) Load(ctx context.Context, conversationID string) (dialog.State, error) {
	var state dialog.State
	data, err := s.redis.Get(ctx, key(conversationID)).Bytes()
	if err == redis.Nil {
		return state, ErrNotFound
	}
	if err != nil {
		return state, fmt.Errorf("load conversation %s: %w", conversationID, err)
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return state, fmt.Errorf("decode conversation %s: %w", conversationID, err)
	}
	return state, nil
}

// Save persists the updated state, refreshing the conversation TTL.
func (s *Store) Save(ctx context.Context, conversationID string, state dialog.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode conversation %s: %w", conversationID, err)
	}
	if err := s.redis.Set(ctx, key(conversationID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save conversation %s: %w", conversationID, err)
	}
	return nil
}

// Delete drops the conversation state, e.g. after completion or cancellation
// when the host chooses not to keep the thread.
func (s *Store) Delete(ctx context.Context, conversationID string) error {
	return s.redis.Del(ctx, key(conversationID)).Err()
}
