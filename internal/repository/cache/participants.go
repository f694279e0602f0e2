package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const participantsKeyPrefix = "chat:participants:"

// ParticipantCache keeps the participant set of a conversation in a redis set.
// Participants never change after creation, so entries only expire.
type ParticipantCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewParticipantCache(rdb *redis.Client, ttl time.Duration) *ParticipantCache {
	return &ParticipantCache{
		rdb: rdb,
		ttl: ttl,
	}
}

// Get reports ok=false on a miss.
func (c *ParticipantCache) Get(ctx context.Context, conversationID uuid.UUID) ([]uuid.UUID, bool, error) {
	members, err := c.rdb.SMembers(ctx, participantsKey(conversationID)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read participants from cache: %w", err)
	}

	if len(members) == 0 {
		return nil, false, nil
	}

	ids := make([]uuid.UUID, 0, len(members))

	for _, m := range members {
		id, err := uuid.Parse(m)
		if err != nil {
			return nil, false, fmt.Errorf("failed to parse cached participant %q: %w", m, err)
		}

		ids = append(ids, id)
	}

	return ids, true, nil
}

func (c *ParticipantCache) Set(ctx context.Context, conversationID uuid.UUID, userIDs []uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}

	key := participantsKey(conversationID)

	members := make([]any, 0, len(userIDs))
	for _, id := range userIDs {
		members = append(members, id.String())
	}

	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.SAdd(ctx, key, members...)
		pipe.Expire(ctx, key, c.ttl)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write participants to cache: %w", err)
	}

	return nil
}

func participantsKey(conversationID uuid.UUID) string {
	return participantsKeyPrefix + conversationID.String()
}
