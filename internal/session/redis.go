package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/medsimlab/woundcare-agent/internal/models"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "woundcare:session:"

// RedisRepository stores sessions as JSON values in Redis, one key per
// session. TTL of zero means sessions never expire.
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRepository(client *redis.Client, ttl time.Duration) *RedisRepository {
	return &RedisRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisRepository) Put(ctx context.Context, state *models.SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize session %s: %w", state.SessionID, err)
	}

	if err := r.client.Set(ctx, sessionKeyPrefix+state.SessionID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session %s: %w", state.SessionID, err)
	}
	return nil
}

func (r *RedisRepository) Get(ctx context.Context, sessionID string) (*models.SessionState, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}

	var state models.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", sessionID, err)
	}
	return &state, nil
}

func (r *RedisRepository) List(ctx context.Context, studentID string) ([]models.SessionSummary, error) {
	summaries := []models.SessionSummary{}

	iter := r.client.Scan(ctx, 0, sessionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := r.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// expired between scan and get
				continue
			}
			return nil, fmt.Errorf("failed to load session key %s: %w", iter.Val(), err)
		}

		var state models.SessionState
		if err := json.Unmarshal(data, &state); err != nil {
			return nil, fmt.Errorf("failed to decode session key %s: %w", iter.Val(), err)
		}

		if studentID != "" && state.StudentID != studentID {
			continue
		}
		summaries = append(summaries, state.Summary())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("session scan failed: %w", err)
	}

	return summaries, nil
}

func (r *RedisRepository) Delete(ctx context.Context, sessionID string) error {
	removed, err := r.client.Del(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}
