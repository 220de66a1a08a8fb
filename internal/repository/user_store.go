package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/eduresult/eduresult-go-api/internal/models"
)

const usersKey = "eduresult:users"

// UserStore keeps the flat administrator credential list. It mirrors the
// record store contract: reads degrade to an empty list, writes replace the
// whole value.
type UserStore interface {
	Load(ctx context.Context) []models.User
	Save(ctx context.Context, users []models.User) error
}

type userStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewUserStore constructs a Redis-backed user store.
func NewUserStore(client *redis.Client, logger zerolog.Logger) UserStore {
	return &userStore{
		client: client,
		logger: logger.With().Str("component", "user_store").Logger(),
	}
}

func (s *userStore) Load(ctx context.Context) []models.User {
	raw, err := s.client.Get(ctx, usersKey).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read user list, serving empty")
		}
		return []models.User{}
	}

	var users []models.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		s.logger.Warn().Err(err).Msg("stored user list is corrupt, serving empty")
		return []models.User{}
	}

	if users == nil {
		users = []models.User{}
	}

	return users
}

func (s *userStore) Save(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}

	payload, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("marshal user list: %w", err)
	}

	if err := s.client.Set(ctx, usersKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("write user list: %w", err)
	}

	return nil
}
