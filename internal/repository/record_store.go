package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/eduresult/eduresult-go-api/internal/models"
)

// Fixed storage keys. The whole student collection lives under a single key
// and is rewritten on every save; there are no per-record writes.
const (
	studentsKey    = "eduresult:students"
	institutionKey = "eduresult:institution"
)

// RecordStore persists the student collection and the institution profile.
//
// Load and LoadInstitution never fail: a missing key, an unreachable backend or
// a corrupt stored value all degrade to the empty collection or the default
// profile. Losing sight of stored data is preferred to refusing to serve.
type RecordStore interface {
	Load(ctx context.Context) []models.Student
	Save(ctx context.Context, students []models.Student) error
	LoadInstitution(ctx context.Context) models.Institution
	SaveInstitution(ctx context.Context, info models.Institution) error
}

type recordStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRecordStore constructs a Redis-backed record store.
func NewRecordStore(client *redis.Client, logger zerolog.Logger) RecordStore {
	return &recordStore{
		client: client,
		logger: logger.With().Str("component", "record_store").Logger(),
	}
}

func (s *recordStore) Load(ctx context.Context) []models.Student {
	raw, err := s.client.Get(ctx, studentsKey).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read student collection, serving empty")
		}
		return []models.Student{}
	}

	var students []models.Student
	if err := json.Unmarshal([]byte(raw), &students); err != nil {
		s.logger.Warn().Err(err).Msg("stored student collection is corrupt, serving empty")
		return []models.Student{}
	}

	if students == nil {
		students = []models.Student{}
	}

	return students
}

func (s *recordStore) Save(ctx context.Context, students []models.Student) error {
	if students == nil {
		students = []models.Student{}
	}

	payload, err := json.Marshal(students)
	if err != nil {
		return fmt.Errorf("marshal student collection: %w", err)
	}

	if err := s.client.Set(ctx, studentsKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("write student collection: %w", err)
	}

	return nil
}

func (s *recordStore) LoadInstitution(ctx context.Context) models.Institution {
	raw, err := s.client.Get(ctx, institutionKey).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read institution profile, serving defaults")
		}
		return models.DefaultInstitution()
	}

	var info models.Institution
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		s.logger.Warn().Err(err).Msg("stored institution profile is corrupt, serving defaults")
		return models.DefaultInstitution()
	}

	return info
}

func (s *recordStore) SaveInstitution(ctx context.Context, info models.Institution) error {
	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal institution profile: %w", err)
	}

	if err := s.client.Set(ctx, institutionKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("write institution profile: %w", err)
	}

	return nil
}
