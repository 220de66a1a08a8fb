package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/eduresult/eduresult-go-api/internal/dto"
	"github.com/eduresult/eduresult-go-api/internal/models"
	"github.com/eduresult/eduresult-go-api/internal/repository"
)

const dashboardCacheKey = "eduresult:dashboard"

// DashboardService produces aggregated result statistics.
type DashboardService interface {
	GetDashboard(ctx context.Context) (dto.DashboardResponse, error)
}

type dashboardService struct {
	store    repository.RecordStore
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewDashboardService builds the dashboard aggregator. The cache client may
// be nil; statistics are then computed on every call.
func NewDashboardService(store repository.RecordStore, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		store:    store,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context) (dto.DashboardResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, dashboardCacheKey).Result(); err == nil {
			var response dto.DashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	response := buildDashboard(s.store.Load(ctx))

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}

func buildDashboard(students []models.Student) dto.DashboardResponse {
	response := dto.DashboardResponse{
		TotalStudents:     len(students),
		GradeDistribution: map[string]int{},
	}

	var percentageTotal float64
	for _, student := range students {
		if student.Status == models.StatusPass {
			response.Passed++
		} else {
			response.Failed++
		}
		percentageTotal += student.Percentage
		response.GradeDistribution[student.Grade]++
	}

	if response.TotalStudents > 0 {
		response.AveragePercentage = percentageTotal / float64(response.TotalStudents)
	}

	return response
}
