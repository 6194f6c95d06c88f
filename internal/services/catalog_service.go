package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/SAP-F-2025/career-assessment-service/internal/cache"
	"github.com/SAP-F-2025/career-assessment-service/internal/repositories"
	"github.com/SAP-F-2025/career-assessment-service/internal/scoring"
)

type catalogService struct {
	repo     repositories.Repository
	engine   *scoring.Engine
	cache    cache.CacheService
	cacheTTL time.Duration
	logger   *ServiceLogger
}

func NewCatalogService(repo repositories.Repository, engine *scoring.Engine, cacheService cache.CacheService, cacheTTL time.Duration, logger *ServiceLogger) CatalogService {
	return &catalogService{
		repo:     repo,
		engine:   engine,
		cache:    cacheService,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// List aggregates the bank per test and merges registered metadata. Tests
// without metadata are listed under their raw identifier.
func (s *catalogService) List(ctx context.Context) ([]TestInfo, error) {
	var tests []TestInfo
	err := s.cache.Get(ctx, cache.CatalogKey, &tests)
	if err == nil {
		return tests, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Logger().WarnContext(ctx, "Catalog cache read failed", "error", err)
	}

	summaries, err := s.repo.Question().CountByTest(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate questions: %w", err)
	}

	tests = make([]TestInfo, 0, len(summaries))
	for _, summary := range summaries {
		info := TestInfo{
			ID:            summary.Test,
			Name:          summary.Test,
			Key:           summary.Test,
			QuestionCount: summary.Count,
		}
		if def, err := s.engine.Definition(summary.Test); err == nil {
			info.ID = def.ID
			info.Name = def.Name
			info.Description = def.Description
			info.Mode = def.Mode
		}
		tests = append(tests, info)
	}
	sort.SliceStable(tests, func(i, j int) bool { return tests[i].Key < tests[j].Key })

	if err := s.cache.Set(ctx, cache.CatalogKey, tests, s.cacheTTL); err != nil {
		s.logger.Logger().WarnContext(ctx, "Catalog cache write failed", "error", err)
	}
	return tests, nil
}
