package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"investment-calculator/domain"
	"investment-calculator/events"
	"investment-calculator/repository"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidDuration = fmt.Errorf("%w: duration must be a positive number of years", ErrInvalidInput)
	ErrNonFinite       = fmt.Errorf("%w: values must be finite numbers", ErrInvalidInput)
)

// Validate enforces the preconditions callers must check before projecting.
func Validate(config domain.InvestmentConfig) error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"initialInvestment", config.InitialInvestment},
		{"annualInvestment", config.AnnualInvestment},
		{"expectedReturn", config.ExpectedReturn},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return fmt.Errorf("%w (%s)", ErrNonFinite, v.name)
		}
	}

	if config.Duration <= 0 {
		return ErrInvalidDuration
	}
	if config.Duration > MaxDurationYears {
		return fmt.Errorf("%w: duration exceeds the maximum of %d years", ErrInvalidInput, MaxDurationYears)
	}
	if config.InitialInvestment < 0 {
		return fmt.Errorf("%w: initial investment must not be negative", ErrInvalidInput)
	}
	if config.InitialInvestment > MaxAmount || math.Abs(config.AnnualInvestment) > MaxAmount {
		return fmt.Errorf("%w: amounts must not exceed %.0f", ErrInvalidInput, MaxAmount)
	}
	if math.Abs(config.ExpectedReturn) > MaxExpectedReturn {
		return fmt.Errorf("%w: expected return must be within ±%.0f%%", ErrInvalidInput, MaxExpectedReturn)
	}
	return nil
}

type ProjectionService struct {
	repo      repository.ProjectionRepository
	cache     repository.CacheRepository
	publisher events.Publisher
	logger    *zap.Logger
}

func NewProjectionService(
	repo repository.ProjectionRepository,
	cache repository.CacheRepository,
	publisher events.Publisher,
	logger *zap.Logger,
) *ProjectionService {
	return &ProjectionService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
	}
}

// Calculate validates config and returns its projection, from the cache when
// an identical config was computed before. Storage and event failures are
// logged and never fail the calculation.
func (s *ProjectionService) Calculate(
	ctx context.Context,
	config domain.InvestmentConfig,
) (domain.ProjectionResult, error) {
	if err := Validate(config); err != nil {
		return domain.ProjectionResult{}, err
	}

	key := cacheKey(config)
	if raw, ok := s.cache.Get(ctx, key); ok {
		var snapshots []domain.YearlySnapshot
		if err := json.Unmarshal([]byte(raw), &snapshots); err == nil {
			return newProjectionResult(config, snapshots, true), nil
		}
		s.logger.Warn("discarding unreadable cache entry", zap.String("key", key))
	}

	snapshots := Project(config)

	if body, err := json.Marshal(snapshots); err != nil {
		s.logger.Warn("failed to encode projection for cache", zap.Error(err))
	} else if err := s.cache.Set(ctx, key, string(body)); err != nil {
		s.logger.Warn("failed to cache projection", zap.String("key", key), zap.Error(err))
	}

	if err := s.repo.Save(ctx, config, snapshots); err != nil {
		s.logger.Warn("failed to save projection", zap.Error(err))
	}

	if err := s.publisher.PublishProjection(ctx, events.NewProjectionComputed(config, snapshots)); err != nil {
		s.logger.Warn("failed to publish projection event", zap.Error(err))
	}

	return newProjectionResult(config, snapshots, false), nil
}

// History returns recently saved projections, newest first. Only freshly
// computed projections are saved; cache hits are not recorded again.
func (s *ProjectionService) History(ctx context.Context, limit int) ([]domain.ProjectionRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	records, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list projections: %w", err)
	}
	return records, nil
}

func newProjectionResult(
	config domain.InvestmentConfig,
	snapshots []domain.YearlySnapshot,
	cached bool,
) domain.ProjectionResult {
	result := domain.ProjectionResult{
		Config:          config,
		Snapshots:       snapshots,
		FinalValue:      config.InitialInvestment,
		InvestedCapital: config.InitialInvestment,
		Cached:          cached,
	}
	if n := len(snapshots); n > 0 {
		last := snapshots[n-1]
		result.FinalValue = last.ValueEndOfYear
		result.TotalInterest = last.TotalInterest
		result.InvestedCapital = last.InvestedCapital
	}
	return result
}

func cacheKey(config domain.InvestmentConfig) string {
	return strings.Join([]string{
		strconv.FormatFloat(config.InitialInvestment, 'g', -1, 64),
		strconv.FormatFloat(config.AnnualInvestment, 'g', -1, 64),
		strconv.FormatFloat(config.ExpectedReturn, 'g', -1, 64),
		strconv.Itoa(config.Duration),
	}, ":")
}
