package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alitto/pond/v2"

	"investment-calculator/domain"
)

var ErrTooManyScenarios = fmt.Errorf("%w: too many scenarios", ErrInvalidInput)

// ScenarioService projects several configurations side by side.
type ScenarioService struct {
	pool pond.Pool
}

func NewScenarioService(workers int) *ScenarioService {
	return &ScenarioService{
		pool: pond.NewPool(workers),
	}
}

// Compare returns one result per config, in input order.
func (s *ScenarioService) Compare(
	ctx context.Context,
	configs []domain.InvestmentConfig,
) ([]domain.ScenarioResult, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("%w: no scenarios provided", ErrInvalidInput)
	}
	if len(configs) > MaxScenariosPerRequest {
		return nil, fmt.Errorf("%w: maximum is %d", ErrTooManyScenarios, MaxScenariosPerRequest)
	}
	for i, cfg := range configs {
		if err := Validate(cfg); err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i, err)
		}
	}

	results := make([]domain.ScenarioResult, len(configs))
	group := s.pool.NewGroupContext(ctx)
	for i, cfg := range configs {
		group.Submit(func() {
			snapshots := Project(cfg)
			results[i] = domain.ScenarioResult{
				Index:      i,
				Config:     cfg,
				Snapshots:  snapshots,
				FinalValue: snapshots[len(snapshots)-1].ValueEndOfYear,
			}
		})
	}

	if err := group.Wait(); err != nil {
		if errors.Is(err, pond.ErrGroupStopped) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Stop waits for running comparisons and releases the workers.
func (s *ScenarioService) Stop() {
	s.pool.StopAndWait()
}
