package service

import (
	"context"
	"fmt"
	"math"

	"investment-calculator/domain"
)

// GoalService finds the first year a projection reaches a target value.
type GoalService struct {
	projectionService *ProjectionService
	aiService         *AIService
}

func NewGoalService(projectionService *ProjectionService, aiService *AIService) *GoalService {
	return &GoalService{
		projectionService: projectionService,
		aiService:         aiService,
	}
}

func (s *GoalService) Reach(ctx context.Context, input domain.GoalInput) (domain.GoalResult, error) {
	if math.IsNaN(input.TargetValue) || math.IsInf(input.TargetValue, 0) {
		return domain.GoalResult{}, fmt.Errorf("%w (targetValue)", ErrNonFinite)
	}
	if input.TargetValue <= 0 {
		return domain.GoalResult{}, fmt.Errorf("%w: target value must be positive", ErrInvalidInput)
	}

	projection, err := s.projectionService.Calculate(ctx, input.Config)
	if err != nil {
		return domain.GoalResult{}, err
	}

	result := domain.GoalResult{FinalValue: projection.FinalValue}
	for i := range projection.Snapshots {
		if projection.Snapshots[i].ValueEndOfYear >= input.TargetValue {
			snap := projection.Snapshots[i]
			result.Reached = true
			result.Year = snap.Year
			result.Snapshot = &snap
			break
		}
	}

	result.Explanation = s.aiService.ExplainGoal(ctx, input, result)
	return result, nil
}
