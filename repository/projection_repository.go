package repository

import (
	"context"

	"investment-calculator/domain"
)

// ProjectionRepository keeps a log of computed projections.
type ProjectionRepository interface {
	Save(ctx context.Context, config domain.InvestmentConfig, snapshots []domain.YearlySnapshot) error
	List(ctx context.Context, limit int) ([]domain.ProjectionRecord, error)
}

func finalValue(config domain.InvestmentConfig, snapshots []domain.YearlySnapshot) float64 {
	if len(snapshots) == 0 {
		return config.InitialInvestment
	}
	return snapshots[len(snapshots)-1].ValueEndOfYear
}
