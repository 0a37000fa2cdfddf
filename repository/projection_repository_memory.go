package repository

import (
	"context"
	"sync"
	"time"

	"investment-calculator/domain"
)

// ProjectionRepositoryMemory is an in-memory implementation of ProjectionRepository.
type ProjectionRepositoryMemory struct {
	mu     sync.Mutex
	nextID int64
	data   []domain.ProjectionRecord
}

func NewProjectionRepositoryMemory() *ProjectionRepositoryMemory {
	return &ProjectionRepositoryMemory{
		data: []domain.ProjectionRecord{},
	}
}

func (r *ProjectionRepositoryMemory) Save(
	_ context.Context,
	config domain.InvestmentConfig,
	snapshots []domain.YearlySnapshot,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.data = append(r.data, domain.ProjectionRecord{
		ID:         r.nextID,
		Config:     config,
		FinalValue: finalValue(config, snapshots),
		Years:      len(snapshots),
		CreatedAt:  time.Now().UTC(),
	})
	return nil
}

// List returns up to limit records, newest first. limit <= 0 means all.
func (r *ProjectionRepositoryMemory) List(_ context.Context, limit int) ([]domain.ProjectionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.data)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.ProjectionRecord, 0, n)
	for i := len(r.data) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.data[i])
	}
	return out, nil
}
