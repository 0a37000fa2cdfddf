package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"investment-calculator/domain"
)

// SQLiteProjectionRepository persists the projection log to a SQLite file.
type SQLiteProjectionRepository struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteProjectionRepository migrates and opens the database at dbPath.
func NewSQLiteProjectionRepository(dbPath string) (*SQLiteProjectionRepository, error) {
	if err := RunMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	return &SQLiteProjectionRepository{db: db}, nil
}

func (r *SQLiteProjectionRepository) Save(
	ctx context.Context,
	config domain.InvestmentConfig,
	snapshots []domain.YearlySnapshot,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, `INSERT INTO projections
		(created_at, initial_investment, annual_investment, expected_return, duration, final_value, years)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().UTC().UnixMilli(),
		config.InitialInvestment, config.AnnualInvestment, config.ExpectedReturn, config.Duration,
		finalValue(config, snapshots), len(snapshots),
	)
	if err != nil {
		return fmt.Errorf("insert projection: %w", err)
	}
	return nil
}

// List returns up to limit records, newest first. limit <= 0 means all.
func (r *SQLiteProjectionRepository) List(ctx context.Context, limit int) ([]domain.ProjectionRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id, created_at, initial_investment, annual_investment,
		expected_return, duration, final_value, years
		FROM projections ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query projections: %w", err)
	}
	defer rows.Close()

	records := []domain.ProjectionRecord{}
	for rows.Next() {
		var rec domain.ProjectionRecord
		var createdAt int64
		if err := rows.Scan(
			&rec.ID, &createdAt,
			&rec.Config.InitialInvestment, &rec.Config.AnnualInvestment,
			&rec.Config.ExpectedReturn, &rec.Config.Duration,
			&rec.FinalValue, &rec.Years,
		); err != nil {
			return nil, fmt.Errorf("scan projection: %w", err)
		}
		rec.CreatedAt = time.UnixMilli(createdAt).UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *SQLiteProjectionRepository) Close() error {
	return r.db.Close()
}
