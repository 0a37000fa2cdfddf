package events

import (
	"encoding/json"
	"time"

	"investment-calculator/domain"
)

// ProjectionComputed announces a freshly computed (non-cached) projection.
type ProjectionComputed struct {
	Config     domain.InvestmentConfig `json:"config"`
	Years      int                     `json:"years"`
	FinalValue float64                 `json:"finalValue"`
	Timestamp  time.Time               `json:"timestamp"`
}

func NewProjectionComputed(config domain.InvestmentConfig, snapshots []domain.YearlySnapshot) *ProjectionComputed {
	final := config.InitialInvestment
	if len(snapshots) > 0 {
		final = snapshots[len(snapshots)-1].ValueEndOfYear
	}
	return &ProjectionComputed{
		Config:     config,
		Years:      len(snapshots),
		FinalValue: final,
		Timestamp:  time.Now().UTC(),
	}
}

func (m *ProjectionComputed) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ProjectionComputedFromJSON decodes a message as published by
// AMQPPublisher, for consumers of the projection exchange.
func ProjectionComputedFromJSON(data []byte) (*ProjectionComputed, error) {
	var msg ProjectionComputed
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
