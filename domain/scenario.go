package domain

type ScenarioInput struct {
	Scenarios []InvestmentConfig `json:"scenarios"`
}

type ScenarioResult struct {
	Index      int              `json:"index"`
	Config     InvestmentConfig `json:"config"`
	Snapshots  []YearlySnapshot `json:"snapshots"`
	FinalValue float64          `json:"finalValue"`
}

type GoalInput struct {
	Config      InvestmentConfig `json:"config"`
	TargetValue float64          `json:"targetValue"`
}

type GoalResult struct {
	Reached     bool            `json:"reached"`
	Year        int             `json:"year,omitempty"`
	Snapshot    *YearlySnapshot `json:"snapshot,omitempty"`
	FinalValue  float64         `json:"finalValue"`
	Explanation string          `json:"explanation,omitempty"`
}
