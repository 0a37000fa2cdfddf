package domain

import "time"

// InvestmentConfig is the input of a projection. ExpectedReturn is a
// percentage: 6 means 6% per year.
type InvestmentConfig struct {
	InitialInvestment float64 `json:"initialInvestment"`
	AnnualInvestment  float64 `json:"annualInvestment"`
	ExpectedReturn    float64 `json:"expectedReturn"`
	Duration          int     `json:"duration"`
}

// DefaultInvestmentConfig returns the values the calculator form starts with.
func DefaultInvestmentConfig() InvestmentConfig {
	return InvestmentConfig{
		InitialInvestment: 10000,
		AnnualInvestment:  1200,
		ExpectedReturn:    6,
		Duration:          10,
	}
}

// YearlySnapshot is the state of the investment at the end of one simulated year.
type YearlySnapshot struct {
	Year             int     `json:"year"`
	Interest         float64 `json:"interest"`
	ValueEndOfYear   float64 `json:"valueEndOfYear"`
	AnnualInvestment float64 `json:"annualInvestment"`

	// Running totals up to and including Year.
	TotalInterest   float64 `json:"totalInterest"`
	InvestedCapital float64 `json:"investedCapital"`
}

type ProjectionResult struct {
	Config          InvestmentConfig `json:"config"`
	Snapshots       []YearlySnapshot `json:"snapshots"`
	FinalValue      float64          `json:"finalValue"`
	TotalInterest   float64          `json:"totalInterest"`
	InvestedCapital float64          `json:"investedCapital"`
	Cached          bool             `json:"cached"`
}

// ProjectionRecord is a saved calculation.
type ProjectionRecord struct {
	ID         int64            `json:"id"`
	Config     InvestmentConfig `json:"config"`
	FinalValue float64          `json:"finalValue"`
	Years      int              `json:"years"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// TableRow is one formatted line of the results table.
type TableRow struct {
	Year            int    `json:"year"`
	InvestmentValue string `json:"investmentValue"`
	InterestYear    string `json:"interestYear"`
	TotalInterest   string `json:"totalInterest"`
	InvestedCapital string `json:"investedCapital"`
}
