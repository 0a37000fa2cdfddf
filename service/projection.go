package service

import "investment-calculator/domain"

// Project computes the year-by-year growth of an investment.
//
// Each year earns interest on the balance held at the start of that year;
// the annual contribution is added after the interest, so it starts earning
// only the following year. The function performs no validation: a duration
// <= 0 yields an empty slice, and non-finite inputs propagate through every
// subsequent year.
func Project(config domain.InvestmentConfig) []domain.YearlySnapshot {
	snapshots := make([]domain.YearlySnapshot, 0, max(config.Duration, 0))

	value := config.InitialInvestment
	totalInterest := 0.0
	invested := config.InitialInvestment

	for year := 1; year <= config.Duration; year++ {
		interest := value * (config.ExpectedReturn / 100)
		// Left to right: (value + interest) + contribution.
		value = value + interest + config.AnnualInvestment

		totalInterest += interest
		invested += config.AnnualInvestment

		snapshots = append(snapshots, domain.YearlySnapshot{
			Year:             year,
			Interest:         interest,
			ValueEndOfYear:   value,
			AnnualInvestment: config.AnnualInvestment,
			TotalInterest:    totalInterest,
			InvestedCapital:  invested,
		})
	}

	return snapshots
}
