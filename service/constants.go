package service

const (
	MaxDurationYears       = 100
	MaxAmount              = 1_000_000_000_000.0 // 1 trillion
	MaxExpectedReturn      = 1000.0              // 1000% per year, either sign
	MaxScenariosPerRequest = 20
	DefaultHistoryLimit    = 20
	MaxHistoryLimit        = 500
)
