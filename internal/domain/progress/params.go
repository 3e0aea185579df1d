package progress

// Params defines all configurable parameters for the learning-progress
// calculations.
type Params struct {
	// StreakLookbackDays bounds how far back a streak walk may scan.
	StreakLookbackDays int

	// DefaultReviewIntervalDays is the review interval used when a caller
	// does not supply one.
	DefaultReviewIntervalDays int

	// DefaultDailyGoal is the daily learned-words goal used when a user has
	// no settings record.
	DefaultDailyGoal int
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance.
type ParamsConfig struct {
	StreakLookbackDays        int
	DefaultReviewIntervalDays int
	DefaultDailyGoal          int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		// Bound streak scans to one year
		StreakLookbackDays: 365,

		// Review a learned word after a week by default
		DefaultReviewIntervalDays: 7,

		// Ten new words a day by default
		DefaultDailyGoal: 10,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.StreakLookbackDays > 0 {
		params.StreakLookbackDays = config.StreakLookbackDays
	}
	if config.DefaultReviewIntervalDays > 0 {
		params.DefaultReviewIntervalDays = config.DefaultReviewIntervalDays
	}
	if config.DefaultDailyGoal > 0 {
		params.DefaultDailyGoal = config.DefaultDailyGoal
	}

	return params
}
