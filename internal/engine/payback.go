package engine

import "math"

// DefaultScheduleYears matches the SREC horizon used by Estimate
const DefaultScheduleYears = 25

type scheduleConfig struct {
	years      int
	escalation float64
}

// ScheduleOption configures PaybackSchedule
type ScheduleOption func(*scheduleConfig)

// WithHorizon sets the number of years in the schedule. Non-positive values are ignored.
func WithHorizon(years int) ScheduleOption {
	return func(c *scheduleConfig) {
		if years > 0 {
			c.years = years
		}
	}
}

// WithEscalation grows annual savings by rate each year (0.03 = 3% per year).
// Negative values are ignored.
func WithEscalation(rate float64) ScheduleOption {
	return func(c *scheduleConfig) {
		if rate >= 0 {
			c.escalation = rate
		}
	}
}

// PaybackSchedule projects cumulative savings against the net cost, one entry per year
func PaybackSchedule(b CostBreakdown, opts ...ScheduleOption) []PaybackYear {
	cfg := scheduleConfig{years: DefaultScheduleYears}
	for _, opt := range opts {
		opt(&cfg)
	}

	schedule := make([]PaybackYear, 0, cfg.years)
	cumulative := 0.0
	for year := 1; year <= cfg.years; year++ {
		savings := b.AnnualSavings * math.Pow(1+cfg.escalation, float64(year-1))
		cumulative += savings
		net := cumulative - b.NetCost
		schedule = append(schedule, PaybackYear{
			Year:              year,
			AnnualSavings:     savings,
			CumulativeSavings: cumulative,
			NetPosition:       net,
			PaidBack:          net >= 0,
		})
	}
	return schedule
}

// BreakEvenYear returns the first year the schedule is paid back, or 0 if it never is
func BreakEvenYear(schedule []PaybackYear) int {
	for _, y := range schedule {
		if y.PaidBack {
			return y.Year
		}
	}
	return 0
}
