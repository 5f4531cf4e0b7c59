// Package stats computes dashboard aggregates and spending forecasts over a
// user's records. Both entry points are pure functions of the store's
// contents at call time; nothing is cached or updated incrementally.
package stats

import (
	"log/slog"

	"billfold/internal/core"
	"billfold/internal/metrics"
)

// Average weeks and half-weeks per month used for cadence normalization.
const (
	weeksPerMonth     = 4.33
	halfWeeksPerMonth = 2.17
)

// MonthlyEquivalent converts a billing amount at the given cadence into an
// equivalent monthly cost. An unrecognized frequency contributes zero: the
// record is not an error, it just drops out of every aggregate. The drop is
// counted and logged so it is not invisible.
func MonthlyEquivalent(amount float64, f core.Frequency) float64 {
	switch f {
	case core.Monthly:
		return amount
	case core.Yearly:
		return amount / 12
	case core.Quarterly:
		return amount / 3
	case core.Weekly:
		return amount * weeksPerMonth
	case core.Biweekly:
		return amount * halfWeeksPerMonth
	default:
		metrics.UnknownFrequency.Inc()
		slog.Warn("Unknown billing frequency, amount contributes zero",
			"frequency", string(f), "amount", amount)
		return 0
	}
}
