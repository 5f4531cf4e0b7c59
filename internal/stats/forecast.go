package stats

import (
	"math"
	"time"

	"billfold/internal/core"
)

// Seasonal multipliers applied to the utilities bucket by calendar month of
// the forecasted step.
const (
	summerUtilityFactor = 1.10 // May through August
	winterUtilityFactor = 1.08 // December through February
)

// subscriptionDriftPerStep is the flat per-step growth applied to the
// subscriptions bucket to model creeping price increases.
const subscriptionDriftPerStep = 0.01

// ForecastMonth is one projected month of spend, split into three buckets.
type ForecastMonth struct {
	Month         string  `json:"month"`
	Utilities     float64 `json:"utilities"`
	Subscriptions float64 `json:"subscriptions"`
	Other         float64 `json:"other"`
	Total         float64 `json:"total"`
}

// Forecast projects the user's spend for the given number of months starting
// at the current calendar month.
//
// Month advancement adds 30*i days to the first of the current month rather
// than doing calendar arithmetic, so a label can repeat or skip near 28/31
// day boundaries. That quirk is part of the numeric contract and is kept.
//
// Only recurring bills contribute, regardless of paid status. Amounts route
// to the utilities, subscriptions or other bucket by the category's kind
// tag; a category that does not resolve routes to other.
func Forecast(src Source, userID, months int, now time.Time) []ForecastMonth {
	forecast := make([]ForecastMonth, 0, months)
	monthStart := core.Date(now.Year(), int(now.Month()), 1)

	bills := src.Bills(userID)
	subs := src.ActiveSubscriptions(userID)

	kindOf := func(categoryID int) core.CategoryKind {
		cat, err := src.GetCategory(categoryID)
		if err != nil {
			return core.KindGeneral
		}
		return cat.Kind
	}

	for i := 0; i < months; i++ {
		step := monthStart.AddDate(0, 0, 30*i)

		var m ForecastMonth
		m.Month = step.Month().String()

		add := func(kind core.CategoryKind, amount float64) {
			switch kind {
			case core.KindUtilities:
				m.Utilities += amount
			case core.KindSubscriptions:
				m.Subscriptions += amount
			default:
				m.Other += amount
			}
		}

		for _, b := range bills {
			if !b.Recurring {
				continue
			}
			add(kindOf(b.CategoryID), b.Amount)
		}
		for _, sub := range subs {
			add(kindOf(sub.CategoryID), MonthlyEquivalent(sub.Amount, sub.Frequency))
		}

		switch step.Month() {
		case time.May, time.June, time.July, time.August:
			m.Utilities *= summerUtilityFactor
		case time.December, time.January, time.February:
			m.Utilities *= winterUtilityFactor
		}

		m.Subscriptions *= 1 + subscriptionDriftPerStep*float64(i)

		m.Total = m.Utilities + m.Subscriptions + m.Other
		m.Utilities = round2(m.Utilities)
		m.Subscriptions = round2(m.Subscriptions)
		m.Other = round2(m.Other)
		m.Total = round2(m.Total)

		forecast = append(forecast, m)
	}

	return forecast
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
