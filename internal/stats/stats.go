package stats

import (
	"log/slog"
	"sort"
	"time"

	"billfold/internal/core"
	"billfold/internal/metrics"
)

// Source is the read-side of the record store consumed by the aggregation
// engine. Implementations must return consistent snapshots: the returned
// slices are owned by the caller and do not change mid-iteration.
type Source interface {
	Bills(userID int) []core.Bill
	UpcomingBills(userID, days int) []core.Bill
	ActiveSubscriptions(userID int) []core.Subscription
	ActiveSuggestions(userID int) []core.Suggestion
	GetCategory(id int) (core.Category, error)
}

// upcomingHorizonDays is the window used for the dashboard's upcoming-bills
// count.
const upcomingHorizonDays = 7

// CategoryStat is one slice of the category breakdown.
type CategoryStat struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// Stats is the dashboard aggregate for one user.
type Stats struct {
	TotalBillsThisMonth      float64        `json:"totalBillsThisMonth"`
	TotalUpcoming            int            `json:"totalUpcoming"`
	TotalActiveSubscriptions int            `json:"totalActiveSubscriptions"`
	MonthlySubscriptionCost  float64        `json:"monthlySubscriptionCost"`
	PotentialSavings         float64        `json:"potentialSavings"`
	SuggestionCount          int            `json:"suggestionCount"`
	Categories               []CategoryStat `json:"categories"`
}

// ComputeStats builds the dashboard aggregate for a user as of now.
//
// The month total covers every bill due in the current calendar month, paid
// or not: it measures this month's obligations, not payments made. Bills and
// subscriptions whose category id does not resolve are skipped from the
// breakdown without failing the call.
func ComputeStats(src Source, userID int, now time.Time) Stats {
	monthStart := core.Date(now.Year(), int(now.Month()), 1)
	nextMonth := monthStart.AddDate(0, 1, 0)
	inMonth := func(due time.Time) bool {
		return !due.Before(monthStart) && due.Before(nextMonth)
	}

	var st Stats

	bills := src.Bills(userID)
	for _, b := range bills {
		if inMonth(b.DueDate) {
			st.TotalBillsThisMonth += b.Amount
		}
	}

	st.TotalUpcoming = len(src.UpcomingBills(userID, upcomingHorizonDays))

	subs := src.ActiveSubscriptions(userID)
	st.TotalActiveSubscriptions = len(subs)
	// Normalize each subscription once; the breakdown reuses the values so
	// an unknown frequency is counted a single time per call.
	subCosts := make([]float64, len(subs))
	for i, sub := range subs {
		subCosts[i] = MonthlyEquivalent(sub.Amount, sub.Frequency)
		st.MonthlySubscriptionCost += subCosts[i]
	}

	suggestions := src.ActiveSuggestions(userID)
	st.SuggestionCount = len(suggestions)
	for _, sg := range suggestions {
		if sg.PotentialSavings != nil {
			st.PotentialSavings += *sg.PotentialSavings
		}
	}

	st.Categories = categoryBreakdown(src, bills, subs, subCosts, inMonth)
	return st
}

// categoryBreakdown accumulates in-month bill amounts and normalized
// subscription amounts per category, then computes percentages and sorts
// descending by amount. Insertion order (bills first, then subscriptions not
// already present) breaks ties via the stable sort.
func categoryBreakdown(src Source, bills []core.Bill, subs []core.Subscription, subCosts []float64, inMonth func(time.Time) bool) []CategoryStat {
	amounts := make(map[int]*CategoryStat)
	var order []int

	accumulate := func(categoryID int, amount float64) {
		entry, ok := amounts[categoryID]
		if !ok {
			cat, err := src.GetCategory(categoryID)
			if err != nil {
				metrics.UnknownCategorySkips.Inc()
				slog.Warn("Skipping record with unresolved category",
					"category_id", categoryID, "amount", amount)
				return
			}
			entry = &CategoryStat{ID: cat.ID, Name: cat.Name, Color: cat.Color}
			amounts[categoryID] = entry
			order = append(order, categoryID)
		}
		entry.Amount += amount
	}

	for _, b := range bills {
		if inMonth(b.DueDate) {
			accumulate(b.CategoryID, b.Amount)
		}
	}
	for i, sub := range subs {
		accumulate(sub.CategoryID, subCosts[i])
	}

	var total float64
	for _, id := range order {
		total += amounts[id].Amount
	}

	out := make([]CategoryStat, 0, len(order))
	for _, id := range order {
		entry := *amounts[id]
		if total > 0 {
			entry.Percentage = entry.Amount / total * 100
		}
		out = append(out, entry)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount > out[j].Amount
	})
	return out
}
