package stats

import (
	"math"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"billfold/internal/core"
	"billfold/internal/metrics"
	"billfold/internal/store"
)

// fixedNow is mid-March: a month with no seasonal utility adjustment.
var fixedNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, now time.Time) *store.Store {
	t.Helper()
	st := store.New()
	st.SetClock(func() time.Time { return now })
	return st
}

func mustCreateBill(t *testing.T, st *store.Store, b core.Bill) core.Bill {
	t.Helper()
	created, err := st.CreateBill(b)
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}
	return created
}

func mustCreateSubscription(t *testing.T, st *store.Store, s core.Subscription) core.Subscription {
	t.Helper()
	created, err := st.CreateSubscription(s)
	if err != nil {
		t.Fatalf("CreateSubscription: %v", err)
	}
	return created
}

func TestComputeStats_EmptyStore(t *testing.T) {
	st := newTestStore(t, fixedNow)

	got := ComputeStats(st, 1, fixedNow)

	if got.TotalBillsThisMonth != 0 || got.TotalUpcoming != 0 ||
		got.TotalActiveSubscriptions != 0 || got.MonthlySubscriptionCost != 0 ||
		got.PotentialSavings != 0 || got.SuggestionCount != 0 {
		t.Errorf("empty store should yield all-zero aggregates, got %+v", got)
	}
	if len(got.Categories) != 0 {
		t.Errorf("empty store should yield no categories, got %d", len(got.Categories))
	}
}

func TestComputeStats_SingleUtilityBill(t *testing.T) {
	st := newTestStore(t, fixedNow)
	mustCreateBill(t, st, core.Bill{
		Title:      "Electricity",
		Amount:     87.50,
		DueDate:    core.Date(2025, 3, 20),
		CategoryID: 2,
		UserID:     1,
		Recurring:  true,
	})

	got := ComputeStats(st, 1, fixedNow)

	if got.TotalBillsThisMonth != 87.50 {
		t.Errorf("TotalBillsThisMonth = %v, want 87.50", got.TotalBillsThisMonth)
	}
	if len(got.Categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(got.Categories))
	}
	cat := got.Categories[0]
	if cat.ID != 2 || cat.Name != "Utilities" || cat.Amount != 87.50 || cat.Percentage != 100.0 || cat.Color != "#2ecc71" {
		t.Errorf("unexpected category entry: %+v", cat)
	}
}

func TestComputeStats_TwoCategoryPercentages(t *testing.T) {
	st := newTestStore(t, fixedNow)
	mustCreateBill(t, st, core.Bill{
		Title: "Rent share", Amount: 60, DueDate: core.Date(2025, 3, 5),
		CategoryID: 1, UserID: 1,
	})
	mustCreateBill(t, st, core.Bill{
		Title: "Bus pass", Amount: 40, DueDate: core.Date(2025, 3, 10),
		CategoryID: 3, UserID: 1,
	})

	got := ComputeStats(st, 1, fixedNow)

	if len(got.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got.Categories))
	}
	if got.Categories[0].ID != 1 || got.Categories[0].Percentage != 60.0 {
		t.Errorf("first category = %+v, want id 1 at 60%%", got.Categories[0])
	}
	if got.Categories[1].ID != 3 || got.Categories[1].Percentage != 40.0 {
		t.Errorf("second category = %+v, want id 3 at 40%%", got.Categories[1])
	}
}

func TestComputeStats_PercentagesSumToHundred(t *testing.T) {
	st := newTestStore(t, fixedNow)
	amounts := []float64{12.34, 56.78, 9.01, 100}
	for i, a := range amounts {
		mustCreateBill(t, st, core.Bill{
			Title: "Bill", Amount: a, DueDate: core.Date(2025, 3, 3+i),
			CategoryID: i + 1, UserID: 1,
		})
	}

	got := ComputeStats(st, 1, fixedNow)

	var sum float64
	for _, c := range got.Categories {
		sum += c.Percentage
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("percentages sum to %v, want 100", sum)
	}
}

func TestComputeStats_ZeroTotalMeansZeroPercentages(t *testing.T) {
	st := newTestStore(t, fixedNow)
	mustCreateBill(t, st, core.Bill{
		Title: "Free trial", Amount: 0, DueDate: core.Date(2025, 3, 10),
		CategoryID: 5, UserID: 1,
	})

	got := ComputeStats(st, 1, fixedNow)

	for _, c := range got.Categories {
		if c.Percentage != 0 {
			t.Errorf("category %d percentage = %v, want 0 when total spending is zero", c.ID, c.Percentage)
		}
	}
}

func TestComputeStats_PaidBillsCountTowardMonthTotal(t *testing.T) {
	st := newTestStore(t, fixedNow)
	mustCreateBill(t, st, core.Bill{
		Title: "Water", Amount: 30, DueDate: core.Date(2025, 3, 2),
		CategoryID: 2, UserID: 1, Paid: true,
	})
	mustCreateBill(t, st, core.Bill{
		Title: "Gas", Amount: 20, DueDate: core.Date(2025, 3, 28),
		CategoryID: 2, UserID: 1,
	})

	got := ComputeStats(st, 1, fixedNow)

	// This month's obligations, not payments made: the paid bill counts.
	if got.TotalBillsThisMonth != 50 {
		t.Errorf("TotalBillsThisMonth = %v, want 50", got.TotalBillsThisMonth)
	}
}

func TestComputeStats_OutOfMonthBillsExcluded(t *testing.T) {
	st := newTestStore(t, fixedNow)
	mustCreateBill(t, st, core.Bill{
		Title: "Last month", Amount: 99, DueDate: core.Date(2025, 2, 28),
		CategoryID: 1, UserID: 1,
	})
	mustCreateBill(t, st, core.Bill{
		Title: "Next month", Amount: 77, DueDate: core.Date(2025, 4, 1),
		CategoryID: 1, UserID: 1,
	})
	mustCreateBill(t, st, core.Bill{
		Title: "First of month", Amount: 10, DueDate: core.Date(2025, 3, 1),
		CategoryID: 1, UserID: 1,
	})
	mustCreateBill(t, st, core.Bill{
		Title: "Last of month", Amount: 5, DueDate: core.Date(2025, 3, 31),
		CategoryID: 1, UserID: 1,
	})

	got := ComputeStats(st, 1, fixedNow)

	if got.TotalBillsThisMonth != 15 {
		t.Errorf("TotalBillsThisMonth = %v, want 15 (inclusive month window)", got.TotalBillsThisMonth)
	}
}

func TestComputeStats_SubscriptionAggregates(t *testing.T) {
	st := newTestStore(t, fixedNow)
	mustCreateSubscription(t, st, core.Subscription{
		Title: "Netflix", Amount: 15.99, Frequency: core.Monthly,
		RenewalDate: core.Date(2025, 3, 27), CategoryID: 9, UserID: 1, Active: true,
	})
	mustCreateSubscription(t, st, core.Subscription{
		Title: "Insurance", Amount: 120, Frequency: core.Yearly,
		RenewalDate: core.Date(2025, 9, 1), CategoryID: 8, UserID: 1, Active: true,
	})
	mustCreateSubscription(t, st, core.Subscription{
		Title: "Cancelled box", Amount: 40, Frequency: core.Monthly,
		RenewalDate: core.Date(2025, 4, 1), CategoryID: 5, UserID: 1, Active: false,
	})

	got := ComputeStats(st, 1, fixedNow)

	if got.TotalActiveSubscriptions != 2 {
		t.Errorf("TotalActiveSubscriptions = %d, want 2", got.TotalActiveSubscriptions)
	}
	want := 15.99 + 10.0
	if math.Abs(got.MonthlySubscriptionCost-want) > 1e-9 {
		t.Errorf("MonthlySubscriptionCost = %v, want %v", got.MonthlySubscriptionCost, want)
	}
}

func TestComputeStats_SuggestionSavings(t *testing.T) {
	st := newTestStore(t, fixedNow)
	fifty := 50.0
	if _, err := st.CreateSuggestion(core.Suggestion{
		Type: core.SuggestionSavings, Title: "Cancel gym", UserID: 1,
		PotentialSavings: &fifty,
	}); err != nil {
		t.Fatalf("CreateSuggestion: %v", err)
	}
	if _, err := st.CreateSuggestion(core.Suggestion{
		Type: core.SuggestionReminder, Title: "Overdue", UserID: 1,
	}); err != nil {
		t.Fatalf("CreateSuggestion: %v", err)
	}
	dismissed, err := st.CreateSuggestion(core.Suggestion{
		Type: core.SuggestionSavings, Title: "Old advice", UserID: 1,
		PotentialSavings: &fifty,
	})
	if err != nil {
		t.Fatalf("CreateSuggestion: %v", err)
	}
	if _, err := st.DismissSuggestion(dismissed.ID); err != nil {
		t.Fatalf("DismissSuggestion: %v", err)
	}

	got := ComputeStats(st, 1, fixedNow)

	if got.SuggestionCount != 2 {
		t.Errorf("SuggestionCount = %d, want 2 (dismissed excluded)", got.SuggestionCount)
	}
	if got.PotentialSavings != 50 {
		t.Errorf("PotentialSavings = %v, want 50 (missing savings treated as zero)", got.PotentialSavings)
	}
}

func TestComputeStats_UpcomingCount(t *testing.T) {
	st := newTestStore(t, fixedNow)
	mustCreateBill(t, st, core.Bill{
		Title: "Due soon", Amount: 10, DueDate: core.Date(2025, 3, 18),
		CategoryID: 1, UserID: 1,
	})
	mustCreateBill(t, st, core.Bill{
		Title: "Paid already", Amount: 10, DueDate: core.Date(2025, 3, 18),
		CategoryID: 1, UserID: 1, Paid: true,
	})
	mustCreateBill(t, st, core.Bill{
		Title: "Beyond horizon", Amount: 10, DueDate: core.Date(2025, 3, 25),
		CategoryID: 1, UserID: 1,
	})

	got := ComputeStats(st, 1, fixedNow)

	if got.TotalUpcoming != 1 {
		t.Errorf("TotalUpcoming = %d, want 1 (7-day horizon, unpaid only)", got.TotalUpcoming)
	}
}

func TestComputeStats_UnknownCategorySkippedFromBreakdown(t *testing.T) {
	st := newTestStore(t, fixedNow)
	mustCreateBill(t, st, core.Bill{
		Title: "Typo category", Amount: 25, DueDate: core.Date(2025, 3, 12),
		CategoryID: 99, UserID: 1,
	})
	mustCreateBill(t, st, core.Bill{
		Title: "Groceries", Amount: 75, DueDate: core.Date(2025, 3, 12),
		CategoryID: 4, UserID: 1,
	})

	got := ComputeStats(st, 1, fixedNow)

	// The month total still includes the orphaned bill; only the breakdown
	// drops it.
	if got.TotalBillsThisMonth != 100 {
		t.Errorf("TotalBillsThisMonth = %v, want 100", got.TotalBillsThisMonth)
	}
	if len(got.Categories) != 1 || got.Categories[0].ID != 4 {
		t.Fatalf("expected only category 4 in breakdown, got %+v", got.Categories)
	}
	if got.Categories[0].Percentage != 100.0 {
		t.Errorf("surviving category percentage = %v, want 100", got.Categories[0].Percentage)
	}
}

func TestComputeStats_SortDescendingWithStableTies(t *testing.T) {
	st := newTestStore(t, fixedNow)
	mustCreateBill(t, st, core.Bill{
		Title: "A", Amount: 30, DueDate: core.Date(2025, 3, 4), CategoryID: 6, UserID: 1,
	})
	mustCreateBill(t, st, core.Bill{
		Title: "B", Amount: 30, DueDate: core.Date(2025, 3, 4), CategoryID: 7, UserID: 1,
	})
	mustCreateBill(t, st, core.Bill{
		Title: "C", Amount: 90, DueDate: core.Date(2025, 3, 4), CategoryID: 1, UserID: 1,
	})

	got := ComputeStats(st, 1, fixedNow)

	if len(got.Categories) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(got.Categories))
	}
	gotIDs := []int{got.Categories[0].ID, got.Categories[1].ID, got.Categories[2].ID}
	wantIDs := []int{1, 6, 7} // 90 first, then the 30/30 tie in insertion order
	for i := range wantIDs {
		if gotIDs[i] != wantIDs[i] {
			t.Fatalf("category order = %v, want %v", gotIDs, wantIDs)
		}
	}
}

func TestComputeStats_MixesBillsAndSubscriptionsInBreakdown(t *testing.T) {
	st := newTestStore(t, fixedNow)
	mustCreateBill(t, st, core.Bill{
		Title: "Electric", Amount: 80, DueDate: core.Date(2025, 3, 9),
		CategoryID: 2, UserID: 1,
	})
	mustCreateSubscription(t, st, core.Subscription{
		Title: "Streaming", Amount: 20, Frequency: core.Monthly,
		RenewalDate: core.Date(2025, 3, 22), CategoryID: 9, UserID: 1, Active: true,
	})

	got := ComputeStats(st, 1, fixedNow)

	if len(got.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got.Categories))
	}
	if got.Categories[0].ID != 2 || got.Categories[0].Amount != 80 || got.Categories[0].Percentage != 80.0 {
		t.Errorf("first category = %+v, want utilities at 80/80%%", got.Categories[0])
	}
	if got.Categories[1].ID != 9 || got.Categories[1].Amount != 20 || got.Categories[1].Percentage != 20.0 {
		t.Errorf("second category = %+v, want subscriptions at 20/20%%", got.Categories[1])
	}
}

func TestComputeStats_UnknownFrequencyCountedOnce(t *testing.T) {
	st := newTestStore(t, fixedNow)
	mustCreateSubscription(t, st, core.Subscription{
		Title: "Odd cadence", Amount: 30, Frequency: core.Monthly,
		RenewalDate: core.Date(2025, 3, 20), CategoryID: 9, UserID: 1, Active: true,
	})

	// Writes reject invalid frequencies, so model a stale record through a
	// wrapping source instead.
	src := staleFrequencySource{Source: st}
	before := testutil.ToFloat64(metrics.UnknownFrequency)

	got := ComputeStats(src, 1, fixedNow)

	if delta := testutil.ToFloat64(metrics.UnknownFrequency) - before; delta != 1 {
		t.Errorf("unknown-frequency counter delta = %v, want 1 per subscription per call", delta)
	}
	if got.MonthlySubscriptionCost != 0 {
		t.Errorf("MonthlySubscriptionCost = %v, want 0", got.MonthlySubscriptionCost)
	}
	if len(got.Categories) != 1 || got.Categories[0].Amount != 0 {
		t.Errorf("subscription should appear in breakdown with zero amount, got %+v", got.Categories)
	}
}

// staleFrequencySource rewrites subscription frequencies to an unrecognized
// value, modelling records written before a cadence was retired.
type staleFrequencySource struct {
	Source
}

func (s staleFrequencySource) ActiveSubscriptions(userID int) []core.Subscription {
	subs := s.Source.ActiveSubscriptions(userID)
	for i := range subs {
		subs[i].Frequency = "fortnightly"
	}
	return subs
}

func TestComputeStats_OtherUsersRecordsIgnored(t *testing.T) {
	st := newTestStore(t, fixedNow)
	mustCreateBill(t, st, core.Bill{
		Title: "Mine", Amount: 10, DueDate: core.Date(2025, 3, 10),
		CategoryID: 1, UserID: 1,
	})
	mustCreateBill(t, st, core.Bill{
		Title: "Theirs", Amount: 500, DueDate: core.Date(2025, 3, 10),
		CategoryID: 1, UserID: 2,
	})

	got := ComputeStats(st, 1, fixedNow)

	if got.TotalBillsThisMonth != 10 {
		t.Errorf("TotalBillsThisMonth = %v, want 10 (user scoping)", got.TotalBillsThisMonth)
	}
}
