package store

import (
	"billfold/internal/core"
)

// NewWithDemoData creates a store pre-populated with a small record set for
// the demo user, with due and renewal dates placed relative to the current
// date so the dashboard has live-looking data on first run.
func NewWithDemoData() *Store {
	s := New()
	now := s.now()

	bills := []core.Bill{
		{
			Title:        "Rent",
			Amount:       1200.00,
			DueDate:      midnight(now.AddDate(0, 0, 5)),
			CategoryID:   1,
			UserID:       1,
			Recurring:    true,
			Description:  "Monthly apartment rent",
			MerchantName: "ABC Properties",
		},
		{
			Title:           "Electricity Bill",
			Amount:          87.50,
			DueDate:         midnight(now.AddDate(0, 0, 10)),
			CategoryID:      2,
			UserID:          1,
			Recurring:       true,
			Description:     "Monthly electricity utility bill",
			MerchantName:    "Power Company",
			AutoPay:         true,
			DetectedFromSMS: true,
		},
		{
			Title:        "Car Insurance",
			Amount:       150.00,
			DueDate:      midnight(now.AddDate(0, 0, -2)),
			CategoryID:   8,
			UserID:       1,
			Recurring:    true,
			Description:  "Quarterly car insurance premium",
			MerchantName: "SafeDrive Insurance",
		},
	}
	for _, b := range bills {
		if _, err := s.CreateBill(b); err != nil {
			panic("seed bill: " + err.Error())
		}
	}

	subs := []core.Subscription{
		{
			Title:        "Netflix",
			Amount:       15.99,
			Frequency:    core.Monthly,
			RenewalDate:  midnight(now.AddDate(0, 0, 12)),
			CategoryID:   9,
			UserID:       1,
			Active:       true,
			Description:  "Standard HD streaming plan",
			MerchantName: "Netflix",
			AutoPay:      true,
			LastUsed:     now.AddDate(0, 0, -2),
		},
		{
			Title:        "Spotify",
			Amount:       9.99,
			Frequency:    core.Monthly,
			RenewalDate:  midnight(now.AddDate(0, 0, 20)),
			CategoryID:   9,
			UserID:       1,
			Active:       true,
			Description:  "Premium music subscription",
			MerchantName: "Spotify",
			AutoPay:      true,
			LastUsed:     now.AddDate(0, 0, -1),
		},
		{
			Title:        "Gym Membership",
			Amount:       50.00,
			Frequency:    core.Monthly,
			RenewalDate:  midnight(now.AddDate(0, 0, 7)),
			CategoryID:   5,
			UserID:       1,
			Active:       true,
			Description:  "Monthly gym membership",
			MerchantName: "FitLife Gym",
			LastUsed:     now.AddDate(0, 0, -30),
		},
	}
	for _, sub := range subs {
		if _, err := s.CreateSubscription(sub); err != nil {
			panic("seed subscription: " + err.Error())
		}
	}

	gymSavings := 50.00
	suggestions := []core.Suggestion{
		{
			Type:             core.SuggestionSavings,
			Title:            "Cancel unused subscription",
			Description:      "You haven't used your gym membership in the last 30 days. Consider cancelling to save $50/month.",
			Icon:             "bulb",
			SubscriptionID:   3,
			PotentialSavings: &gymSavings,
			UserID:           1,
		},
		{
			Type:        core.SuggestionReminder,
			Title:       "Overdue bill",
			Description: "Your car insurance payment is overdue by 2 days.",
			Icon:        "warning",
			BillID:      3,
			UserID:      1,
		},
	}
	for _, sg := range suggestions {
		if _, err := s.CreateSuggestion(sg); err != nil {
			panic("seed suggestion: " + err.Error())
		}
	}

	if _, err := s.CreateReminder(core.Reminder{
		Message:  "Your rent payment is due in 5 days",
		UserID:   1,
		BillID:   1,
		RemindAt: now.AddDate(0, 0, 2),
		Priority: "high",
	}); err != nil {
		panic("seed reminder: " + err.Error())
	}

	return s
}
