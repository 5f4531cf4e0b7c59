package http

import (
	"time"

	"billfold/internal/core"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// billJSON is the wire representation of a bill. Field names follow the
// dashboard contract.
type billJSON struct {
	ID              int     `json:"id"`
	Title           string  `json:"title"`
	Amount          float64 `json:"amount"`
	DueDate         string  `json:"dueDate"`
	CategoryID      int     `json:"categoryId"`
	UserID          int     `json:"userId"`
	Paid            bool    `json:"paid"`
	Recurring       bool    `json:"recurring"`
	Description     string  `json:"description"`
	MerchantName    string  `json:"merchantName"`
	AutoPay         bool    `json:"autoPay"`
	DetectedFromSMS bool    `json:"detectedFromSms"`
	CreatedAt       string  `json:"createdAt,omitempty"`
}

type subscriptionJSON struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Amount       float64 `json:"amount"`
	Frequency    string  `json:"frequency"`
	RenewalDate  string  `json:"renewalDate"`
	CategoryID   int     `json:"categoryId"`
	UserID       int     `json:"userId"`
	Active       bool    `json:"active"`
	Description  string  `json:"description"`
	MerchantName string  `json:"merchantName"`
	AutoPay      bool    `json:"autoPay"`
	LastUsed     string  `json:"lastUsed,omitempty"`
	CreatedAt    string  `json:"createdAt,omitempty"`
}

type categoryJSON struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Kind  string `json:"kind"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type suggestionJSON struct {
	ID               int      `json:"id"`
	Type             string   `json:"type"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Icon             string   `json:"icon"`
	BillID           int      `json:"billId,omitempty"`
	SubscriptionID   int      `json:"subscriptionId,omitempty"`
	PotentialSavings *float64 `json:"potentialSavings"`
	Dismissed        bool     `json:"dismissed"`
	UserID           int      `json:"userId"`
	CreatedAt        string   `json:"createdAt,omitempty"`
}

type reminderJSON struct {
	ID             int    `json:"id"`
	Message        string `json:"message"`
	UserID         int    `json:"userId"`
	BillID         int    `json:"billId,omitempty"`
	SubscriptionID int    `json:"subscriptionId,omitempty"`
	RemindAt       string `json:"remindAt"`
	Sent           bool   `json:"sent"`
	Dismissed      bool   `json:"dismissed"`
	Priority       string `json:"priority"`
	CreatedAt      string `json:"createdAt,omitempty"`
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func billToJSON(b core.Bill) billJSON {
	return billJSON{
		ID:              b.ID,
		Title:           b.Title,
		Amount:          b.Amount,
		DueDate:         b.DueDate.Format(dateLayout),
		CategoryID:      b.CategoryID,
		UserID:          b.UserID,
		Paid:            b.Paid,
		Recurring:       b.Recurring,
		Description:     b.Description,
		MerchantName:    b.MerchantName,
		AutoPay:         b.AutoPay,
		DetectedFromSMS: b.DetectedFromSMS,
		CreatedAt:       formatTimestamp(b.CreatedAt),
	}
}

func billsToJSON(bills []core.Bill) []billJSON {
	out := make([]billJSON, 0, len(bills))
	for _, b := range bills {
		out = append(out, billToJSON(b))
	}
	return out
}

// billFromJSON converts a wire bill into the domain form. The id, owner and
// creation timestamp of the payload are advisory only; handlers override
// them from the route and query.
func billFromJSON(in billJSON) (core.Bill, error) {
	var due time.Time
	if in.DueDate != "" {
		parsed, err := time.ParseInLocation(dateLayout, in.DueDate, time.UTC)
		if err != nil {
			return core.Bill{}, err
		}
		due = parsed
	}
	return core.Bill{
		Title:           in.Title,
		Amount:          in.Amount,
		DueDate:         due,
		CategoryID:      in.CategoryID,
		UserID:          in.UserID,
		Paid:            in.Paid,
		Recurring:       in.Recurring,
		Description:     in.Description,
		MerchantName:    in.MerchantName,
		AutoPay:         in.AutoPay,
		DetectedFromSMS: in.DetectedFromSMS,
	}, nil
}

func subscriptionToJSON(sub core.Subscription) subscriptionJSON {
	out := subscriptionJSON{
		ID:           sub.ID,
		Title:        sub.Title,
		Amount:       sub.Amount,
		Frequency:    string(sub.Frequency),
		RenewalDate:  sub.RenewalDate.Format(dateLayout),
		CategoryID:   sub.CategoryID,
		UserID:       sub.UserID,
		Active:       sub.Active,
		Description:  sub.Description,
		MerchantName: sub.MerchantName,
		AutoPay:      sub.AutoPay,
		CreatedAt:    formatTimestamp(sub.CreatedAt),
	}
	if !sub.LastUsed.IsZero() {
		out.LastUsed = sub.LastUsed.Format(time.RFC3339)
	}
	return out
}

func subscriptionFromJSON(in subscriptionJSON) (core.Subscription, error) {
	var renewal time.Time
	if in.RenewalDate != "" {
		parsed, err := time.ParseInLocation(dateLayout, in.RenewalDate, time.UTC)
		if err != nil {
			return core.Subscription{}, err
		}
		renewal = parsed
	}
	var lastUsed time.Time
	if in.LastUsed != "" {
		parsed, err := time.Parse(time.RFC3339, in.LastUsed)
		if err != nil {
			return core.Subscription{}, err
		}
		lastUsed = parsed
	}
	return core.Subscription{
		Title:        in.Title,
		Amount:       in.Amount,
		Frequency:    core.Frequency(in.Frequency),
		RenewalDate:  renewal,
		CategoryID:   in.CategoryID,
		UserID:       in.UserID,
		Active:       in.Active,
		Description:  in.Description,
		MerchantName: in.MerchantName,
		AutoPay:      in.AutoPay,
		LastUsed:     lastUsed,
	}, nil
}

func categoryToJSON(c core.Category) categoryJSON {
	return categoryJSON{
		ID:    c.ID,
		Name:  c.Name,
		Type:  c.Type,
		Kind:  string(c.Kind),
		Icon:  c.Icon,
		Color: c.Color,
	}
}

func suggestionToJSON(sg core.Suggestion) suggestionJSON {
	return suggestionJSON{
		ID:               sg.ID,
		Type:             string(sg.Type),
		Title:            sg.Title,
		Description:      sg.Description,
		Icon:             sg.Icon,
		BillID:           sg.BillID,
		SubscriptionID:   sg.SubscriptionID,
		PotentialSavings: sg.PotentialSavings,
		Dismissed:        sg.Dismissed,
		UserID:           sg.UserID,
		CreatedAt:        formatTimestamp(sg.CreatedAt),
	}
}

func reminderToJSON(r core.Reminder) reminderJSON {
	return reminderJSON{
		ID:             r.ID,
		Message:        r.Message,
		UserID:         r.UserID,
		BillID:         r.BillID,
		SubscriptionID: r.SubscriptionID,
		RemindAt:       formatTimestamp(r.RemindAt),
		Sent:           r.Sent,
		Dismissed:      r.Dismissed,
		Priority:       r.Priority,
		CreatedAt:      formatTimestamp(r.CreatedAt),
	}
}
