package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Monthly   Frequency = "monthly"
	Yearly    Frequency = "yearly"
	Quarterly Frequency = "quarterly"
	Weekly    Frequency = "weekly"
	Biweekly  Frequency = "biweekly"
)

const (
	KindUtilities     CategoryKind = "utilities"
	KindSubscriptions CategoryKind = "subscriptions"
	KindGeneral       CategoryKind = "general"
)

const (
	SuggestionSavings      SuggestionType = "savings"
	SuggestionReminder     SuggestionType = "reminder"
	SuggestionOptimization SuggestionType = "optimization"
)

type (
	// Frequency is the billing cadence of a subscription.
	Frequency string

	// CategoryKind tags a category with its forecast routing role.
	// Routing reads this tag instead of comparing raw category ids.
	CategoryKind string

	// SuggestionType classifies an advisory suggestion.
	SuggestionType string

	// Category is a fixed classification bucket for spend. The seed set is
	// created at store initialization and never mutated afterwards.
	Category struct {
		ID    int
		Name  string
		Type  string // currently always "expense"
		Kind  CategoryKind
		Icon  string
		Color string
	}

	// Bill is a one-off or recurring payable obligation with a due date.
	// DueDate carries calendar-date semantics only (UTC midnight).
	Bill struct {
		ID              int
		Title           string
		Amount          float64
		DueDate         time.Time
		CategoryID      int
		UserID          int
		Paid            bool
		Recurring       bool
		Description     string
		MerchantName    string
		AutoPay         bool
		DetectedFromSMS bool
		CreatedAt       time.Time
	}

	// Subscription is a recurring charge with a cadence and rolling renewal
	// date. Active toggles independently of deletion.
	Subscription struct {
		ID           int
		Title        string
		Amount       float64
		Frequency    Frequency
		RenewalDate  time.Time
		CategoryID   int
		UserID       int
		Active       bool
		Description  string
		MerchantName string
		AutoPay      bool
		LastUsed     time.Time // zero when never recorded
		CreatedAt    time.Time
	}

	// Suggestion is an advisory item surfaced to the user. BillID and
	// SubscriptionID are optional references (0 = none); in practice at most
	// one of the two is set.
	Suggestion struct {
		ID               int
		Type             SuggestionType
		Title            string
		Description      string
		Icon             string
		BillID           int
		SubscriptionID   int
		PotentialSavings *float64
		Dismissed        bool
		UserID           int
		CreatedAt        time.Time
	}

	// Reminder is a scheduled notification about a bill or subscription.
	Reminder struct {
		ID             int
		Message        string
		UserID         int
		BillID         int
		SubscriptionID int
		RemindAt       time.Time
		Sent           bool
		Dismissed      bool
		Priority       string
		CreatedAt      time.Time
	}

	// SMSMessage is a raw inbound message kept for provenance. BillID links
	// to the bill created from it, if extraction succeeded.
	SMSMessage struct {
		ID        int
		UserID    int
		Sender    string
		Content   string
		Processed bool
		BillID    int
		CreatedAt time.Time
	}

	// User is the owner of a record set. Authentication is out of scope, so
	// no credentials are carried.
	User struct {
		ID        int
		Username  string
		Email     string
		Name      string
		CreatedAt time.Time
	}
)

var (
	ErrEmptyTitle       = errors.New("empty title")
	ErrNegativeAmount   = errors.New("negative amount")
	ErrZeroDueDate      = errors.New("due date cannot be zero")
	ErrZeroRenewalDate  = errors.New("renewal date cannot be zero")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrInvalidUser      = errors.New("invalid user id")
	ErrEmptyMessage     = errors.New("empty message")
)

// Valid reports whether f is one of the supported billing cadences. An
// unsupported frequency is not an error for aggregation purposes (it
// normalizes to zero), but writes should reject it up front.
func (f Frequency) Valid() bool {
	switch f {
	case Monthly, Yearly, Quarterly, Weekly, Biweekly:
		return true
	default:
		return false
	}
}

// Date builds a calendar date at UTC midnight. Due and renewal dates have no
// time-of-day semantics.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func (b Bill) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return ErrEmptyTitle
	}
	if b.Amount < 0 {
		return ErrNegativeAmount
	}
	if b.DueDate.IsZero() {
		return ErrZeroDueDate
	}
	if b.UserID <= 0 {
		return ErrInvalidUser
	}
	return nil
}

func (s Subscription) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return ErrEmptyTitle
	}
	if s.Amount < 0 {
		return ErrNegativeAmount
	}
	if s.RenewalDate.IsZero() {
		return ErrZeroRenewalDate
	}
	if !s.Frequency.Valid() {
		return ErrInvalidFrequency
	}
	if s.UserID <= 0 {
		return ErrInvalidUser
	}
	return nil
}

func (r Reminder) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return ErrEmptyMessage
	}
	if r.UserID <= 0 {
		return ErrInvalidUser
	}
	return nil
}
