// Package store implements the in-memory record store that owns all bill,
// subscription, category, suggestion and reminder instances for one logical
// session. Callers receive copies; the store never hands out references to
// its own state.
package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"billfold/internal/core"
)

var ErrNotFound = errors.New("record not found")

// Store holds all records for a session behind a single mutex. Identifiers
// are assigned as max(existing)+1 per collection and never reused, so
// ascending id order is insertion order.
type Store struct {
	mu  sync.Mutex
	now func() time.Time

	users         map[int]core.User
	bills         map[int]core.Bill
	subscriptions map[int]core.Subscription
	categories    map[int]core.Category
	suggestions   map[int]core.Suggestion
	reminders     map[int]core.Reminder
	smsMessages   map[int]core.SMSMessage
}

// New creates an empty store seeded with the fixed category set and the demo
// user.
func New() *Store {
	s := &Store{
		now:           time.Now,
		users:         make(map[int]core.User),
		bills:         make(map[int]core.Bill),
		subscriptions: make(map[int]core.Subscription),
		categories:    make(map[int]core.Category),
		suggestions:   make(map[int]core.Suggestion),
		reminders:     make(map[int]core.Reminder),
		smsMessages:   make(map[int]core.SMSMessage),
	}
	s.seedCategories()
	s.users[1] = core.User{
		ID:        1,
		Username:  "demo",
		Email:     "demo@example.com",
		Name:      "Demo User",
		CreatedAt: s.now(),
	}
	return s
}

// SetClock overrides the store's time source. Used by tests to pin
// date-window queries.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Now reads the store's clock. Callers computing date windows over store
// contents must use this clock, not their own, so the windows agree with
// queries like UpcomingBills.
func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now()
}

func (s *Store) seedCategories() {
	cats := []core.Category{
		{ID: 1, Name: "Housing", Type: "expense", Kind: core.KindGeneral, Icon: "house", Color: "#3498db"},
		{ID: 2, Name: "Utilities", Type: "expense", Kind: core.KindUtilities, Icon: "bolt", Color: "#2ecc71"},
		{ID: 3, Name: "Transportation", Type: "expense", Kind: core.KindGeneral, Icon: "car", Color: "#e74c3c"},
		{ID: 4, Name: "Groceries", Type: "expense", Kind: core.KindGeneral, Icon: "cart", Color: "#f39c12"},
		{ID: 5, Name: "Entertainment", Type: "expense", Kind: core.KindGeneral, Icon: "film", Color: "#9b59b6"},
		{ID: 6, Name: "Dining", Type: "expense", Kind: core.KindGeneral, Icon: "plate", Color: "#e67e22"},
		{ID: 7, Name: "Healthcare", Type: "expense", Kind: core.KindGeneral, Icon: "hospital", Color: "#1abc9c"},
		{ID: 8, Name: "Insurance", Type: "expense", Kind: core.KindGeneral, Icon: "shield", Color: "#34495e"},
		{ID: 9, Name: "Subscriptions", Type: "expense", Kind: core.KindSubscriptions, Icon: "phone", Color: "#8e44ad"},
		{ID: 10, Name: "Other", Type: "expense", Kind: core.KindGeneral, Icon: "pin", Color: "#95a5a6"},
	}
	for _, c := range cats {
		s.categories[c.ID] = c
	}
}

func nextID[T any](m map[int]T) int {
	max := 0
	for id := range m {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// sortedIDs returns the collection's keys ascending. Ids are monotonic, so
// this recovers insertion order.
func sortedIDs[T any](m map[int]T) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// midnight truncates t to its calendar date at UTC midnight.
func midnight(t time.Time) time.Time {
	return core.Date(t.Year(), int(t.Month()), t.Day())
}

// --- users ---

func (s *Store) GetUser(id int) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return core.User{}, ErrNotFound
	}
	return u, nil
}

// --- categories ---

// Categories returns the fixed category set in id order.
func (s *Store) Categories() []core.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Category, 0, len(s.categories))
	for _, id := range sortedIDs(s.categories) {
		out = append(out, s.categories[id])
	}
	return out
}

func (s *Store) GetCategory(id int) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return core.Category{}, ErrNotFound
	}
	return c, nil
}

// --- bills ---

func (s *Store) CreateBill(b core.Bill) (core.Bill, error) {
	if err := b.Validate(); err != nil {
		return core.Bill{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = nextID(s.bills)
	b.CreatedAt = s.now()
	s.bills[b.ID] = b
	return b, nil
}

func (s *Store) GetBill(id int) (core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bills[id]
	if !ok {
		return core.Bill{}, ErrNotFound
	}
	return b, nil
}

// UpdateBill replaces the stored bill's mutable fields. The id, owner and
// creation timestamp are preserved.
func (s *Store) UpdateBill(id int, b core.Bill) (core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.bills[id]
	if !ok {
		return core.Bill{}, ErrNotFound
	}
	b.ID = cur.ID
	b.UserID = cur.UserID
	b.CreatedAt = cur.CreatedAt
	if err := b.Validate(); err != nil {
		return core.Bill{}, err
	}
	s.bills[id] = b
	return b, nil
}

// MarkBillPaid flips the paid flag.
func (s *Store) MarkBillPaid(id int, paid bool) (core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bills[id]
	if !ok {
		return core.Bill{}, ErrNotFound
	}
	b.Paid = paid
	s.bills[id] = b
	return b, nil
}

func (s *Store) DeleteBill(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bills[id]; !ok {
		return ErrNotFound
	}
	delete(s.bills, id)
	return nil
}

// Bills returns all of the user's bills in insertion order.
func (s *Store) Bills(userID int) []core.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.billsLocked(userID)
}

func (s *Store) billsLocked(userID int) []core.Bill {
	var out []core.Bill
	for _, id := range sortedIDs(s.bills) {
		if b := s.bills[id]; b.UserID == userID {
			out = append(out, b)
		}
	}
	return out
}

// UpcomingBills returns the user's unpaid bills due in [today, today+days]
// inclusive, ascending by due date, insertion order on ties.
func (s *Store) UpcomingBills(userID, days int) []core.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := midnight(s.now())
	target := today.AddDate(0, 0, days)

	var out []core.Bill
	for _, b := range s.billsLocked(userID) {
		if b.Paid {
			continue
		}
		due := midnight(b.DueDate)
		if !due.Before(today) && !due.After(target) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}

// --- subscriptions ---

func (s *Store) CreateSubscription(sub core.Subscription) (core.Subscription, error) {
	if err := sub.Validate(); err != nil {
		return core.Subscription{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sub.ID = nextID(s.subscriptions)
	sub.CreatedAt = s.now()
	s.subscriptions[sub.ID] = sub
	return sub, nil
}

func (s *Store) GetSubscription(id int) (core.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subscriptions[id]
	if !ok {
		return core.Subscription{}, ErrNotFound
	}
	return sub, nil
}

func (s *Store) UpdateSubscription(id int, sub core.Subscription) (core.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.subscriptions[id]
	if !ok {
		return core.Subscription{}, ErrNotFound
	}
	sub.ID = cur.ID
	sub.UserID = cur.UserID
	sub.CreatedAt = cur.CreatedAt
	if err := sub.Validate(); err != nil {
		return core.Subscription{}, err
	}
	s.subscriptions[id] = sub
	return sub, nil
}

func (s *Store) DeleteSubscription(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscriptions[id]; !ok {
		return ErrNotFound
	}
	delete(s.subscriptions, id)
	return nil
}

// Subscriptions returns all of the user's subscriptions in insertion order.
func (s *Store) Subscriptions(userID int) []core.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Subscription
	for _, id := range sortedIDs(s.subscriptions) {
		if sub := s.subscriptions[id]; sub.UserID == userID {
			out = append(out, sub)
		}
	}
	return out
}

// ActiveSubscriptions returns the user's active subscriptions in insertion
// order.
func (s *Store) ActiveSubscriptions(userID int) []core.Subscription {
	var out []core.Subscription
	for _, sub := range s.Subscriptions(userID) {
		if sub.Active {
			out = append(out, sub)
		}
	}
	return out
}

// --- suggestions ---

func (s *Store) CreateSuggestion(sg core.Suggestion) (core.Suggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sg.ID = nextID(s.suggestions)
	sg.CreatedAt = s.now()
	if sg.PotentialSavings != nil {
		v := *sg.PotentialSavings
		sg.PotentialSavings = &v
	}
	s.suggestions[sg.ID] = sg
	return sg, nil
}

// DismissSuggestion marks a suggestion dismissed. Dismissed suggestions stay
// in the store; they are only filtered from active queries.
func (s *Store) DismissSuggestion(id int) (core.Suggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sg, ok := s.suggestions[id]
	if !ok {
		return core.Suggestion{}, ErrNotFound
	}
	sg.Dismissed = true
	s.suggestions[id] = sg
	return copySuggestion(sg), nil
}

func (s *Store) DeleteSuggestion(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.suggestions[id]; !ok {
		return ErrNotFound
	}
	delete(s.suggestions, id)
	return nil
}

// Suggestions returns all of the user's suggestions in insertion order.
func (s *Store) Suggestions(userID int) []core.Suggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Suggestion
	for _, id := range sortedIDs(s.suggestions) {
		if sg := s.suggestions[id]; sg.UserID == userID {
			out = append(out, copySuggestion(sg))
		}
	}
	return out
}

// ActiveSuggestions returns the user's non-dismissed suggestions in
// insertion order.
func (s *Store) ActiveSuggestions(userID int) []core.Suggestion {
	var out []core.Suggestion
	for _, sg := range s.Suggestions(userID) {
		if !sg.Dismissed {
			out = append(out, sg)
		}
	}
	return out
}

func copySuggestion(sg core.Suggestion) core.Suggestion {
	if sg.PotentialSavings != nil {
		v := *sg.PotentialSavings
		sg.PotentialSavings = &v
	}
	return sg
}

// --- reminders ---

func (s *Store) CreateReminder(r core.Reminder) (core.Reminder, error) {
	if err := r.Validate(); err != nil {
		return core.Reminder{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = nextID(s.reminders)
	r.CreatedAt = s.now()
	s.reminders[r.ID] = r
	return r, nil
}

// MarkReminderSent records that a reminder has been delivered.
func (s *Store) MarkReminderSent(id int) (core.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reminders[id]
	if !ok {
		return core.Reminder{}, ErrNotFound
	}
	r.Sent = true
	s.reminders[id] = r
	return r, nil
}

// DismissReminder marks a reminder dismissed.
func (s *Store) DismissReminder(id int) (core.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reminders[id]
	if !ok {
		return core.Reminder{}, ErrNotFound
	}
	r.Dismissed = true
	s.reminders[id] = r
	return r, nil
}

// Reminders returns all of the user's reminders in insertion order.
func (s *Store) Reminders(userID int) []core.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Reminder
	for _, id := range sortedIDs(s.reminders) {
		if r := s.reminders[id]; r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// PendingReminders returns reminders that are due, unsent and not dismissed.
func (s *Store) PendingReminders(userID int) []core.Reminder {
	s.mu.Lock()
	now := s.now()
	s.mu.Unlock()

	var out []core.Reminder
	for _, r := range s.Reminders(userID) {
		if !r.Sent && !r.Dismissed && !r.RemindAt.After(now) {
			out = append(out, r)
		}
	}
	return out
}

// --- sms messages ---

func (s *Store) CreateSMSMessage(m core.SMSMessage) (core.SMSMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = nextID(s.smsMessages)
	m.CreatedAt = s.now()
	s.smsMessages[m.ID] = m
	return m, nil
}

func (s *Store) UpdateSMSMessage(id int, m core.SMSMessage) (core.SMSMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.smsMessages[id]
	if !ok {
		return core.SMSMessage{}, ErrNotFound
	}
	m.ID = cur.ID
	m.CreatedAt = cur.CreatedAt
	s.smsMessages[id] = m
	return m, nil
}

// SMSMessages returns all of the user's stored messages in insertion order.
func (s *Store) SMSMessages(userID int) []core.SMSMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.SMSMessage
	for _, id := range sortedIDs(s.smsMessages) {
		if m := s.smsMessages[id]; m.UserID == userID {
			out = append(out, m)
		}
	}
	return out
}
