package http

import (
	"encoding/json"
	"net/http"
	"time"

	"billfold/internal/core"
	"billfold/internal/stats"
)

// maxForecastMonths bounds the forecast horizon. The parameter sizes an
// allocation, so it must not be caller-controlled without a ceiling.
const maxForecastMonths = 120

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	result := stats.ComputeStats(s.store, userIDParam(r), s.store.Now())
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) getForecast(w http.ResponseWriter, r *http.Request) {
	months, err := queryInt(r, "months", 3)
	if err != nil || months < 0 || months > maxForecastMonths {
		s.respondError(w, http.StatusBadRequest, "invalid months parameter")
		return
	}
	result := stats.Forecast(s.store, userIDParam(r), months, s.store.Now())
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) listCategories(w http.ResponseWriter, _ *http.Request) {
	cats := s.store.Categories()
	out := make([]categoryJSON, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryToJSON(c))
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) listSuggestions(w http.ResponseWriter, r *http.Request) {
	userID := userIDParam(r)

	var suggestions = s.store.Suggestions(userID)
	if r.URL.Query().Get("active") == "true" {
		suggestions = s.store.ActiveSuggestions(userID)
	}

	out := make([]suggestionJSON, 0, len(suggestions))
	for _, sg := range suggestions {
		out = append(out, suggestionToJSON(sg))
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) dismissSuggestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "suggestion_id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid suggestion id")
		return
	}
	sg, err := s.store.DismissSuggestion(id)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, suggestionToJSON(sg))
}

func (s *Server) listReminders(w http.ResponseWriter, r *http.Request) {
	reminders := s.store.Reminders(userIDParam(r))
	out := make([]reminderJSON, 0, len(reminders))
	for _, rem := range reminders {
		out = append(out, reminderToJSON(rem))
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) createReminder(w http.ResponseWriter, r *http.Request) {
	var in reminderJSON
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	remindAt, err := time.Parse(time.RFC3339, in.RemindAt)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid remindAt timestamp")
		return
	}

	created, err := s.store.CreateReminder(core.Reminder{
		Message:        in.Message,
		UserID:         userIDParam(r),
		BillID:         in.BillID,
		SubscriptionID: in.SubscriptionID,
		RemindAt:       remindAt,
		Priority:       in.Priority,
	})
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, reminderToJSON(created))
}

func (s *Server) dismissReminder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "reminder_id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid reminder id")
		return
	}
	rem, err := s.store.DismissReminder(id)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, reminderToJSON(rem))
}
