package http

import (
	"encoding/json"
	"net/http"
)

func (s *Server) listSubscriptions(w http.ResponseWriter, r *http.Request) {
	userID := userIDParam(r)

	var subs = s.store.Subscriptions(userID)
	if r.URL.Query().Get("active") == "true" {
		subs = s.store.ActiveSubscriptions(userID)
	}

	out := make([]subscriptionJSON, 0, len(subs))
	for _, sub := range subs {
		out = append(out, subscriptionToJSON(sub))
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) getSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "subscription_id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid subscription id")
		return
	}
	sub, err := s.store.GetSubscription(id)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, subscriptionToJSON(sub))
}

func (s *Server) createSubscription(w http.ResponseWriter, r *http.Request) {
	var in subscriptionJSON
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sub, err := subscriptionFromJSON(in)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid date field")
		return
	}
	sub.UserID = userIDParam(r)

	created, err := s.store.CreateSubscription(sub)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, subscriptionToJSON(created))
}

func (s *Server) updateSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "subscription_id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid subscription id")
		return
	}
	var in subscriptionJSON
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sub, err := subscriptionFromJSON(in)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid date field")
		return
	}

	updated, err := s.store.UpdateSubscription(id, sub)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, subscriptionToJSON(updated))
}

func (s *Server) deleteSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "subscription_id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid subscription id")
		return
	}
	if err := s.store.DeleteSubscription(id); err != nil {
		s.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
