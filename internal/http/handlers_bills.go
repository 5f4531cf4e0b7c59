package http

import (
	"encoding/json"
	"net/http"
)

func (s *Server) listBills(w http.ResponseWriter, r *http.Request) {
	bills := s.store.Bills(userIDParam(r))
	s.respondJSON(w, http.StatusOK, billsToJSON(bills))
}

func (s *Server) upcomingBills(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", 7)
	if err != nil || days < 0 {
		s.respondError(w, http.StatusBadRequest, "invalid days parameter")
		return
	}
	bills := s.store.UpcomingBills(userIDParam(r), days)
	s.respondJSON(w, http.StatusOK, billsToJSON(bills))
}

func (s *Server) getBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "bill_id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid bill id")
		return
	}
	bill, err := s.store.GetBill(id)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, billToJSON(bill))
}

func (s *Server) createBill(w http.ResponseWriter, r *http.Request) {
	var in billJSON
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	bill, err := billFromJSON(in)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid due date")
		return
	}
	bill.UserID = userIDParam(r)

	created, err := s.store.CreateBill(bill)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, billToJSON(created))
}

func (s *Server) updateBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "bill_id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid bill id")
		return
	}
	var in billJSON
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	bill, err := billFromJSON(in)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid due date")
		return
	}

	updated, err := s.store.UpdateBill(id, bill)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, billToJSON(updated))
}

func (s *Server) markBillPaid(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "bill_id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid bill id")
		return
	}
	var in struct {
		Paid *bool `json:"paid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	paid := true
	if in.Paid != nil {
		paid = *in.Paid
	}

	updated, err := s.store.MarkBillPaid(id, paid)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, billToJSON(updated))
}

func (s *Server) deleteBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "bill_id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid bill id")
		return
	}
	if err := s.store.DeleteBill(id); err != nil {
		s.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
