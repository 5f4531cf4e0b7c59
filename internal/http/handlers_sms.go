package http

import (
	"encoding/json"
	"net/http"
)

type smsImportRequest struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

type smsImportResponse struct {
	SMSID     int       `json:"smsId"`
	Processed bool      `json:"processed"`
	Bill      *billJSON `json:"bill"`
}

func (s *Server) importSMS(w http.ResponseWriter, r *http.Request) {
	if s.sms == nil {
		s.respondError(w, http.StatusServiceUnavailable, "sms import not configured")
		return
	}

	var in smsImportRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Content == "" {
		s.respondError(w, http.StatusBadRequest, "empty message content")
		return
	}

	result, err := s.sms.ImportSMS(r.Context(), userIDParam(r), in.Sender, in.Content)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "import failed")
		return
	}

	out := smsImportResponse{
		SMSID:     result.Message.ID,
		Processed: result.Message.Processed,
	}
	if result.Bill != nil {
		bill := billToJSON(*result.Bill)
		out.Bill = &bill
	}
	s.respondJSON(w, http.StatusOK, out)
}
