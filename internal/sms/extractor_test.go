package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// completionServer fakes the chat completions endpoint, returning reply as
// the assistant message content.
func completionServer(t *testing.T, reply string, gotReq *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if gotReq != nil {
			if err := json.NewDecoder(r.Body).Decode(gotReq); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		resp := chatResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message chatMessage `json:"message"`
		}{Message: chatMessage{Role: "assistant", Content: reply}})
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestGroqClient_AnalyzeSMS(t *testing.T) {
	var req chatRequest
	srv := completionServer(t, `{"title":"Electricity Bill","amount":87.5,"dueDate":"2025-03-25","merchantName":"Power Company","description":"Monthly bill","categoryId":0}`, &req)
	defer srv.Close()

	g := NewGroqClient("test-key", srv.URL, "llama3-70b-8192")
	bill, err := g.AnalyzeSMS(context.Background(), "POWERCO", "Your bill of $87.50 is due on 25 March")
	if err != nil {
		t.Fatalf("AnalyzeSMS: %v", err)
	}
	if bill == nil {
		t.Fatal("expected extracted bill")
	}
	if bill.Title != "Electricity Bill" || bill.Amount != 87.5 || bill.DueDate != "2025-03-25" {
		t.Errorf("unexpected bill: %+v", bill)
	}

	if req.Model != "llama3-70b-8192" {
		t.Errorf("model = %q", req.Model)
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
		t.Fatalf("unexpected messages: %+v", req.Messages)
	}
	if !strings.Contains(req.Messages[1].Content, "Sender: POWERCO") {
		t.Errorf("user message missing sender: %q", req.Messages[1].Content)
	}
}

func TestGroqClient_NotABill(t *testing.T) {
	srv := completionServer(t, `{"isBill": false}`, nil)
	defer srv.Close()

	g := NewGroqClient("test-key", srv.URL, "m")
	bill, err := g.AnalyzeSMS(context.Background(), "MOM", "Dinner at 7?")
	if err != nil {
		t.Fatalf("AnalyzeSMS: %v", err)
	}
	if bill != nil {
		t.Errorf("expected nil bill for non-bill message, got %+v", bill)
	}
}

func TestGroqClient_MalformedReply(t *testing.T) {
	srv := completionServer(t, `Sure! Here's the bill information you asked for.`, nil)
	defer srv.Close()

	g := NewGroqClient("test-key", srv.URL, "m")
	if _, err := g.AnalyzeSMS(context.Background(), "X", "y"); err == nil {
		t.Error("expected error for non-JSON reply")
	}
}

func TestGroqClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewGroqClient("test-key", srv.URL, "m")
	_, err := g.AnalyzeSMS(context.Background(), "X", "y")
	if err == nil || !strings.Contains(err.Error(), "status 429") {
		t.Errorf("error = %v, want status 429", err)
	}
}

func TestGroqClient_TrimsBaseURL(t *testing.T) {
	srv := completionServer(t, `{"isBill": false}`, nil)
	defer srv.Close()

	g := NewGroqClient("test-key", srv.URL+"/", "m")
	if _, err := g.AnalyzeSMS(context.Background(), "X", "y"); err != nil {
		t.Errorf("trailing slash in base URL should be tolerated: %v", err)
	}
}
