// Package sms turns inbound SMS text into bill records. Extraction is
// delegated to a chat-completion API behind the Extractor interface; the
// rest of the pipeline (provenance, categorization, record creation) is
// local.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ExtractedBill is the structured result of analyzing one SMS message.
type ExtractedBill struct {
	Title        string  `json:"title"`
	Amount       float64 `json:"amount"`
	DueDate      string  `json:"dueDate"` // YYYY-MM-DD, may be empty
	MerchantName string  `json:"merchantName"`
	Description  string  `json:"description"`
	CategoryID   int     `json:"categoryId"` // 0 = undetermined
}

// Extractor analyzes SMS content for bill information. A nil result with a
// nil error means the message is not a bill notification.
type Extractor interface {
	AnalyzeSMS(ctx context.Context, sender, content string) (*ExtractedBill, error)
}

const extractionSystemPrompt = `You are an AI assistant that extracts bill information from SMS messages.
Extract the following details if present:
- Bill type or name (e.g. electricity, water, credit card)
- Amount due
- Due date
- Merchant or company name

Return ONLY a JSON object with these fields:
{
    "title": "Bill name",
    "amount": 123.45,
    "dueDate": "YYYY-MM-DD",
    "merchantName": "Company name",
    "description": "Brief description of the bill",
    "categoryId": null
}

If you can't extract all fields, use null for missing fields.
If the SMS doesn't appear to be a bill notification, return {"isBill": false}.`

// GroqClient calls a Groq-style (OpenAI-compatible) chat completions API.
type GroqClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewGroqClient(apiKey, baseURL, model string) *GroqClient {
	return &GroqClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// AnalyzeSMS asks the completion API to extract bill data from one message.
func (g *GroqClient) AnalyzeSMS(ctx context.Context, sender, content string) (*ExtractedBill, error) {
	raw, err := g.complete(ctx, []chatMessage{
		{Role: "system", Content: extractionSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Sender: %s\nMessage: %s", sender, content)},
	})
	if err != nil {
		return nil, err
	}

	// The model may flag non-bill messages instead of returning fields.
	var probe struct {
		IsBill *bool `json:"isBill"`
	}
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, fmt.Errorf("parse extraction response: %w", err)
	}
	if probe.IsBill != nil && !*probe.IsBill {
		return nil, nil
	}

	var bill ExtractedBill
	if err := json.Unmarshal([]byte(raw), &bill); err != nil {
		return nil, fmt.Errorf("parse extraction response: %w", err)
	}
	return &bill, nil
}

func (g *GroqClient) complete(ctx context.Context, messages []chatMessage) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: 0.5,
		MaxTokens:   1024,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call completions API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("completions API status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return parsed.Choices[0].Message.Content, nil
}
