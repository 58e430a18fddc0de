package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ai-webchat-be/pkg/llm"
)

const baseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// APIError carries the HTTP status of a failed generateContent call so
// callers can classify failures without sniffing message text.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: status %d: %s", e.StatusCode, e.Body)
}

// HasMarker reports whether the provider error body contains the given
// upper-cased marker (e.g. "API_KEY_INVALID" inside a 400 body).
func (e *APIError) HasMarker(marker string) bool {
	return strings.Contains(strings.ToUpper(e.Body), strings.ToUpper(marker))
}

type chatPart struct {
	Text string `json:"text"`
}

type chatContent struct {
	Parts []chatPart `json:"parts"`
	Role  string     `json:"role"`
}

type chatRequest struct {
	Contents []chatContent `json:"contents"`
}

type chatCandidate struct {
	Content *chatContent `json:"content"`
}

type chatResponse struct {
	Candidates []chatCandidate `json:"candidates"`
}

// Provider talks to the Gemini generateContent REST endpoint.
type Provider struct {
	apiKey string
	model  string
	base   string
	client *http.Client
}

func NewProvider(apiKey, model string) *Provider {
	return &Provider{
		apiKey: apiKey,
		model:  model,
		base:   baseURL,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Chat sends the whole conversation, oldest turn first, and returns the raw
// reply text. Non-200 responses come back as *APIError; an empty candidate
// list yields an empty string with no error.
func (p *Provider) Chat(ctx context.Context, history []llm.Message) (string, error) {
	contents := make([]chatContent, 0, len(history))
	for _, msg := range history {
		contents = append(contents, chatContent{
			Parts: []chatPart{{Text: msg.Content}},
			Role:  msg.Role,
		})
	}

	payload, err := json.Marshal(chatRequest{Contents: contents})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent", p.base, p.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: res.StatusCode, Body: string(resBody)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(resBody, &parsed); err != nil {
		return "", err
	}

	if len(parsed.Candidates) == 0 || parsed.Candidates[0].Content == nil ||
		len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
