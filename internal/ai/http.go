package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"vitae/internal/domain"
)

// requestTimeout is the budget for a single collaborator call.
const requestTimeout = 30 * time.Second

// maxResponseBytes caps collaborator responses (5MB, plenty for any
// resume-sized payload).
const maxResponseBytes = 5 * 1024 * 1024

// HTTPClient talks to an AI gateway over JSON. The gateway owns
// prompts and model selection; this client only moves structured
// payloads and validates what comes back.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

var (
	_ ResumeParser      = (*HTTPClient)(nil)
	_ InstructionEditor = (*HTTPClient)(nil)
	_ MarkupRenderer    = (*HTTPClient)(nil)
)

// NewHTTPClient creates a client for the gateway at baseURL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

func (c *HTTPClient) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %s: %s", path, resp.Status, truncate(data, 200))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// ParseResume sends raw file bytes to the gateway's parse endpoint.
func (c *HTTPClient) ParseResume(ctx context.Context, data []byte, mimeType string) (*domain.Resume, error) {
	payload := map[string]string{
		"data":     base64.StdEncoding.EncodeToString(data),
		"mimeType": mimeType,
	}
	var resume domain.Resume
	if err := c.post(ctx, "/v1/parse", payload, &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// EditDocument sends the current snapshot plus an instruction and
// returns the replacement snapshot. Replacements that violate the
// block/layout invariants are rejected as malformed so a confused
// collaborator can never corrupt the editor.
func (c *HTTPClient) EditDocument(ctx context.Context, doc domain.Document, instruction string) (*domain.Document, error) {
	payload := map[string]any{
		"document":    doc,
		"instruction": instruction,
	}
	var out domain.Document
	if err := c.post(ctx, "/v1/edit", payload, &out); err != nil {
		return nil, err
	}
	if err := validateDocument(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RenderMarkup asks the gateway for print-ready markup.
func (c *HTTPClient) RenderMarkup(ctx context.Context, doc domain.Document) (string, error) {
	var out struct {
		HTML string `json:"html"`
	}
	if err := c.post(ctx, "/v1/render", map[string]any{"document": doc}, &out); err != nil {
		return "", err
	}
	if out.HTML == "" {
		return "", ErrMalformedResponse
	}
	return out.HTML, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
