package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient talks to a local generation service over HTTP.
type HTTPClient struct {
	url     string
	headers map[string]string
	client  *http.Client
}

// Config configures the HTTP generation client.
type Config struct {
	URL     string
	Timeout time.Duration
	Headers map[string]string
}

// NewHTTPClient creates an HTTP generation client.
func NewHTTPClient(cfg Config) (*HTTPClient, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("inference URL is empty")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		url:     cfg.URL,
		headers: cfg.Headers,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

type generateRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p,omitempty"`
}

type generateResponse struct {
	Text             string `json:"text"`
	TokenCount       int    `json:"token_count"`
	TimeToFirstTokMs int64  `json:"time_to_first_token_ms"`
	Error            string `json:"error,omitempty"`
}

// Generate posts the prompt and maps service-reported failure classes onto
// the package's typed errors.
func (c *HTTPClient) Generate(ctx context.Context, req Request) (Response, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	body, err := json.Marshal(generateRequest{
		Prompt:    req.Prompt,
		MaxTokens: req.MaxTokens,
		TopP:      req.TopP,
	})
	if err != nil {
		return Response{}, fmt.Errorf("failed to marshal generation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return Response{}, ErrTimeout
		}
		return Response{}, fmt.Errorf("generation request failed: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode >= 300 {
		return Response{}, fmt.Errorf("generation request failed with status %s", resp.Status)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Response{}, fmt.Errorf("failed to decode generation response: %w", err)
	}
	if decoded.Error != "" {
		return Response{}, mapServiceError(decoded.Error)
	}

	return Response{
		Text:             decoded.Text,
		TokenCount:       decoded.TokenCount,
		TimeToFirstToken: time.Duration(decoded.TimeToFirstTokMs) * time.Millisecond,
	}, nil
}

// mapServiceError translates the service's error codes onto the typed errors.
// Unknown codes stay untyped so callers can tell them apart from the
// recoverable classes.
func mapServiceError(code string) error {
	switch code {
	case "invalid_handle":
		return ErrInvalidHandle
	case "stale_handle":
		return ErrStaleHandle
	case "already_unloaded":
		return ErrAlreadyUnloaded
	case "null_context":
		return ErrNullContext
	case "tokenization_failed":
		return ErrTokenization
	case "context_overflow":
		return ErrContextOverflow
	case "decode_failed":
		return ErrDecode
	case "timeout":
		return ErrTimeout
	}
	return fmt.Errorf("generation service error: %s", code)
}
