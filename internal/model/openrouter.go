// Package model provides the OpenRouter-backed cloud client. OpenRouter
// fronts the recognised cloud providers (anthropic, openai, google, xai,
// groq, mistral) behind one OpenAI-compatible surface, addressed as
// "<provider>/<id>" model strings — a natural fit for a router whose
// cloudModel is itself just a ModelRef{Provider, ID}.
package model

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/flynn-ai/hybridrouter/internal/errors"
)

// OpenRouterConfig configures the OpenRouter client.
type OpenRouterConfig struct {
	Provider   string // e.g. "anthropic", "openai", "openrouter"
	ID         string // e.g. "claude-3.5-sonnet", "gpt-4o"
	APIKey     string
	BaseURL    string // Default: https://openrouter.ai/api/v1
	Timeout    time.Duration
	MaxRetries int
}

// DefaultOpenRouterConfig returns default configuration for the given
// provider/id pair.
func DefaultOpenRouterConfig(apiKey, provider, id string) *OpenRouterConfig {
	if provider == "" {
		provider = "anthropic"
	}
	if id == "" {
		id = "claude-3.5-sonnet"
	}
	return &OpenRouterConfig{
		Provider:   provider,
		ID:         id,
		APIKey:     apiKey,
		BaseURL:    "https://openrouter.ai/api/v1",
		Timeout:    120 * time.Second,
		MaxRetries: 3,
	}
}

// modelString returns the OpenRouter "<provider>/<id>" model identifier.
func (c *OpenRouterConfig) modelString() string {
	return c.Provider + "/" + c.ID
}

// OpenRouterClient implements Model interface using the OpenRouter API.
type OpenRouterClient struct {
	cfg            *OpenRouterConfig
	client         *http.Client
	circuitBreaker *errors.CircuitBreaker
	retryPolicy    *errors.Policy
}

// NewOpenRouterClient creates a new OpenRouter client.
func NewOpenRouterClient(cfg *OpenRouterConfig) *OpenRouterClient {
	if cfg == nil {
		return nil
	}

	retryPolicy := &errors.Policy{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
		RetryIf: func(err error) bool {
			category := errors.GetCategory(err)
			return category == errors.CategoryTemporary || category == errors.CategoryRateLimit
		},
	}

	cbConfig := &errors.CircuitBreakerConfig{
		MaxFailures:      5,
		ResetTimeout:     60 * time.Second,
		HalfOpenAttempts: 2,
	}

	return &OpenRouterClient{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		circuitBreaker: errors.NewCircuitBreaker("openrouter:"+cfg.Provider, cbConfig),
		retryPolicy:    retryPolicy,
	}
}

// Generate sends a prompt to OpenRouter and returns the response.
func (c *OpenRouterClient) Generate(ctx context.Context, req *Request) (*Response, error) {
	if c == nil {
		return nil, errors.New(errors.CodeModelUnavailable, "OpenRouter client not initialized", errors.CategorySystem)
	}

	if !c.IsAvailable() {
		return nil, errors.NewBuilder(errors.CodeModelUnavailable, "OpenRouter API key not configured").
			System().
			WithSuggestion("Set OPENROUTER_API_KEY environment variable or configure in config.toml").
			WithSuggestion("Get an API key at https://openrouter.ai/keys").
			Build()
	}

	var result *Response
	var err error

	err = c.circuitBreaker.Execute(func() error {
		result, err = c.generateWithRetry(ctx, req)
		return err
	})

	return result, err
}

// generateWithRetry implements the actual API call with retry logic.
func (c *OpenRouterClient) generateWithRetry(ctx context.Context, req *Request) (*Response, error) {
	body := map[string]any{
		"model":    c.cfg.modelString(),
		"messages": []map[string]string{},
	}
	messages := []map[string]string{}
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, map[string]string{"role": "system", "content": req.System})
	}
	messages = append(messages, map[string]string{"role": "user", "content": req.Prompt})
	body["messages"] = messages

	if len(req.Tools) > 0 {
		tools := []map[string]any{}
		for _, tool := range req.Tools {
			tools = append(tools, map[string]any{
				"type": "function",
				"function": map[string]any{
					"name":        tool.Name,
					"description": tool.Description,
					"parameters":  tool.Parameters,
				},
			})
		}
		body["tools"] = tools
		body["parallel_tool_calls"] = true
	}

	if req.JSON {
		body["response_format"] = map[string]string{"type": "json_object"}
	}
	if req.Stream {
		body["stream"] = true
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeModelInvalidResponse, "failed to marshal request", errors.CategoryPermanent)
	}

	type apiResult struct {
		resp     *http.Response
		respBody []byte
	}

	apiRes, retryErr := errors.DoWithResult(ctx, c.retryPolicy, func() (apiResult, error) {
		httpReq, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+"/chat/completions", bytes.NewReader(jsonBody))
		if err != nil {
			return apiResult{}, errors.Wrap(err, errors.CodeNetworkUnavailable, "failed to create HTTP request", errors.CategoryTemporary)
		}

		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		httpReq.Header.Set("HTTP-Referer", "https://flynn.ai")
		httpReq.Header.Set("X-Title", "Flynn Hybrid Router")

		r, err := c.client.Do(httpReq)
		if err != nil {
			return apiResult{}, errors.Wrap(err, errors.CodeNetworkUnavailable, "network request failed", errors.CategoryTemporary)
		}

		b, readErr := io.ReadAll(r.Body)
		r.Body.Close()
		if readErr != nil {
			return apiResult{}, errors.Wrap(readErr, errors.CodeNetworkUnavailable, "failed to read response body", errors.CategoryTemporary)
		}

		switch r.StatusCode {
		case http.StatusOK:
			return apiResult{resp: r, respBody: b}, nil
		case http.StatusTooManyRequests:
			return apiResult{}, handleRateLimitError(r, b)
		case http.StatusUnauthorized:
			return apiResult{}, errors.NewBuilder(errors.CodeModelUnavailable, "invalid API key").
				User().
				WithSuggestion("Check your OpenRouter API key").
				WithSuggestion("Get a new key at https://openrouter.ai/keys").
				Build()
		case http.StatusBadRequest:
			return apiResult{}, errors.NewBuilder(errors.CodeModelInvalidResponse, "bad request - check model name and parameters").
				User().
				WithContext("response", string(b)).
				Build()
		case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
			return apiResult{}, errors.Temporary(errors.CodeModelUnavailable, fmt.Sprintf("API unavailable: %s", r.Status))
		default:
			return apiResult{}, errors.Temporary(errors.CodeModelUnavailable, fmt.Sprintf("API error (status %d): %s", r.StatusCode, string(b)))
		}
	})

	if retryErr != nil {
		return nil, retryErr
	}

	if req.Stream {
		streamResp, err := c.handleStreamResponse(ctx, apiRes.resp)
		apiRes.resp.Body.Close()
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeModelParseError, "stream processing failed", errors.CategoryTemporary)
		}
		return streamResp, nil
	}

	var resp openAIChatResponse
	if err := json.Unmarshal(apiRes.respBody, &resp); err != nil {
		return nil, errors.NewBuilder(errors.CodeModelParseError, "failed to parse API response").
			Permanent().
			Wrap(err).
			WithContext("response_body", string(apiRes.respBody)).
			Build()
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New(errors.CodeModelInvalidResponse, "API response contained no choices", errors.CategoryPermanent)
	}

	modelResp := &Response{
		Text:       resp.Choices[0].Message.Content,
		TokensUsed: resp.Usage.TotalTokens,
		Model:      c.cfg.modelString(),
	}

	for _, tc := range resp.Choices[0].Message.ToolCalls {
		if tc.Type != "function" {
			continue
		}
		var args map[string]any
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
			args = map[string]any{"raw": tc.Function.Arguments}
		}
		modelResp.ToolCalls = append(modelResp.ToolCalls, ToolCall{
			ID:    tc.ID,
			Name:  tc.Function.Name,
			Input: args,
		})
	}

	return modelResp, nil
}

// handleRateLimitError creates a rate limit error with retry-after duration.
// Shared by the local and cloud clients.
func handleRateLimitError(resp *http.Response, body []byte) error {
	retryAfter := 60 * time.Second

	if ra := resp.Header.Get("Retry-After"); ra != "" {
		if seconds, err := time.ParseDuration(ra + "s"); err == nil {
			retryAfter = seconds
		}
	}

	var apiErr struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &apiErr) == nil {
		return errors.RateLimit(errors.CodeModelRateLimit, apiErr.Error.Message, retryAfter)
	}

	return errors.RateLimit(errors.CodeModelRateLimit, fmt.Sprintf("rate limited: %s", string(body)), retryAfter)
}

func (c *OpenRouterClient) handleStreamResponse(ctx context.Context, resp *http.Response) (*Response, error) {
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	writer, _ := ctx.Value(streamWriterKey{}).(io.Writer)

	var fullText bytes.Buffer
	scanner := bufio.NewScanner(resp.Body)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			break
		}

		var chunk openAIStreamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		fullText.WriteString(delta)
		if writer != nil {
			_, _ = writer.Write([]byte(delta))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	text := fullText.String()
	return &Response{
		Text:       text,
		TokensUsed: approxTokens(text),
		Model:      c.cfg.modelString(),
	}, nil
}

// streamWriterKey is the context key under which a stream destination
// writer may be stashed by the caller. Unexported so only this package
// can stash or read it.
type streamWriterKey struct{}

func approxTokens(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) / 4) + 1
}

// IsAvailable checks if the client is configured.
func (c *OpenRouterClient) IsAvailable() bool {
	return c != nil && c.cfg != nil && c.cfg.APIKey != ""
}

// Name returns the model name.
func (c *OpenRouterClient) Name() string {
	if c.cfg != nil {
		return c.cfg.modelString()
	}
	return "openrouter"
}

// IsLocal always returns false; OpenRouter only fronts cloud providers.
func (c *OpenRouterClient) IsLocal() bool {
	return false
}

// Provider returns the recognised cloud provider this model belongs to
// (e.g. "anthropic"), used for credential lookups and session affinity.
func (c *OpenRouterClient) Provider() string {
	if c.cfg != nil && c.cfg.Provider != "" {
		return c.cfg.Provider
	}
	return "openrouter"
}

// Status returns the model status.
func (c *OpenRouterClient) Status() *ModelStatus {
	return &ModelStatus{
		Name:      c.Name(),
		Available: c.IsAvailable(),
		Local:     false,
	}
}

type openAIStreamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}
