// Package model provides the local inference client: any OpenAI-compatible
// server (llama.cpp's server, Ollama's /v1 surface, vLLM, LM Studio, ...)
// reachable on the local machine or LAN, with no required credential.
package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/flynn-ai/hybridrouter/internal/errors"
)

// LocalConfig configures a local OpenAI-compatible inference client.
type LocalConfig struct {
	Provider   string // e.g. "ollama", "llamacpp"
	BaseURL    string // e.g. http://localhost:11434/v1
	Model      string // e.g. "functiongemma", "qwen-2.5-7b"
	APIKey     string // usually empty; some gateways front the local server
	Tools      bool   // whether this deployment accepts tool schemas
	Timeout    time.Duration
	MaxRetries int
}

// DefaultLocalConfig returns default configuration for an Ollama-style
// local server.
func DefaultLocalConfig(baseURL, modelID string) *LocalConfig {
	if baseURL == "" {
		baseURL = "http://localhost:11434/v1"
	}
	return &LocalConfig{
		Provider:   "ollama",
		BaseURL:    baseURL,
		Model:      modelID,
		Tools:      true,
		Timeout:    60 * time.Second,
		MaxRetries: 2,
	}
}

// LocalClient implements Model against a local OpenAI-compatible server.
type LocalClient struct {
	cfg            *LocalConfig
	client         *http.Client
	circuitBreaker *errors.CircuitBreaker
	retryPolicy    *errors.Policy
}

// NewLocalClient creates a new local inference client.
func NewLocalClient(cfg *LocalConfig) *LocalClient {
	if cfg == nil {
		return nil
	}

	retryPolicy := &errors.Policy{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
		RetryIf: func(err error) bool {
			category := errors.GetCategory(err)
			return category == errors.CategoryTemporary || category == errors.CategoryRateLimit
		},
	}

	cbConfig := &errors.CircuitBreakerConfig{
		MaxFailures:      5,
		ResetTimeout:     30 * time.Second,
		HalfOpenAttempts: 2,
	}

	return &LocalClient{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		circuitBreaker: errors.NewCircuitBreaker("local:"+cfg.Provider, cbConfig),
		retryPolicy:    retryPolicy,
	}
}

// Generate sends a prompt to the local server and returns the response.
func (c *LocalClient) Generate(ctx context.Context, req *Request) (*Response, error) {
	if c == nil {
		return nil, errors.New(errors.CodeModelUnavailable, "local client not initialized", errors.CategorySystem)
	}

	if !c.IsAvailable() {
		return nil, errors.NewBuilder(errors.CodeModelUnavailable, "local model not configured").
			System().
			WithSuggestion("Set models.local.primary_model and ensure the local server is running").
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

func (c *LocalClient) generateWithRetry(ctx context.Context, req *Request) (*Response, error) {
	body := map[string]any{
		"model":    c.cfg.Model,
		"messages": []map[string]string{},
	}
	messages := []map[string]string{}
	if req.System != "" {
		messages = append(messages, map[string]string{"role": "system", "content": req.System})
	}
	messages = append(messages, map[string]string{"role": "user", "content": req.Prompt})
	body["messages"] = messages

	if req.MaxTokens > 0 {
		body["max_tokens"] = req.MaxTokens
	} else {
		body["max_tokens"] = 2048
	}

	if c.cfg.Tools && len(req.Tools) > 0 {
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
	}

	if req.JSON {
		body["response_format"] = map[string]string{"type": "json_object"}
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeModelInvalidResponse, "failed to marshal request", errors.CategoryPermanent)
	}

	type apiResult struct {
		respBody []byte
	}

	apiRes, retryErr := errors.DoWithResult(ctx, c.retryPolicy, func() (apiResult, error) {
		httpReq, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+"/chat/completions", bytes.NewReader(jsonBody))
		if err != nil {
			return apiResult{}, errors.Wrap(err, errors.CodeNetworkUnavailable, "failed to create HTTP request", errors.CategoryTemporary)
		}

		httpReq.Header.Set("Content-Type", "application/json")
		if c.cfg.APIKey != "" {
			httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		}

		r, err := c.client.Do(httpReq)
		if err != nil {
			return apiResult{}, errors.Wrap(err, errors.CodeNetworkUnavailable, "local server unreachable", errors.CategoryTemporary)
		}
		defer r.Body.Close()

		b, readErr := io.ReadAll(r.Body)
		if readErr != nil {
			return apiResult{}, errors.Wrap(readErr, errors.CodeNetworkUnavailable, "failed to read response body", errors.CategoryTemporary)
		}

		switch r.StatusCode {
		case http.StatusOK:
			return apiResult{respBody: b}, nil
		case http.StatusTooManyRequests:
			return apiResult{}, handleRateLimitError(r, b)
		case http.StatusBadRequest:
			return apiResult{}, errors.NewBuilder(errors.CodeModelInvalidResponse, "bad request - check model name and parameters").
				User().
				WithContext("response", string(b)).
				Build()
		case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
			return apiResult{}, errors.Temporary(errors.CodeModelUnavailable, fmt.Sprintf("local server unavailable: %s", r.Status))
		default:
			return apiResult{}, errors.Temporary(errors.CodeModelUnavailable, fmt.Sprintf("local server error (status %d): %s", r.StatusCode, string(b)))
		}
	})

	if retryErr != nil {
		return nil, retryErr
	}

	var resp openAIChatResponse
	if err := json.Unmarshal(apiRes.respBody, &resp); err != nil {
		return nil, errors.NewBuilder(errors.CodeModelParseError, "failed to parse local server response").
			Permanent().
			Wrap(err).
			WithContext("response_body", string(apiRes.respBody)).
			Build()
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New(errors.CodeModelInvalidResponse, "local server response contained no choices", errors.CategoryPermanent)
	}

	modelResp := &Response{
		Text:       resp.Choices[0].Message.Content,
		TokensUsed: resp.Usage.TotalTokens,
		Model:      c.cfg.Model,
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

// IsAvailable checks if the local server is configured.
func (c *LocalClient) IsAvailable() bool {
	return c != nil && c.cfg != nil && c.cfg.BaseURL != "" && c.cfg.Model != ""
}

// Name returns the model identifier.
func (c *LocalClient) Name() string {
	if c.cfg != nil {
		return c.cfg.Model
	}
	return "local"
}

// IsLocal always returns true.
func (c *LocalClient) IsLocal() bool {
	return true
}

// Provider returns the configured local provider name.
func (c *LocalClient) Provider() string {
	if c.cfg != nil && c.cfg.Provider != "" {
		return c.cfg.Provider
	}
	return "ollama"
}

// Status returns the model status.
func (c *LocalClient) Status() *ModelStatus {
	return &ModelStatus{
		Name:      c.Name(),
		Available: c.IsAvailable(),
		Local:     true,
	}
}

// ============================================================
// OpenAI-compatible wire types shared with the cloud client
// ============================================================

type openAIChatResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role      string           `json:"role"`
			Content   string           `json:"content"`
			ToolCalls []openAIToolCall `json:"tool_calls,omitempty"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type openAIToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}
