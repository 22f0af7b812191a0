// Package completion is the remote-inference boundary: a thin
// passthrough to an LLM for code completion. It is the only cancellable
// operation in the app; cancellation resolves to "no result", not an
// error.
package completion

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/julianstephens/tend/internal/config"
	"github.com/julianstephens/tend/internal/logger"
	"github.com/julianstephens/tend/internal/validation"
)

type Request struct {
	Code           string  `json:"code"`
	Language       string  `json:"language"`
	CursorPosition int     `json:"cursor_position,omitempty"`
	Model          string  `json:"model,omitempty"`
	Temperature    float64 `json:"temperature,omitempty"`
	MaxTokens      int     `json:"max_tokens,omitempty"`
}

type TokenUsage struct {
	Prompt     int `json:"prompt"`
	Completion int `json:"completion"`
}

type Response struct {
	Completion string      `json:"completion"`
	Model      string      `json:"model"`
	DurationMS int64       `json:"duration_ms"`
	Tokens     *TokenUsage `json:"tokens,omitempty"`
}

type Client struct {
	api     *api.Client
	model   string
	timeout time.Duration
}

func NewClient(cfg config.OllamaConfig) (*Client, error) {
	base, err := url.Parse(cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host: %w", err)
	}

	return &Client{
		api:     api.NewClient(base, http.DefaultClient),
		model:   cfg.Model,
		timeout: time.Duration(cfg.Timeout) * time.Second,
	}, nil
}

// Complete requests a completion for the code in req. A cancelled
// context returns (nil, nil): the caller aborted and there is nothing to
// report. Transport failures come back as errors for the caller to
// surface.
func (c *Client) Complete(ctx context.Context, req Request) (*Response, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, validation.Errorf("code", "must not be empty")
	}

	language := req.Language
	if language == "" {
		language = "javascript"
	}
	model := req.Model
	if model == "" {
		model = c.model
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = 0.2
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 500
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stream := false
	genReq := &api.GenerateRequest{
		Model:  model,
		Prompt: buildPrompt(code, language, req.CursorPosition),
		Stream: &stream,
		Options: map[string]any{
			"temperature": temperature,
			"num_predict": maxTokens,
		},
	}

	start := time.Now()
	var out api.GenerateResponse
	err := c.api.Generate(ctx, genReq, func(resp api.GenerateResponse) error {
		out = resp
		return nil
	})
	if err != nil {
		if ctx.Err() == context.Canceled {
			logger.Debug("completion request cancelled")
			return nil, nil
		}
		return nil, fmt.Errorf("completion request failed: %w", err)
	}

	return &Response{
		Completion: out.Response,
		Model:      model,
		DurationMS: time.Since(start).Milliseconds(),
		Tokens: &TokenUsage{
			Prompt:     out.PromptEvalCount,
			Completion: out.EvalCount,
		},
	}, nil
}

func buildPrompt(code, language string, cursor int) string {
	var b strings.Builder
	b.WriteString("Complete the following ")
	b.WriteString(language)
	b.WriteString(" code. Reply with only the code that should come next, no explanations.\n\n")
	if cursor > 0 && cursor < len(code) {
		b.WriteString(code[:cursor])
		b.WriteString("<CURSOR>")
		b.WriteString(code[cursor:])
	} else {
		b.WriteString(code)
	}
	return b.String()
}
