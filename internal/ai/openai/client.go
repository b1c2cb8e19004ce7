// Package openai implements the completion boundary for OpenAI-compatible chat completion APIs.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/interview-prep/internal/ai"
	"github.com/spigell/interview-prep/internal/logger"
	"github.com/spigell/interview-prep/internal/utils"
)

const (
	providerName        = "openai"
	defaultBaseURL      = "https://api.openai.com/v1"
	defaultModel        = "gpt-4o-mini"
	defaultTimeout      = 120 * time.Second
	defaultMaxLogLength = 200
	contentType         = "application/json"
)

// Options configures a Client.
type Options struct {
	APIKey       string
	BaseURL      string
	Model        string
	Temperature  float32
	MaxTokens    int
	Timeout      time.Duration
	MaxLogLength int
}

type Client struct {
	apiKey      string
	base        string
	model       string
	temperature float32
	maxTokens   int
	maxLogLen   int
	http        *http.Client
	logger      *zap.Logger
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func NewClient(opts Options, log *zap.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	maxLogLen := opts.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}

	return &Client{
		apiKey:      apiKey,
		base:        base,
		model:       model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		maxLogLen:   maxLogLen,
		http:        &http.Client{Timeout: timeout},
		logger:      logger.WithCommonFields(log, providerName, model),
	}, nil
}

// Complete sends the prompt as a single user message and returns the first choice.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", c.fail("prompt must not be empty", nil)
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", c.fail("marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", c.fail("create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", contentType)

	c.logger.Debug("chat completion request",
		zap.String("url", req.URL.String()),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, c.maxLogLen)),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", c.fail("make request", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", c.fail("read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.fail(fmt.Sprintf("bad status: %s", resp.Status), fmt.Errorf("%s", utils.TruncateForLog(string(data), c.maxLogLen)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", c.fail("decode response", err)
	}

	if parsed.Error != nil {
		return "", c.fail("api error", fmt.Errorf("%s", parsed.Error.Message))
	}

	if len(parsed.Choices) == 0 {
		return "", c.fail("no choices returned", nil)
	}

	output := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if output == "" {
		return "", c.fail("empty completion returned", nil)
	}

	c.logger.Debug("chat completion response",
		zap.String("finish_reason", parsed.Choices[0].FinishReason),
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", utils.TruncateForLog(output, c.maxLogLen)),
	)

	return output, nil
}

func (c *Client) Model() string {
	return c.model
}

func (c *Client) fail(message string, cause error) error {
	return &ai.ServiceError{Provider: providerName, Model: c.model, Message: message, Cause: cause}
}
