package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultChatAPIURL is the base URL of the OpenAI API. Any OpenAI-compatible
// server can be used by pointing CHAT_API_URL at its /v1 root.
const DefaultChatAPIURL = "https://api.openai.com/v1"

const chatCompletionsPath = "/chat/completions"

// UpstreamStatusError is a non-2xx, non-429 answer from the provider.
type UpstreamStatusError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// OpenAICompleter talks to an OpenAI-compatible chat completions endpoint.
type OpenAICompleter struct {
	client *openai.Client
	model  string
}

// NewOpenAICompleter builds a completer for apiURL. A full
// ".../chat/completions" URL is accepted and trimmed to its base. A nil
// httpClient uses the library default.
func NewOpenAICompleter(apiKey, apiURL, model string, httpClient *http.Client) *OpenAICompleter {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = chatBaseURL(apiURL)
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &OpenAICompleter{client: openai.NewClientWithConfig(cfg), model: model}
}

func chatBaseURL(apiURL string) string {
	apiURL = strings.TrimRight(strings.TrimSpace(apiURL), "/")
	if apiURL == "" {
		return DefaultChatAPIURL
	}
	return strings.TrimSuffix(apiURL, chatCompletionsPath)
}

func (c *OpenAICompleter) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		MaxTokens: chatMaxTokens,
	})
	if err != nil {
		return "", mapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat response has no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// mapOpenAIError turns HTTP-level failures into ErrUpstreamRateLimited or an
// UpstreamStatusError. Transport and decode errors are wrapped as-is.
func mapOpenAIError(err error) error {
	status, body := 0, ""

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status, body = apiErr.HTTPStatusCode, apiErr.Message
	case errors.As(err, &reqErr):
		status, body = reqErr.HTTPStatusCode, string(reqErr.Body)
	default:
		return fmt.Errorf("chat request failed: %w", err)
	}

	if status == http.StatusTooManyRequests {
		return ErrUpstreamRateLimited
	}
	if len(body) > 512 {
		body = body[:512]
	}
	return &UpstreamStatusError{StatusCode: status, Body: body}
}
