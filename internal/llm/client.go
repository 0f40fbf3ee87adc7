package llm

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/sashabaranov/go-openai"

	"latexref/internal/contextutil"
)

// ErrNoChoices is returned when the service answers without any completion.
var ErrNoChoices = errors.New("no choices returned")

// Client is a client for OpenAI-compatible chat completion APIs.
type Client struct {
	BaseURL string
	Model   string
	client  *openai.Client
}

// NewClient creates a new LLM client. baseURL includes the API version path,
// e.g. https://api.openai.com/v1.
func NewClient(baseURL, apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &Client{
		BaseURL: cfg.BaseURL,
		Model:   model,
		client:  openai.NewClientWithConfig(cfg),
	}
}

// ChatWithMessages sends a conversation to the chat completions API and returns the first reply.
func (c *Client) ChatWithMessages(ctx context.Context, messages []Message, params ChatParams) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	model := params.Model
	if model == "" {
		model = c.Model
	}

	// Temperature is omitempty on the wire, a zero would fall back to the service default.
	temperature := params.Temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
		Temperature: temperature,
	}
	if params.MaxTokens > 0 {
		req.MaxTokens = params.MaxTokens
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	logger.DebugContext(ctx, "sending chat completion", "model", model, "messages", len(messages))

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	logger.DebugContext(ctx, "received chat completion",
		"finish_reason", resp.Choices[0].FinishReason,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)

	return resp.Choices[0].Message.Content, nil
}

// Chat sends a single user message and returns the reply.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	return c.ChatWithMessages(ctx, []Message{{Role: RoleUser, Content: message}}, ChatParams{})
}
