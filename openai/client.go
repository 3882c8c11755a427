package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"studymate-backend/config"
	"studymate-backend/logger"
)

var ErrEmptyReply = errors.New("model returned no choices")

type Client struct {
	api   *openai.Client
	model string
	log   *logger.Logger
}

func NewClient(cfg config.OpenAI, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); base != "" {
		oc.BaseURL = base
	}
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	model := cfg.Model
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &Client{
		api:   openai.NewClientWithConfig(oc),
		model: model,
		log:   log.With("component", "openai"),
	}
}

// Complete sends one system and one user message and returns the first choice's text.
// sessionID is forwarded as the request's user field so calls can be traced per generation.
func (c *Client) Complete(ctx context.Context, sessionID, system, user string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		User:  sessionID,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}
	c.log.Debug("chat completion done",
		"session_id", sessionID,
		"model", resp.Model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) Model() string { return c.model }
