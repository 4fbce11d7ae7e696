// Package llm queries an OpenAI-compatible chat-completion endpoint. The
// default target is a local Ollama server; any compatible endpoint works.
package llm

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// SystemPrompt instructs the model to treat every capture as an independent
// problem; the conversation context is rebuilt from scratch on each call so
// answers never leak between captures.
const SystemPrompt = "IGNORE any previous conversation context. Treat this input as a NEW, " +
	"independent problem — do not use prior messages or history in your reasoning. " +
	"You are an expert software engineer helper. You will be given text extracted " +
	"from a screen, which is likely a coding challenge, an interview question, or a " +
	"technical error. Provide a concise, clear, and correct solution or suggestion. " +
	"If code is required, provide it. Do not be chatty."

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

// Client is a thin wrapper around the chat-completions API.
type Client struct {
	api   openai.Client
	model string
}

// New builds a client for the configured endpoint. APIKey may be empty for
// local servers that do not authenticate.
func New(cfg Config) (*Client, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	opts := []option.RequestOption{}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	return &Client{
		api:   openai.NewClient(opts...),
		model: cfg.Model,
	}, nil
}

// Query sends a fresh two-message conversation (system + user) and returns
// the model's textual completion.
func (c *Client) Query(ctx context.Context, system, user string) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %v", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in API response")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	log.Printf("LLM response: %d chars from model %s", len(content), c.model)
	return content, nil
}
