// Package ai provides the remote study-content strategies: an
// OpenAI-compatible chat provider plus summarization and quiz generation
// built on top of it. Every call is a single attempt with a bounded timeout;
// recovery is the caller's job via the deterministic fallbacks in studygen.
package ai

import (
	"context"
	"time"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hrygo/studybuddy/internal/profile"
)

// Config holds the AI provider configuration.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     "https://api.openai.com/v1",
		APIKey:      "",
		Model:       "gpt-4o-mini",
		MaxTokens:   1024,
		Temperature: 0.7,
		Timeout:     30 * time.Second,
	}
}

// NewConfigFromProfile creates provider config from the runtime profile.
func NewConfigFromProfile(p *profile.Profile) *Config {
	cfg := DefaultConfig()
	if p.AIBaseURL != "" {
		cfg.BaseURL = p.AIBaseURL
	}
	cfg.APIKey = p.AIAPIKey
	if p.AIModel != "" {
		cfg.Model = p.AIModel
	}
	if p.AIMaxTokens > 0 {
		cfg.MaxTokens = p.AIMaxTokens
	}
	if p.AITemperature > 0 {
		cfg.Temperature = float32(p.AITemperature)
	}
	if p.AITimeout > 0 {
		cfg.Timeout = p.AITimeout
	}
	return cfg
}

// Message represents a chat message.
type Message struct {
	Role    string // system, user, assistant
	Content string
}

// SystemPrompt creates a system message.
func SystemPrompt(content string) Message {
	return Message{Role: "system", Content: content}
}

// UserMessage creates a user message.
func UserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

// ChatCompleter performs a single synchronous chat completion.
type ChatCompleter interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// Provider is the OpenAI-compatible ChatCompleter implementation.
type Provider struct {
	client *openai.Client
	config *Config
}

// NewProvider creates a new AI provider.
func NewProvider(cfg *Config) (*Provider, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Provider{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}, nil
}

// Chat performs one chat completion with the configured bounded timeout.
// There is no retry: the deterministic local fallback is always available
// and cheaper than a second network round trip.
func (p *Provider) Chat(ctx context.Context, messages []Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	llmMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		llmMessages[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	req := openai.ChatCompletionRequest{
		Model:       p.config.Model,
		Messages:    llmMessages,
		MaxTokens:   p.config.MaxTokens,
		Temperature: p.config.Temperature,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", errors.Wrap(err, "chat completion failed")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty chat response")
	}
	return resp.Choices[0].Message.Content, nil
}
