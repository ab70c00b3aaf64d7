package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"govtrader/internal/logger"
	"govtrader/internal/pkg/retry"
)

// ChatConfig describes one OpenAI-compatible chat-completions endpoint.
// BaseURL left empty means api.openai.com; the primary reasoning service
// points it at its own gateway.
type ChatConfig struct {
	ID          string
	BaseURL     string
	APIKey      string
	Model       string
	Timeout     time.Duration
	MaxAttempts int
	RetryDelay  time.Duration
}

type ChatProvider struct {
	cfg    ChatConfig
	client *openai.Client
}

var _ ReasoningProvider = (*ChatProvider)(nil)

func NewChatProvider(cfg ChatConfig) *ChatProvider {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	ocfg := openai.DefaultConfig(cfg.APIKey)
	if url := strings.TrimSpace(cfg.BaseURL); url != "" {
		ocfg.BaseURL = strings.TrimSuffix(url, "/")
	}
	return &ChatProvider{cfg: cfg, client: openai.NewClientWithConfig(ocfg)}
}

func (p *ChatProvider) ID() string { return p.cfg.ID }

// Predict asks the service for an opinion, retrying transport and parse
// failures alike on a fixed budget. Garbage output counts against the
// budget the same as a 5xx does.
func (p *ChatProvider) Predict(ctx context.Context, text string) (*Opinion, error) {
	var op *Opinion
	err := retry.Do(ctx, p.cfg.MaxAttempts, p.cfg.RetryDelay, func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()

		logger.LogReasoningRequest(p.cfg.ID, sentimentPrompt, text)
		resp, err := p.client.CreateChatCompletion(attemptCtx, openai.ChatCompletionRequest{
			Model: p.cfg.Model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: sentimentPrompt},
				{Role: openai.ChatMessageRoleUser, Content: text},
			},
		})
		if err != nil {
			logger.Warnf("[reasoning] %s call failed, will retry: %v", p.cfg.ID, err)
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("%s returned no choices", p.cfg.ID)
		}
		raw := resp.Choices[0].Message.Content
		logger.LogReasoningResponse(p.cfg.ID, raw)

		parsed, perr := parseOpinion(raw)
		if perr != nil {
			logger.Warnf("[reasoning] %s reply unparseable, will retry: %v", p.cfg.ID, perr)
			return perr
		}
		op = parsed
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reasoning provider %s: %w", p.cfg.ID, err)
	}
	return op, nil
}
