package services

import (
	"context"
	"errors"
	"log"

	openai "github.com/sashabaranov/go-openai"

	"minichat/models"
)

const (
	systemPrompt  = "You are a helpful assistant. Keep responses concise and friendly."
	contextWindow = 10
)

// HistoryStore is the slice of the persistence layer the live provider
// needs to rebuild the conversation context.
type HistoryStore interface {
	LastMessages(ctx context.Context, chatID string, n int) ([]models.Message, error)
}

type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
}

// OpenAIProvider calls the chat completions API with a bounded context
// window: the most recent prior messages of the chat, oldest first, behind
// a fixed system instruction.
type OpenAIProvider struct {
	client  *openai.Client
	cfg     OpenAIConfig
	history HistoryStore
}

func NewOpenAIProvider(cfg OpenAIConfig, history HistoryStore) *OpenAIProvider {
	return &OpenAIProvider{
		client:  openai.NewClient(cfg.APIKey),
		cfg:     cfg,
		history: history,
	}
}

func (p *OpenAIProvider) GenerateReply(ctx context.Context, chatID, latestUserContent string) (Reply, error) {
	prior, err := p.history.LastMessages(ctx, chatID, contextWindow)
	if err != nil {
		return Reply{}, err
	}

	msgs := make([]openai.ChatCompletionMessage, 0, len(prior)+2)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	// LastMessages returns newest first; replay in conversation order.
	for i := len(prior) - 1; i >= 0; i-- {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    prior[i].Role,
			Content: prior[i].Content,
		})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: latestUserContent,
	})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.cfg.Model,
		Messages:    msgs,
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
	})
	if err != nil {
		log.Printf("[openai] completion failed: %v", err)
		return Reply{}, err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Reply{}, errors.New("empty completion response")
	}
	return Reply{
		Content: resp.Choices[0].Message.Content,
		Tokens:  resp.Usage.TotalTokens,
	}, nil
}
