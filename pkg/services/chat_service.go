package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"minichat/models"
	"minichat/pkg/store"
)

const (
	// MaxContentLength caps message content after trimming.
	MaxContentLength = 4096

	defaultTitle = "New Chat"
	titleLimit   = 50
	listLimit    = 50

	sendFailureReply  = "Sorry, I encountered an error while processing your request. Please try again."
	regenFailureReply = "Sorry, I encountered an error while regenerating the response. Please try again."
	editFailureReply  = "Sorry, I encountered an error while processing your edited message. Please try again."
)

// Store is the persistence contract the orchestrator depends on. The GORM
// implementation lives in pkg/store; tests inject an in-memory fake.
type Store interface {
	CreateChat(ctx context.Context, chat *models.Chat) error
	FindChatByID(ctx context.Context, id string) (*models.Chat, error)
	SaveChat(ctx context.Context, chat *models.Chat) error
	ListChats(ctx context.Context, limit int) ([]models.Chat, error)
	DeleteChatWithMessages(ctx context.Context, id string) error
	CountChats(ctx context.Context) (int64, error)

	CreateMessage(ctx context.Context, msg *models.Message) error
	SaveMessage(ctx context.Context, msg *models.Message) error
	DeleteMessage(ctx context.Context, id string) error
	ListMessages(ctx context.Context, chatID string) ([]models.Message, error)
	LastMessages(ctx context.Context, chatID string, n int) ([]models.Message, error)
	FindUserMessage(ctx context.Context, chatID, messageID string) (*models.Message, error)
	FirstAssistantAfter(ctx context.Context, chatID string, after time.Time) (*models.Message, error)
	CountMessages(ctx context.Context) (int64, error)
}

// ChatService orchestrates the chat/message lifecycle: validation, message
// and counter bookkeeping, and the provider call. Provider failures never
// fail the request; they are downgraded to a stored placeholder message
// with Error=true.
type ChatService struct {
	store    Store
	provider Provider
}

func NewChatService(st Store, provider Provider) *ChatService {
	return &ChatService{store: st, provider: provider}
}

type SendResult struct {
	UserMessage      models.Message `json:"userMessage"`
	AssistantMessage models.Message `json:"assistantMessage"`
	Chat             models.Chat    `json:"chat"`
}

type RegenerateResult struct {
	Success    bool           `json:"success"`
	NewMessage models.Message `json:"newMessage"`
}

type EditResult struct {
	Success          bool            `json:"success"`
	UserMessage      models.Message  `json:"userMessage"`
	AssistantMessage models.Message  `json:"assistantMessage"`
	DeletedAssistant *models.Message `json:"deletedAssistant"`
}

type Stats struct {
	TotalChats    int64 `json:"totalChats"`
	TotalMessages int64 `json:"totalMessages"`
}

func (s *ChatService) CreateChat(ctx context.Context, title string) (*models.Chat, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = defaultTitle
	}
	chat := &models.Chat{Title: title, MessagesCount: 0}
	if err := s.store.CreateChat(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

func (s *ChatService) ListChats(ctx context.Context) ([]models.Chat, error) {
	return s.store.ListChats(ctx, listLimit)
}

func (s *ChatService) GetChat(ctx context.Context, id string) (*models.Chat, []models.Message, error) {
	chat, err := s.findChat(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	msgs, err := s.store.ListMessages(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return chat, msgs, nil
}

// ListMessages reads a chat's messages without checking that the chat
// exists; an unknown chat yields an empty list.
func (s *ChatService) ListMessages(ctx context.Context, chatID string) ([]models.Message, error) {
	return s.store.ListMessages(ctx, chatID)
}

func (s *ChatService) UpdateChatTitle(ctx context.Context, id, title string) (*models.Chat, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	chat, err := s.findChat(ctx, id)
	if err != nil {
		return nil, err
	}
	chat.Title = title
	chat.UpdatedAt = time.Now()
	if err := s.store.SaveChat(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

func (s *ChatService) DeleteChat(ctx context.Context, id string) error {
	if _, err := s.findChat(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteChatWithMessages(ctx, id)
}

// SendMessage persists the user turn, maintains the chat's counter and
// derived title, then asks the provider for a reply.
func (s *ChatService) SendMessage(ctx context.Context, chatID, content string) (*SendResult, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}
	chat, err := s.findChat(ctx, chatID)
	if err != nil {
		return nil, err
	}

	user := &models.Message{ChatID: chat.ID, Role: models.RoleUser, Content: content}
	if err := s.store.CreateMessage(ctx, user); err != nil {
		return nil, err
	}
	chat.MessagesCount++
	chat.UpdatedAt = time.Now()
	if chat.MessagesCount == 1 {
		chat.Title = deriveTitle(content)
	}
	if err := s.store.SaveChat(ctx, chat); err != nil {
		return nil, err
	}

	assistant, _, err := s.completeReply(ctx, chat, content, sendFailureReply)
	if err != nil {
		return nil, err
	}
	return &SendResult{UserMessage: *user, AssistantMessage: *assistant, Chat: *chat}, nil
}

// RegenerateLast discards the most recent assistant reply and produces a
// new one for the same user input. The chat's last two messages must form a
// (user, assistant) pair.
func (s *ChatService) RegenerateLast(ctx context.Context, chatID string) (*RegenerateResult, error) {
	chat, err := s.findChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	last, err := s.store.LastMessages(ctx, chatID, 2)
	if err != nil {
		return nil, err
	}
	if len(last) < 2 {
		return nil, ErrNoPairToRegenerate
	}
	lastAssistant, lastUser := last[0], last[1]
	if lastAssistant.Role != models.RoleAssistant || lastUser.Role != models.RoleUser {
		return nil, ErrInvalidMessagePair
	}

	if err := s.store.DeleteMessage(ctx, lastAssistant.ID); err != nil {
		return nil, err
	}
	if chat.MessagesCount > 0 {
		chat.MessagesCount--
	}
	chat.UpdatedAt = time.Now()
	if err := s.store.SaveChat(ctx, chat); err != nil {
		return nil, err
	}

	msg, ok, err := s.completeReply(ctx, chat, lastUser.Content, regenFailureReply)
	if err != nil {
		return nil, err
	}
	return &RegenerateResult{Success: ok, NewMessage: *msg}, nil
}

// EditAndRegenerate rewrites a past user message in place, discards the
// reply that followed it (when there is one), and generates a new reply for
// the edited content.
func (s *ChatService) EditAndRegenerate(ctx context.Context, chatID, messageID, content string) (*EditResult, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}
	chat, err := s.findChat(ctx, chatID)
	if err != nil {
		return nil, err
	}

	user, err := s.store.FindUserMessage(ctx, chatID, messageID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	user.Content = content
	user.UpdatedAt = time.Now()
	if err := s.store.SaveMessage(ctx, user); err != nil {
		return nil, err
	}

	var deleted *models.Message
	next, err := s.store.FirstAssistantAfter(ctx, chatID, user.CreatedAt)
	if err == nil {
		if err := s.store.DeleteMessage(ctx, next.ID); err != nil {
			return nil, err
		}
		deleted = next
		if chat.MessagesCount > 0 {
			chat.MessagesCount--
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	chat.UpdatedAt = time.Now()
	if err := s.store.SaveChat(ctx, chat); err != nil {
		return nil, err
	}

	msg, ok, err := s.completeReply(ctx, chat, content, editFailureReply)
	if err != nil {
		return nil, err
	}
	return &EditResult{Success: ok, UserMessage: *user, AssistantMessage: *msg, DeletedAssistant: deleted}, nil
}

func (s *ChatService) GetStats(ctx context.Context) (*Stats, error) {
	chats, err := s.store.CountChats(ctx)
	if err != nil {
		return nil, err
	}
	msgs, err := s.store.CountMessages(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{TotalChats: chats, TotalMessages: msgs}, nil
}

// completeReply asks the provider for a reply and persists the result. On
// success the chat counter and timestamp are bumped; on provider failure a
// placeholder with Error=true is stored without touching the counter, and
// the workflow still reports the message back to the caller. Only storage
// errors propagate.
func (s *ChatService) completeReply(ctx context.Context, chat *models.Chat, content, placeholder string) (*models.Message, bool, error) {
	reply, err := s.provider.GenerateReply(ctx, chat.ID, content)
	if err != nil {
		log.Printf("[chat] provider failure for chat %s: %v", chat.ID, err)
		msg := &models.Message{
			ChatID:  chat.ID,
			Role:    models.RoleAssistant,
			Content: placeholder,
			Error:   true,
		}
		if err := s.store.CreateMessage(ctx, msg); err != nil {
			return nil, false, err
		}
		return msg, false, nil
	}

	msg := &models.Message{
		ChatID:  chat.ID,
		Role:    models.RoleAssistant,
		Content: reply.Content,
		Tokens:  reply.Tokens,
	}
	if err := s.store.CreateMessage(ctx, msg); err != nil {
		return nil, false, err
	}
	chat.MessagesCount++
	chat.UpdatedAt = time.Now()
	if err := s.store.SaveChat(ctx, chat); err != nil {
		return nil, false, err
	}
	return msg, true, nil
}

func (s *ChatService) findChat(ctx context.Context, id string) (*models.Chat, error) {
	chat, err := s.store.FindChatByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrChatNotFound
	}
	if err != nil {
		return nil, err
	}
	return chat, nil
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyMessage
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return "", ErrMessageTooLong
	}
	return content, nil
}

// deriveTitle truncates on characters, not bytes, so multi-byte content
// never yields a broken title.
func deriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) > titleLimit {
		return string(runes[:titleLimit]) + "..."
	}
	return content
}
