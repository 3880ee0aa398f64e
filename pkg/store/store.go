package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"minichat/models"
)

// ErrNotFound is returned when a chat or message does not exist.
var ErrNotFound = errors.New("record not found")

// Store wraps all chat and message persistence behind one GORM handle.
// Every method is a single database call; the multi-step workflows in the
// service layer run as separate calls with no cross-call transaction.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateChat(ctx context.Context, chat *models.Chat) error {
	if chat.ID == "" {
		chat.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(chat).Error
}

func (s *Store) FindChatByID(ctx context.Context, id string) (*models.Chat, error) {
	var chat models.Chat
	err := s.db.WithContext(ctx).First(&chat, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (s *Store) SaveChat(ctx context.Context, chat *models.Chat) error {
	return s.db.WithContext(ctx).Save(chat).Error
}

func (s *Store) ListChats(ctx context.Context, limit int) ([]models.Chat, error) {
	var chats []models.Chat
	err := s.db.WithContext(ctx).
		Order("updated_at DESC").
		Limit(limit).
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}

// DeleteChatWithMessages removes a chat and all its messages as one logical
// unit. This is the only transactional operation in the store.
func (s *Store) DeleteChatWithMessages(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Chat{}, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Message{}, "chat_id = ?", id).Error
	})
}

func (s *Store) CountChats(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Chat{}).Count(&n).Error
	return n, err
}

func (s *Store) CreateMessage(ctx context.Context, msg *models.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(msg).Error
}

func (s *Store) SaveMessage(ctx context.Context, msg *models.Message) error {
	return s.db.WithContext(ctx).Save(msg).Error
}

func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.Message{}, "id = ?", id).Error
}

// ListMessages returns all messages of a chat in conversation order.
func (s *Store) ListMessages(ctx context.Context, chatID string) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// LastMessages returns up to n most recent messages of a chat, newest first.
func (s *Store) LastMessages(ctx context.Context, chatID string, n int) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at DESC").
		Limit(n).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// FindUserMessage looks up a user-authored message by id within a chat.
func (s *Store) FindUserMessage(ctx context.Context, chatID, messageID string) (*models.Message, error) {
	var msg models.Message
	err := s.db.WithContext(ctx).
		Where("id = ? AND chat_id = ? AND role = ?", messageID, chatID, models.RoleUser).
		First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// FirstAssistantAfter returns the earliest assistant message created
// strictly after the given time, i.e. the reply that followed a user turn.
func (s *Store) FirstAssistantAfter(ctx context.Context, chatID string, after time.Time) (*models.Message, error) {
	var msg models.Message
	err := s.db.WithContext(ctx).
		Where("chat_id = ? AND role = ? AND created_at > ?", chatID, models.RoleAssistant, after).
		Order("created_at ASC").
		First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *Store) CountMessages(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Message{}).Count(&n).Error
	return n, err
}
