package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"minichat/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Chat{}, &models.Message{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(db)
}

func seedMessage(t *testing.T, s *Store, chatID, role, content string, at time.Time) *models.Message {
	t.Helper()
	msg := &models.Message{ChatID: chatID, Role: role, Content: content, CreatedAt: at}
	if err := s.CreateMessage(context.Background(), msg); err != nil {
		t.Fatalf("create message: %v", err)
	}
	return msg
}

func TestChatCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	chat := &models.Chat{Title: "New Chat"}
	if err := s.CreateChat(ctx, chat); err != nil {
		t.Fatalf("CreateChat: %v", err)
	}
	if chat.ID == "" {
		t.Fatalf("expected generated id")
	}

	found, err := s.FindChatByID(ctx, chat.ID)
	if err != nil {
		t.Fatalf("FindChatByID: %v", err)
	}
	if found.Title != "New Chat" {
		t.Fatalf("unexpected title %q", found.Title)
	}

	found.Title = "Renamed"
	found.MessagesCount = 3
	if err := s.SaveChat(ctx, found); err != nil {
		t.Fatalf("SaveChat: %v", err)
	}
	again, _ := s.FindChatByID(ctx, chat.ID)
	if again.Title != "Renamed" || again.MessagesCount != 3 {
		t.Fatalf("save not persisted: %+v", again)
	}

	if _, err := s.FindChatByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListChatsOrderAndLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		chat := &models.Chat{
			Title:     "chat",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.CreateChat(ctx, chat); err != nil {
			t.Fatalf("CreateChat: %v", err)
		}
	}

	chats, err := s.ListChats(ctx, 2)
	if err != nil {
		t.Fatalf("ListChats: %v", err)
	}
	if len(chats) != 2 {
		t.Fatalf("expected 2 chats, got %d", len(chats))
	}
	if chats[0].UpdatedAt.Before(chats[1].UpdatedAt) {
		t.Fatalf("expected newest-updated first")
	}
}

func TestDeleteChatWithMessages(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	chat := &models.Chat{Title: "doomed"}
	s.CreateChat(ctx, chat)
	other := &models.Chat{Title: "survivor"}
	s.CreateChat(ctx, other)

	seedMessage(t, s, chat.ID, models.RoleUser, "hi", base)
	seedMessage(t, s, chat.ID, models.RoleAssistant, "hello", base.Add(time.Second))
	kept := seedMessage(t, s, other.ID, models.RoleUser, "still here", base)

	if err := s.DeleteChatWithMessages(ctx, chat.ID); err != nil {
		t.Fatalf("DeleteChatWithMessages: %v", err)
	}
	if _, err := s.FindChatByID(ctx, chat.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected chat gone, got %v", err)
	}
	msgs, _ := s.ListMessages(ctx, chat.ID)
	if len(msgs) != 0 {
		t.Fatalf("expected cascade delete, got %d messages", len(msgs))
	}
	remaining, _ := s.ListMessages(ctx, other.ID)
	if len(remaining) != 1 || remaining[0].ID != kept.ID {
		t.Fatalf("unrelated chat lost its messages: %+v", remaining)
	}
}

func TestMessageOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	chat := &models.Chat{Title: "t"}
	s.CreateChat(ctx, chat)
	for i := 0; i < 4; i++ {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAssistant
		}
		seedMessage(t, s, chat.ID, role, "m", base.Add(time.Duration(i)*time.Second))
	}

	asc, err := s.ListMessages(ctx, chat.ID)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(asc) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(asc))
	}
	for i := 1; i < len(asc); i++ {
		if asc[i].CreatedAt.Before(asc[i-1].CreatedAt) {
			t.Fatalf("messages not ascending at %d", i)
		}
	}

	last, err := s.LastMessages(ctx, chat.ID, 2)
	if err != nil {
		t.Fatalf("LastMessages: %v", err)
	}
	if len(last) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(last))
	}
	if !last[0].CreatedAt.After(last[1].CreatedAt) {
		t.Fatalf("expected newest first")
	}
	if last[0].Role != models.RoleAssistant {
		t.Fatalf("expected the newest message to be the assistant turn")
	}
}

func TestFindUserMessage(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	chat := &models.Chat{Title: "t"}
	s.CreateChat(ctx, chat)
	user := seedMessage(t, s, chat.ID, models.RoleUser, "q", base)
	bot := seedMessage(t, s, chat.ID, models.RoleAssistant, "a", base.Add(time.Second))

	found, err := s.FindUserMessage(ctx, chat.ID, user.ID)
	if err != nil {
		t.Fatalf("FindUserMessage: %v", err)
	}
	if found.ID != user.ID {
		t.Fatalf("wrong message %+v", found)
	}
	// assistant messages are not editable
	if _, err := s.FindUserMessage(ctx, chat.ID, bot.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for assistant message, got %v", err)
	}
	if _, err := s.FindUserMessage(ctx, "other-chat", user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for wrong chat, got %v", err)
	}
}

func TestFirstAssistantAfter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	chat := &models.Chat{Title: "t"}
	s.CreateChat(ctx, chat)
	u1 := seedMessage(t, s, chat.ID, models.RoleUser, "q1", base)
	a1 := seedMessage(t, s, chat.ID, models.RoleAssistant, "a1", base.Add(time.Second))
	seedMessage(t, s, chat.ID, models.RoleUser, "q2", base.Add(2*time.Second))
	a2 := seedMessage(t, s, chat.ID, models.RoleAssistant, "a2", base.Add(3*time.Second))

	next, err := s.FirstAssistantAfter(ctx, chat.ID, u1.CreatedAt)
	if err != nil {
		t.Fatalf("FirstAssistantAfter: %v", err)
	}
	if next.ID != a1.ID {
		t.Fatalf("expected the earliest following reply, got %+v", next)
	}

	next, err = s.FirstAssistantAfter(ctx, chat.ID, a1.CreatedAt)
	if err != nil {
		t.Fatalf("FirstAssistantAfter: %v", err)
	}
	if next.ID != a2.ID {
		t.Fatalf("expected the later reply, got %+v", next)
	}

	if _, err := s.FirstAssistantAfter(ctx, chat.ID, a2.CreatedAt); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound past the last reply, got %v", err)
	}
}

func TestCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	c1 := &models.Chat{Title: "a"}
	s.CreateChat(ctx, c1)
	c2 := &models.Chat{Title: "b"}
	s.CreateChat(ctx, c2)
	seedMessage(t, s, c1.ID, models.RoleUser, "m", base)
	seedMessage(t, s, c1.ID, models.RoleAssistant, "m", base.Add(time.Second))
	seedMessage(t, s, c2.ID, models.RoleUser, "m", base)

	chats, err := s.CountChats(ctx)
	if err != nil {
		t.Fatalf("CountChats: %v", err)
	}
	msgs, err := s.CountMessages(ctx)
	if err != nil {
		t.Fatalf("CountMessages: %v", err)
	}
	if chats != 2 || msgs != 3 {
		t.Fatalf("unexpected counts chats=%d msgs=%d", chats, msgs)
	}
}
