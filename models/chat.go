package models

import "time"

// Chat is one conversation thread. MessagesCount mirrors the number of
// persisted messages and is maintained incrementally by the service layer,
// not recomputed from the messages table.
type Chat struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Title         string    `gorm:"size:200;not null" json:"title"`
	CreatedAt     time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"index" json:"updatedAt"`
	MessagesCount int       `gorm:"not null;default:0" json:"messagesCount"`
}
