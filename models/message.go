package models

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn in a chat. CreatedAt is the ordering key within a
// chat. Error marks a placeholder stored when the completion provider
// failed to produce a real reply.
type Message struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ChatID    string    `gorm:"size:36;index;not null" json:"chatId"`
	Role      string    `gorm:"size:20;not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Tokens    int       `gorm:"not null;default:0" json:"tokens"`
	Error     bool      `gorm:"not null;default:false" json:"error"`
}
