package models

import "time"

const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// Delivery status values. Inbound rows are created as received, AI rows
// as sent; a failed SMS delivery flips the AI row to failed. The body and
// ordering of a message never change after creation.
const (
	StatusReceived = "received"
	StatusSent     = "sent"
	StatusFailed   = "failed"
)

type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     *uint     `json:"user_id" gorm:"index"`
	User       *User     `json:"-" gorm:"foreignKey:UserID;references:ID"`
	SenderType string    `json:"sender_type" gorm:"type:varchar(10);not null"`
	Text       string    `json:"text" gorm:"type:text;not null"`
	Timestamp  time.Time `json:"timestamp" gorm:"index;not null"`
	Status     string    `json:"status" gorm:"type:varchar(10);not null;default:'sent'"`
	// LinkID carries the gateway correlation id for SMS turns and the
	// client session id for anonymous web turns.
	LinkID string `json:"link_id" gorm:"type:varchar(64);index"`
}
