package models

import "time"

// User is created lazily on the first inbound SMS from a phone number
// and is never deleted.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	PhoneNumber string    `json:"phone_number" gorm:"type:varchar(20);uniqueIndex;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null"`
	LastActive  time.Time `json:"last_active" gorm:"not null"`
	Messages    []Message `json:"-" gorm:"foreignKey:UserID"`
}
