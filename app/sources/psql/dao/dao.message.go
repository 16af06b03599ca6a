package dao

import (
	"context"
	"time"

	"github.com/SuperiorKe/sms-africas-talking/app/sources/psql/models"

	"gorm.io/gorm"
)

type MessageDAO struct {
	DB *gorm.DB
}

func NewMessageDAO(db *gorm.DB) *MessageDAO {
	return &MessageDAO{DB: db}
}

// SaveMessage appends one immutable message row. userID is nil for
// anonymous web-chat turns.
func (dao *MessageDAO) SaveMessage(ctx context.Context, userID *uint, senderType, text, linkID, status string) (*models.Message, error) {
	msg := models.Message{
		UserID:     userID,
		SenderType: senderType,
		Text:       text,
		Timestamp:  time.Now().UTC(),
		Status:     status,
		LinkID:     linkID,
	}
	if err := dao.DB.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// RecentByUser returns the last limit messages for a user, oldest first.
// Ties on timestamp fall back to insertion order.
func (dao *MessageDAO) RecentByUser(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	var msgs []models.Message
	err := dao.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").Order("id DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	reverse(msgs)
	return msgs, nil
}

// RecentByLinkID returns the last limit messages carrying a link id,
// oldest first. Web-chat turns are scoped per session this way, so
// unrelated sessions never share history.
func (dao *MessageDAO) RecentByLinkID(ctx context.Context, linkID string, limit int) ([]models.Message, error) {
	var msgs []models.Message
	err := dao.DB.WithContext(ctx).
		Where("link_id = ?", linkID).
		Order("timestamp DESC").Order("id DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	reverse(msgs)
	return msgs, nil
}

// UpdateStatus transitions the delivery status of a message. The body
// itself stays immutable.
func (dao *MessageDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	return dao.DB.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (dao *MessageDAO) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := dao.DB.WithContext(ctx).
		Model(&models.Message{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, err
}

func reverse(msgs []models.Message) {
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
}
