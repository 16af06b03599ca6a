package dao

import (
	"context"
	"errors"
	"time"

	"github.com/SuperiorKe/sms-africas-talking/app/sources/psql/models"

	"gorm.io/gorm"
)

type UserDAO struct {
	DB *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{DB: db}
}

// FindOrCreateByPhone returns the user owning the phone number, creating
// the row on first contact.
func (dao *UserDAO) FindOrCreateByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	err := dao.DB.WithContext(ctx).Where("phone_number = ?", phone).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	user = models.User{
		PhoneNumber: phone,
		CreatedAt:   now,
		LastActive:  now,
	}
	if err := dao.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (dao *UserDAO) TouchLastActive(ctx context.Context, userID uint) error {
	return dao.DB.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_active", time.Now().UTC()).Error
}

func (dao *UserDAO) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := dao.DB.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
