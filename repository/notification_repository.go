package repository

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/my-lord1/food-delivery-backend/entity"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(n *entity.Notification) error {
	return errors.Wrap(r.DB.Create(n).Error, "create notification")
}

func (r *NotificationRepository) ByID(id uint) (*entity.Notification, error) {
	var n entity.Notification
	if err := r.DB.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) ListForUser(userID uint, unreadOnly bool, page, limit int) ([]entity.Notification, int64, error) {
	q := r.DB.Model(&entity.Notification{}).Where("recipient_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []entity.Notification
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&items).Error
	return items, total, err
}

func (r *NotificationRepository) UnreadCount(userID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}

func (r *NotificationRepository) MarkRead(n *entity.Notification) error {
	now := time.Now()
	n.IsRead = true
	n.ReadAt = &now
	return r.DB.Save(n).Error
}

func (r *NotificationRepository) MarkAllRead(userID uint) error {
	return r.DB.Model(&entity.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{"is_read": true, "read_at": time.Now()}).Error
}

func (r *NotificationRepository) Delete(n *entity.Notification) error {
	return r.DB.Delete(n).Error
}

func (r *NotificationRepository) DeleteAllForUser(userID uint) error {
	return r.DB.Where("recipient_id = ?", userID).Delete(&entity.Notification{}).Error
}
