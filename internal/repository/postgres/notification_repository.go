package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"agrilink/domain"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{
		DB: db,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func (r *NotificationRepository) FindByID(ctx context.Context, id uint) (domain.Notification, error) {
	if err := ctx.Err(); err != nil {
		return domain.Notification{}, fmt.Errorf("context error: %w", err)
	}

	var notification domain.Notification

	err := r.DB.WithContext(ctx).First(&notification, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Notification{}, fmt.Errorf("notification %d: %w", id, domain.ErrNotFound)
		}
		return domain.Notification{}, fmt.Errorf("failed to find notification: %w", err)
	}

	return notification, nil
}

// FindForUser returns the user's notifications newest first; admins also
// see the admin-audience stream.
func (r *NotificationRepository) FindForUser(ctx context.Context, userID uint, includeAdmin bool) ([]domain.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx)
	if includeAdmin {
		query = query.Where("user_id = ? OR audience = ?", userID, domain.AudienceAdmin)
	} else {
		query = query.Where("user_id = ?", userID)
	}

	var notifications []domain.Notification
	if err := query.Order("created_at desc").Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to find notifications: %w", err)
	}

	return notifications, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Notification{}).Where("id = ?", id).Update("read", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("notification %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint, includeAdmin bool) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).Model(&domain.Notification{})
	if includeAdmin {
		query = query.Where("user_id = ? OR audience = ?", userID, domain.AudienceAdmin)
	} else {
		query = query.Where("user_id = ?", userID)
	}

	if err := query.Update("read", true).Error; err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Notification{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete notification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("notification %d: %w", id, domain.ErrNotFound)
	}

	return nil
}
