package notification

import (
	"context"
	"fmt"

	"gorm.io/datatypes"

	"agrilink/domain"
	"agrilink/pkg/logger"
	"agrilink/pkg/metrics"
)

// NotificationRepository contract interface
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	FindByID(ctx context.Context, id uint) (domain.Notification, error)
	FindForUser(ctx context.Context, userID uint, includeAdmin bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id uint) error
	MarkAllRead(ctx context.Context, userID uint, includeAdmin bool) error
	Delete(ctx context.Context, id uint) error
}

// Pusher delivers an already persisted notification to connected clients.
type Pusher interface {
	PushToUser(userID uint, eventType string, data any)
	PushToAdmins(eventType string, data any)
	Broadcast(eventType string, data any)
}

type notificationService struct {
	notifRepo NotificationRepository
	pusher    Pusher
}

func NewNotificationService(notifRepo NotificationRepository, pusher Pusher) *notificationService {
	return &notificationService{
		notifRepo: notifRepo,
		pusher:    pusher,
	}
}

// NotifyUser persists a notification for one user, then pushes it. A push
// failure never loses the record; the client catches up on next list.
func (s *notificationService) NotifyUser(ctx context.Context, userID uint, notifType string, data map[string]any) error {
	notification := domain.Notification{
		Audience: domain.AudienceUser,
		UserID:   &userID,
		Type:     notifType,
		Data:     datatypes.JSONMap(data),
	}

	if err := s.notifRepo.Create(ctx, &notification); err != nil {
		logger.Error("Failed to persist user notification", err)
		return err
	}

	s.pusher.PushToUser(userID, notifType, notification)
	metrics.NotificationsPushedTotal.Inc()
	return nil
}

// NotifyAdmins persists a notification on the admin stream, then pushes it
// to every connected admin.
func (s *notificationService) NotifyAdmins(ctx context.Context, notifType string, data map[string]any) error {
	notification := domain.Notification{
		Audience: domain.AudienceAdmin,
		Type:     notifType,
		Data:     datatypes.JSONMap(data),
	}

	if err := s.notifRepo.Create(ctx, &notification); err != nil {
		logger.Error("Failed to persist admin notification", err)
		return err
	}

	s.pusher.PushToAdmins(notifType, notification)
	metrics.NotificationsPushedTotal.Inc()
	return nil
}

// Broadcast pushes an event to every connected client without a per-user
// record. Used for platform-wide announcements such as published lessons.
func (s *notificationService) Broadcast(notifType string, data map[string]any) {
	s.pusher.Broadcast(notifType, data)
	metrics.NotificationsPushedTotal.Inc()
}

// List returns the caller's notifications; admins also see the shared
// admin stream.
func (s *notificationService) List(ctx context.Context, identity domain.Identity) ([]domain.Notification, error) {
	notifications, err := s.notifRepo.FindForUser(ctx, identity.UserID, identity.IsAdmin())
	if err != nil {
		logger.Error("Failed to list notifications", err)
		return nil, err
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, identity domain.Identity, id uint) error {
	notification, err := s.notifRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !s.canAccess(identity, notification) {
		return fmt.Errorf("notification %d: %w", id, domain.ErrForbidden)
	}

	return s.notifRepo.MarkRead(ctx, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context, identity domain.Identity) error {
	return s.notifRepo.MarkAllRead(ctx, identity.UserID, identity.IsAdmin())
}

func (s *notificationService) Delete(ctx context.Context, identity domain.Identity, id uint) error {
	notification, err := s.notifRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !s.canAccess(identity, notification) {
		return fmt.Errorf("notification %d: %w", id, domain.ErrForbidden)
	}

	return s.notifRepo.Delete(ctx, id)
}

func (s *notificationService) canAccess(identity domain.Identity, notification domain.Notification) bool {
	if notification.Audience == domain.AudienceAdmin {
		return identity.IsAdmin()
	}
	return notification.UserID != nil && *notification.UserID == identity.UserID
}
