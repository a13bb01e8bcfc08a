package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"agrilink/domain"
	"agrilink/internal/middleware"
	jsonres "agrilink/pkg/response"
)

type NotificationService interface {
	List(ctx context.Context, identity domain.Identity) ([]domain.Notification, error)
	MarkRead(ctx context.Context, identity domain.Identity, id uint) error
	MarkAllRead(ctx context.Context, identity domain.Identity) error
	Delete(ctx context.Context, identity domain.Identity, id uint) error
}

type NotificationHandler struct {
	notificationService NotificationService
	timeout             time.Duration
}

func NewNotificationHandler(notificationService NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		timeout:             10 * time.Second,
	}
}

func (h *NotificationHandler) List(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return writeError(c, domain.ErrUnauthenticated)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	notifications, err := h.notificationService.List(ctx, identity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("notifications retrieved", notifications))
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return writeError(c, domain.ErrUnauthenticated)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.notificationService.MarkRead(ctx, identity, id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("notification marked read", nil))
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return writeError(c, domain.ErrUnauthenticated)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.notificationService.MarkAllRead(ctx, identity); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("all notifications marked read", nil))
}

func (h *NotificationHandler) Delete(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return writeError(c, domain.ErrUnauthenticated)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.notificationService.Delete(ctx, identity, id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("notification deleted", nil))
}
