package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"agrilink/business/lesson"
	"agrilink/domain"
	"agrilink/internal/middleware"
	jsonres "agrilink/pkg/response"
)

type LessonService interface {
	CreateLesson(ctx context.Context, identity domain.Identity, input lesson.LessonInput) (domain.Lesson, error)
	GetLessonByID(ctx context.Context, identity domain.Identity, id uint) (domain.Lesson, error)
	GetAllLessons(ctx context.Context, identity domain.Identity, filter lesson.ListFilter) ([]domain.Lesson, error)
	UpdateLesson(ctx context.Context, id uint, input lesson.UpdateLessonInput) (domain.Lesson, error)
	DeleteLesson(ctx context.Context, id uint) error
}

type LessonHandler struct {
	lessonService LessonService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewLessonHandler(lessonService LessonService) *LessonHandler {
	return &LessonHandler{
		lessonService: lessonService,
		validator:     validator.New(),
		timeout:       10 * time.Second,
	}
}

type CreateLessonRequest struct {
	Title       map[string]any `json:"title" validate:"required"`
	Description map[string]any `json:"description"`
	Content     map[string]any `json:"content" validate:"required"`
	Category    string         `json:"category" validate:"required"`
	Duration    int            `json:"duration" validate:"gte=0"`
	Difficulty  string         `json:"difficulty" validate:"required"`
	IsPublished bool           `json:"is_published"`
}

type UpdateLessonRequest struct {
	Title       map[string]any `json:"title"`
	Description map[string]any `json:"description"`
	Content     map[string]any `json:"content"`
	Category    string         `json:"category"`
	Duration    *int           `json:"duration" validate:"omitempty,gte=0"`
	Difficulty  string         `json:"difficulty"`
	IsPublished *bool          `json:"is_published"`
}

func (h *LessonHandler) CreateLesson(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return writeError(c, domain.ErrUnauthenticated)
	}

	var req CreateLessonRequest
	if err := c.Bind(&req); err != nil {
		return writeBindError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return writeValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.lessonService.CreateLesson(ctx, identity, lesson.LessonInput{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Category:    req.Category,
		Duration:    req.Duration,
		Difficulty:  req.Difficulty,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, jsonres.Success("lesson created", created))
}

func (h *LessonHandler) GetAllLessons(c echo.Context) error {
	identity, _ := middleware.IdentityFromContext(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	lessons, err := h.lessonService.GetAllLessons(ctx, identity, lesson.ListFilter{
		Category:   c.QueryParam("category"),
		Difficulty: c.QueryParam("difficulty"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("lessons retrieved", lessons))
}

func (h *LessonHandler) GetLessonByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	identity, _ := middleware.IdentityFromContext(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	found, err := h.lessonService.GetLessonByID(ctx, identity, id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("lesson retrieved", found))
}

func (h *LessonHandler) UpdateLesson(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var req UpdateLessonRequest
	if err := c.Bind(&req); err != nil {
		return writeBindError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return writeValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.lessonService.UpdateLesson(ctx, id, lesson.UpdateLessonInput{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Category:    req.Category,
		Duration:    req.Duration,
		Difficulty:  req.Difficulty,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("lesson updated", updated))
}

func (h *LessonHandler) DeleteLesson(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.lessonService.DeleteLesson(ctx, id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("lesson deleted", nil))
}
