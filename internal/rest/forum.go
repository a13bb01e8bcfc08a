package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"agrilink/business/forum"
	"agrilink/domain"
	"agrilink/internal/middleware"
	jsonres "agrilink/pkg/response"
)

type ForumService interface {
	CreatePost(ctx context.Context, identity domain.Identity, input forum.PostInput) (domain.Forum, error)
	GetPostByID(ctx context.Context, id uint) (domain.Forum, error)
	GetAllPosts(ctx context.Context) ([]domain.Forum, error)
	GetPostsByCategory(ctx context.Context, category string) ([]domain.Forum, error)
	UpdatePost(ctx context.Context, identity domain.Identity, id uint, input forum.UpdatePostInput) (domain.Forum, error)
	DeletePost(ctx context.Context, identity domain.Identity, id uint) error
	ToggleLike(ctx context.Context, identity domain.Identity, id uint) (bool, int64, error)
	ReportPost(ctx context.Context, identity domain.Identity, id uint, reason string) error
}

type ForumHandler struct {
	forumService ForumService
	validator    *validator.Validate
	timeout      time.Duration
}

func NewForumHandler(forumService ForumService) *ForumHandler {
	return &ForumHandler{
		forumService: forumService,
		validator:    validator.New(),
		timeout:      10 * time.Second,
	}
}

type CreatePostRequest struct {
	Title    string   `json:"title" validate:"required,min=3,max=200"`
	Content  string   `json:"content" validate:"required,min=3"`
	Category string   `json:"category" validate:"required"`
	Tags     []string `json:"tags" validate:"max=10,dive,max=50"`
}

type UpdatePostRequest struct {
	Title    string   `json:"title" validate:"omitempty,min=3,max=200"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags" validate:"max=10,dive,max=50"`
	IsClosed *bool    `json:"is_closed"`
}

type ReportRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

type likePayload struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

func (h *ForumHandler) CreatePost(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return writeError(c, domain.ErrUnauthenticated)
	}

	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return writeBindError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return writeValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.forumService.CreatePost(ctx, identity, forum.PostInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, jsonres.Success("post created", created))
}

func (h *ForumHandler) GetAllPosts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	posts, err := h.forumService.GetAllPosts(ctx)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("posts retrieved", posts))
}

func (h *ForumHandler) GetPostByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	post, err := h.forumService.GetPostByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("post retrieved", post))
}

func (h *ForumHandler) GetPostsByCategory(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	posts, err := h.forumService.GetPostsByCategory(ctx, c.Param("category"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("posts retrieved", posts))
}

func (h *ForumHandler) UpdatePost(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return writeError(c, domain.ErrUnauthenticated)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return writeBindError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return writeValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.forumService.UpdatePost(ctx, identity, id, forum.UpdatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
		IsClosed: req.IsClosed,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("post updated", updated))
}

func (h *ForumHandler) DeletePost(c echo.Context) error {
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

	if err := h.forumService.DeletePost(ctx, identity, id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("post deleted", nil))
}

func (h *ForumHandler) ToggleLike(c echo.Context) error {
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

	liked, count, err := h.forumService.ToggleLike(ctx, identity, id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("like toggled", likePayload{Liked: liked, LikeCount: count}))
}

func (h *ForumHandler) ReportPost(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return writeError(c, domain.ErrUnauthenticated)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var req ReportRequest
	if err := c.Bind(&req); err != nil {
		return writeBindError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return writeValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.forumService.ReportPost(ctx, identity, id, req.Reason); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("post reported", nil))
}
