package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"agrilink/business/comment"
	"agrilink/domain"
	"agrilink/internal/middleware"
	jsonres "agrilink/pkg/response"
)

type CommentService interface {
	CreateComment(ctx context.Context, identity domain.Identity, input comment.CommentInput) (domain.Comment, error)
	GetCommentsByForum(ctx context.Context, forumID uint) ([]domain.Comment, error)
	UpdateComment(ctx context.Context, identity domain.Identity, id uint, content string) (domain.Comment, error)
	DeleteComment(ctx context.Context, identity domain.Identity, id uint) error
	ToggleLike(ctx context.Context, identity domain.Identity, id uint) (bool, int64, error)
	ReportComment(ctx context.Context, identity domain.Identity, id uint, reason string) error
}

type CommentHandler struct {
	commentService CommentService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewCommentHandler(commentService CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type CreateCommentRequest struct {
	Content         string `json:"content" validate:"required,min=1,max=2000"`
	ForumID         uint   `json:"forum_id" validate:"required"`
	ParentCommentID *uint  `json:"parent_comment_id"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

func (h *CommentHandler) CreateComment(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return writeError(c, domain.ErrUnauthenticated)
	}

	var req CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return writeBindError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return writeValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.commentService.CreateComment(ctx, identity, comment.CommentInput{
		Content:         req.Content,
		ForumID:         req.ForumID,
		ParentCommentID: req.ParentCommentID,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, jsonres.Success("comment created", created))
}

func (h *CommentHandler) GetCommentsByForum(c echo.Context) error {
	forumID, err := pathID(c, "forumId")
	if err != nil {
		return writeError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	comments, err := h.commentService.GetCommentsByForum(ctx, forumID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("comments retrieved", comments))
}

func (h *CommentHandler) UpdateComment(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return writeError(c, domain.ErrUnauthenticated)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var req UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return writeBindError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return writeValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.commentService.UpdateComment(ctx, identity, id, req.Content)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("comment updated", updated))
}

func (h *CommentHandler) DeleteComment(c echo.Context) error {
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

	if err := h.commentService.DeleteComment(ctx, identity, id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("comment deleted", nil))
}

func (h *CommentHandler) ToggleLike(c echo.Context) error {
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

	liked, count, err := h.commentService.ToggleLike(ctx, identity, id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("like toggled", likePayload{Liked: liked, LikeCount: count}))
}

func (h *CommentHandler) ReportComment(c echo.Context) error {
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

	if err := h.commentService.ReportComment(ctx, identity, id, req.Reason); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("comment reported", nil))
}
