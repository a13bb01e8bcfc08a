package comment

import (
	"context"
	"fmt"

	"agrilink/domain"
	"agrilink/pkg/logger"
)

// CommentRepository contract interface
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id uint) (domain.Comment, error)
	FindByForum(ctx context.Context, forumID uint) ([]domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, commentID, userID uint) (bool, int64, error)
}

// ForumRepository contract interface
type ForumRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Forum, error)
}

// Notifier contract interface
type Notifier interface {
	NotifyUser(ctx context.Context, userID uint, notifType string, data map[string]any) error
	NotifyAdmins(ctx context.Context, notifType string, data map[string]any) error
}

type commentService struct {
	commentRepo CommentRepository
	forumRepo   ForumRepository
	notifier    Notifier
}

func NewCommentService(commentRepo CommentRepository, forumRepo ForumRepository, notifier Notifier) *commentService {
	return &commentService{
		commentRepo: commentRepo,
		forumRepo:   forumRepo,
		notifier:    notifier,
	}
}

type CommentInput struct {
	Content         string
	ForumID         uint
	ParentCommentID *uint
}

// CreateComment posts under an open discussion and alerts the post author
// when someone else comments.
func (s *commentService) CreateComment(ctx context.Context, identity domain.Identity, input CommentInput) (domain.Comment, error) {
	post, err := s.forumRepo.FindByID(ctx, input.ForumID)
	if err != nil {
		return domain.Comment{}, err
	}

	if post.IsClosed {
		return domain.Comment{}, fmt.Errorf("%w: discussion is closed", domain.ErrInvalidArgument)
	}

	if input.ParentCommentID != nil {
		parent, err := s.commentRepo.FindByID(ctx, *input.ParentCommentID)
		if err != nil {
			return domain.Comment{}, err
		}
		if parent.ForumID != input.ForumID {
			return domain.Comment{}, fmt.Errorf("%w: parent comment belongs to another discussion", domain.ErrInvalidArgument)
		}
	}

	newComment := domain.Comment{
		Content:         input.Content,
		AuthorID:        identity.UserID,
		ForumID:         input.ForumID,
		ParentCommentID: input.ParentCommentID,
	}

	if err := s.commentRepo.Create(ctx, &newComment); err != nil {
		logger.Error("Failed to create comment", err)
		return domain.Comment{}, err
	}

	if post.AuthorID != identity.UserID {
		if err := s.notifier.NotifyUser(ctx, post.AuthorID, domain.NotificationNewComment, map[string]any{
			"forum_id":   post.ID,
			"comment_id": newComment.ID,
			"author_id":  identity.UserID,
		}); err != nil {
			logger.Warn("Failed to notify post author", "forum_id", post.ID, "error", err)
		}
	}

	return newComment, nil
}

func (s *commentService) GetCommentsByForum(ctx context.Context, forumID uint) ([]domain.Comment, error) {
	if _, err := s.forumRepo.FindByID(ctx, forumID); err != nil {
		return nil, err
	}
	return s.commentRepo.FindByForum(ctx, forumID)
}

func (s *commentService) UpdateComment(ctx context.Context, identity domain.Identity, id uint, content string) (domain.Comment, error) {
	existing, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Comment{}, err
	}

	if !identity.OwnerOrAdmin(existing.AuthorID) {
		return domain.Comment{}, fmt.Errorf("comment %d: %w", id, domain.ErrForbidden)
	}

	existing.Content = content
	if err := s.commentRepo.Update(ctx, &existing); err != nil {
		logger.Error("Failed to update comment", err)
		return domain.Comment{}, err
	}

	return existing, nil
}

func (s *commentService) DeleteComment(ctx context.Context, identity domain.Identity, id uint) error {
	existing, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !identity.OwnerOrAdmin(existing.AuthorID) {
		return fmt.Errorf("comment %d: %w", id, domain.ErrForbidden)
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete comment", err)
		return err
	}

	return nil
}

func (s *commentService) ToggleLike(ctx context.Context, identity domain.Identity, id uint) (bool, int64, error) {
	if _, err := s.commentRepo.FindByID(ctx, id); err != nil {
		return false, 0, err
	}
	return s.commentRepo.ToggleLike(ctx, id, identity.UserID)
}

// ReportComment flags a comment for moderation and alerts the admin stream.
func (s *commentService) ReportComment(ctx context.Context, identity domain.Identity, id uint, reason string) error {
	existing, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	existing.IsReported = true
	existing.ReportReason = reason

	if err := s.commentRepo.Update(ctx, &existing); err != nil {
		logger.Error("Failed to flag comment", err)
		return err
	}

	if err := s.notifier.NotifyAdmins(ctx, domain.NotificationNewReport, map[string]any{
		"comment_id":  existing.ID,
		"forum_id":    existing.ForumID,
		"reason":      reason,
		"reported_by": identity.UserID,
	}); err != nil {
		logger.Warn("Failed to notify admins about report", "comment_id", existing.ID, "error", err)
	}

	return nil
}
