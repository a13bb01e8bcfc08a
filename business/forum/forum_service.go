package forum

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"agrilink/domain"
	"agrilink/pkg/logger"
)

// ForumRepository contract interface
type ForumRepository interface {
	Create(ctx context.Context, forum *domain.Forum) error
	FindByID(ctx context.Context, id uint) (domain.Forum, error)
	FindAll(ctx context.Context, category string) ([]domain.Forum, error)
	Update(ctx context.Context, forum *domain.Forum) error
	Delete(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, forumID, userID uint) (bool, int64, error)
}

// Notifier contract interface
type Notifier interface {
	NotifyAdmins(ctx context.Context, notifType string, data map[string]any) error
}

type forumService struct {
	forumRepo ForumRepository
	notifier  Notifier
}

func NewForumService(forumRepo ForumRepository, notifier Notifier) *forumService {
	return &forumService{
		forumRepo: forumRepo,
		notifier:  notifier,
	}
}

type PostInput struct {
	Title    string
	Content  string
	Category string
	Tags     []string
}

func (s *forumService) CreatePost(ctx context.Context, identity domain.Identity, input PostInput) (domain.Forum, error) {
	if !domain.ValidForumCategory(input.Category) {
		return domain.Forum{}, fmt.Errorf("%w: invalid category %q", domain.ErrInvalidArgument, input.Category)
	}

	newPost := domain.Forum{
		Title:    input.Title,
		Content:  input.Content,
		AuthorID: identity.UserID,
		Category: input.Category,
		Tags:     pq.StringArray(input.Tags),
	}

	if err := s.forumRepo.Create(ctx, &newPost); err != nil {
		logger.Error("Failed to create forum post", err)
		return domain.Forum{}, err
	}

	return newPost, nil
}

func (s *forumService) GetPostByID(ctx context.Context, id uint) (domain.Forum, error) {
	return s.forumRepo.FindByID(ctx, id)
}

func (s *forumService) GetAllPosts(ctx context.Context) ([]domain.Forum, error) {
	return s.forumRepo.FindAll(ctx, "")
}

func (s *forumService) GetPostsByCategory(ctx context.Context, category string) ([]domain.Forum, error) {
	if !domain.ValidForumCategory(category) {
		return nil, fmt.Errorf("%w: invalid category %q", domain.ErrInvalidArgument, category)
	}
	return s.forumRepo.FindAll(ctx, category)
}

type UpdatePostInput struct {
	Title    string
	Content  string
	Category string
	Tags     []string
	IsClosed *bool
}

func (s *forumService) UpdatePost(ctx context.Context, identity domain.Identity, id uint, input UpdatePostInput) (domain.Forum, error) {
	existing, err := s.forumRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Forum{}, err
	}

	if !identity.OwnerOrAdmin(existing.AuthorID) {
		return domain.Forum{}, fmt.Errorf("forum post %d: %w", id, domain.ErrForbidden)
	}

	if input.Title != "" {
		existing.Title = input.Title
	}
	if input.Content != "" {
		existing.Content = input.Content
	}
	if input.Category != "" {
		if !domain.ValidForumCategory(input.Category) {
			return domain.Forum{}, fmt.Errorf("%w: invalid category %q", domain.ErrInvalidArgument, input.Category)
		}
		existing.Category = input.Category
	}
	if input.Tags != nil {
		existing.Tags = pq.StringArray(input.Tags)
	}
	if input.IsClosed != nil {
		// only an admin may close or reopen a discussion
		if !identity.IsAdmin() {
			return domain.Forum{}, fmt.Errorf("close post: %w", domain.ErrForbidden)
		}
		existing.IsClosed = *input.IsClosed
	}

	if err := s.forumRepo.Update(ctx, &existing); err != nil {
		logger.Error("Failed to update forum post", err)
		return domain.Forum{}, err
	}

	return existing, nil
}

func (s *forumService) DeletePost(ctx context.Context, identity domain.Identity, id uint) error {
	existing, err := s.forumRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !identity.OwnerOrAdmin(existing.AuthorID) {
		return fmt.Errorf("forum post %d: %w", id, domain.ErrForbidden)
	}

	if err := s.forumRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete forum post", err)
		return err
	}

	return nil
}

// ToggleLike flips the caller's like and reports the new state.
func (s *forumService) ToggleLike(ctx context.Context, identity domain.Identity, id uint) (bool, int64, error) {
	if _, err := s.forumRepo.FindByID(ctx, id); err != nil {
		return false, 0, err
	}
	return s.forumRepo.ToggleLike(ctx, id, identity.UserID)
}

// ReportPost flags a post for moderation and alerts the admin stream.
func (s *forumService) ReportPost(ctx context.Context, identity domain.Identity, id uint, reason string) error {
	existing, err := s.forumRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	existing.IsReported = true
	existing.ReportReason = reason

	if err := s.forumRepo.Update(ctx, &existing); err != nil {
		logger.Error("Failed to flag forum post", err)
		return err
	}

	if err := s.notifier.NotifyAdmins(ctx, domain.NotificationNewReport, map[string]any{
		"forum_id":    existing.ID,
		"title":       existing.Title,
		"reason":      reason,
		"reported_by": identity.UserID,
	}); err != nil {
		logger.Warn("Failed to notify admins about report", "forum_id", existing.ID, "error", err)
	}

	return nil
}
