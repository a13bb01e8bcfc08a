package admin

import (
	"context"
	"fmt"

	"agrilink/domain"
	"agrilink/pkg/logger"
)

// Moderation actions accepted by ResolveReport.
const (
	ActionDismiss = "dismiss"
	ActionDelete  = "delete"
)

// ForumRepository contract interface
type ForumRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Forum, error)
	FindReported(ctx context.Context) ([]domain.Forum, error)
	Update(ctx context.Context, forum *domain.Forum) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountReported(ctx context.Context) (int64, error)
}

// UserRepository contract interface
type UserRepository interface {
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context) (map[string]int64, error)
}

// ProductRepository contract interface
type ProductRepository interface {
	Count(ctx context.Context) (int64, error)
}

// LessonRepository contract interface
type LessonRepository interface {
	Count(ctx context.Context) (int64, error)
}

type adminService struct {
	forumRepo   ForumRepository
	userRepo    UserRepository
	productRepo ProductRepository
	lessonRepo  LessonRepository
}

func NewAdminService(
	forumRepo ForumRepository,
	userRepo UserRepository,
	productRepo ProductRepository,
	lessonRepo LessonRepository,
) *adminService {
	return &adminService{
		forumRepo:   forumRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		lessonRepo:  lessonRepo,
	}
}

type DashboardOverview struct {
	TotalUsers     int64            `json:"total_users"`
	TotalProducts  int64            `json:"total_products"`
	TotalForums    int64            `json:"total_forums"`
	TotalLessons   int64            `json:"total_lessons"`
	ReportedForums int64            `json:"reported_forums"`
	UsersByRole    map[string]int64 `json:"users_by_role"`
}

func (s *adminService) GetDashboardOverview(ctx context.Context) (DashboardOverview, error) {
	var overview DashboardOverview
	var err error

	if overview.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		logger.Error("Failed to count users", err)
		return DashboardOverview{}, err
	}
	if overview.TotalProducts, err = s.productRepo.Count(ctx); err != nil {
		logger.Error("Failed to count products", err)
		return DashboardOverview{}, err
	}
	if overview.TotalForums, err = s.forumRepo.Count(ctx); err != nil {
		logger.Error("Failed to count forum posts", err)
		return DashboardOverview{}, err
	}
	if overview.TotalLessons, err = s.lessonRepo.Count(ctx); err != nil {
		logger.Error("Failed to count lessons", err)
		return DashboardOverview{}, err
	}
	if overview.ReportedForums, err = s.forumRepo.CountReported(ctx); err != nil {
		logger.Error("Failed to count reported posts", err)
		return DashboardOverview{}, err
	}
	if overview.UsersByRole, err = s.userRepo.CountByRole(ctx); err != nil {
		logger.Error("Failed to count users by role", err)
		return DashboardOverview{}, err
	}

	return overview, nil
}

func (s *adminService) GetReportedContent(ctx context.Context) ([]domain.Forum, error) {
	return s.forumRepo.FindReported(ctx)
}

// ResolveReport settles a flagged post: dismiss clears the flag, delete
// removes the post outright. A post that is absent or not flagged reports
// not found.
func (s *adminService) ResolveReport(ctx context.Context, id uint, action string) error {
	if action != ActionDismiss && action != ActionDelete {
		return fmt.Errorf("%w: unknown action %q", domain.ErrInvalidArgument, action)
	}

	post, err := s.forumRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !post.IsReported {
		return fmt.Errorf("forum post %d is not reported: %w", id, domain.ErrNotFound)
	}

	switch action {
	case ActionDismiss:
		post.IsReported = false
		post.ReportReason = ""
		if err := s.forumRepo.Update(ctx, &post); err != nil {
			logger.Error("Failed to dismiss report", err)
			return err
		}
	case ActionDelete:
		if err := s.forumRepo.Delete(ctx, id); err != nil {
			logger.Error("Failed to delete reported post", err)
			return err
		}
	}

	return nil
}
