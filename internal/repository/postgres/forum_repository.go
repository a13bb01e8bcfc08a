package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"agrilink/domain"
)

type ForumRepository struct {
	DB *gorm.DB
}

func NewForumRepository(db *gorm.DB) *ForumRepository {
	return &ForumRepository{
		DB: db,
	}
}

func (r *ForumRepository) Create(ctx context.Context, forum *domain.Forum) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(forum).Error; err != nil {
		return fmt.Errorf("failed to create forum post: %w", err)
	}

	return nil
}

func (r *ForumRepository) FindByID(ctx context.Context, id uint) (domain.Forum, error) {
	if err := ctx.Err(); err != nil {
		return domain.Forum{}, fmt.Errorf("context error: %w", err)
	}

	var forum domain.Forum

	err := r.DB.WithContext(ctx).Preload("Author").First(&forum, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Forum{}, fmt.Errorf("forum post %d: %w", id, domain.ErrNotFound)
		}
		return domain.Forum{}, fmt.Errorf("failed to find forum post: %w", err)
	}

	forum.LikeCount, err = r.LikeCount(ctx, id)
	if err != nil {
		return domain.Forum{}, err
	}

	return forum, nil
}

// FindAll returns posts newest first, optionally filtered by category.
func (r *ForumRepository) FindAll(ctx context.Context, category string) ([]domain.Forum, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).Preload("Author")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var forums []domain.Forum
	if err := query.Order("created_at desc").Find(&forums).Error; err != nil {
		return nil, fmt.Errorf("failed to find forum posts: %w", err)
	}

	return forums, nil
}

func (r *ForumRepository) FindReported(ctx context.Context) ([]domain.Forum, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var forums []domain.Forum
	err := r.DB.WithContext(ctx).Preload("Author").
		Where("is_reported = ?", true).
		Order("created_at desc").
		Find(&forums).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find reported posts: %w", err)
	}

	return forums, nil
}

func (r *ForumRepository) Update(ctx context.Context, forum *domain.Forum) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"title":         forum.Title,
		"content":       forum.Content,
		"category":      forum.Category,
		"tags":          forum.Tags,
		"is_reported":   forum.IsReported,
		"report_reason": forum.ReportReason,
		"is_closed":     forum.IsClosed,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Forum{}).Where("id = ?", forum.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update forum post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("forum post %d: %w", forum.ID, domain.ErrNotFound)
	}

	return nil
}

func (r *ForumRepository) Delete(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("forum_id = ?", id).Delete(&domain.ForumLike{}).Error; err != nil {
			return fmt.Errorf("failed to delete forum likes: %w", err)
		}
		if err := tx.Where("forum_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete forum comments: %w", err)
		}

		result := tx.Delete(&domain.Forum{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete forum post: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("forum post %d: %w", id, domain.ErrNotFound)
		}

		return nil
	})
}

// ToggleLike flips the caller's membership in the like set and returns the
// new state plus count. Runs in a transaction so two toggles cannot insert
// a duplicate pair.
func (r *ForumRepository) ToggleLike(ctx context.Context, forumID, userID uint) (bool, int64, error) {
	if err := ctx.Err(); err != nil {
		return false, 0, fmt.Errorf("context error: %w", err)
	}

	var liked bool
	var count int64

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.ForumLike
		err := tx.Where("forum_id = ? AND user_id = ?", forumID, userID).First(&existing).Error

		switch {
		case err == nil:
			if err := tx.Where("forum_id = ? AND user_id = ?", forumID, userID).
				Delete(&domain.ForumLike{}).Error; err != nil {
				return fmt.Errorf("failed to remove like: %w", err)
			}
			liked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&domain.ForumLike{ForumID: forumID, UserID: userID}).Error; err != nil {
				return fmt.Errorf("failed to add like: %w", err)
			}
			liked = true
		default:
			return fmt.Errorf("failed to check like: %w", err)
		}

		if err := tx.Model(&domain.ForumLike{}).Where("forum_id = ?", forumID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count likes: %w", err)
		}

		return nil
	})
	if err != nil {
		return false, 0, err
	}

	return liked, count, nil
}

func (r *ForumRepository) LikeCount(ctx context.Context, forumID uint) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).Model(&domain.ForumLike{}).Where("forum_id = ?", forumID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}

	return count, nil
}

func (r *ForumRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var count int64
	if err := r.DB.WithContext(ctx).Model(&domain.Forum{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count forum posts: %w", err)
	}

	return count, nil
}

func (r *ForumRepository) CountReported(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).Model(&domain.Forum{}).Where("is_reported = ?", true).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count reported posts: %w", err)
	}

	return count, nil
}
