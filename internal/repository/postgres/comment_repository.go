package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"agrilink/domain"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{
		DB: db,
	}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id uint) (domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Comment{}, fmt.Errorf("context error: %w", err)
	}

	var comment domain.Comment

	err := r.DB.WithContext(ctx).Preload("Author").First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Comment{}, fmt.Errorf("comment %d: %w", id, domain.ErrNotFound)
		}
		return domain.Comment{}, fmt.Errorf("failed to find comment: %w", err)
	}

	return comment, nil
}

func (r *CommentRepository) FindByForum(ctx context.Context, forumID uint) ([]domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var comments []domain.Comment
	err := r.DB.WithContext(ctx).Preload("Author").
		Where("forum_id = ?", forumID).
		Order("created_at desc").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}

	return comments, nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"content":       comment.Content,
		"is_reported":   comment.IsReported,
		"report_reason": comment.ReportReason,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Comment{}).Where("id = ?", comment.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("comment %d: %w", comment.ID, domain.ErrNotFound)
	}

	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&domain.CommentLike{}).Error; err != nil {
			return fmt.Errorf("failed to delete comment likes: %w", err)
		}

		result := tx.Delete(&domain.Comment{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete comment: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("comment %d: %w", id, domain.ErrNotFound)
		}

		return nil
	})
}

func (r *CommentRepository) ToggleLike(ctx context.Context, commentID, userID uint) (bool, int64, error) {
	if err := ctx.Err(); err != nil {
		return false, 0, fmt.Errorf("context error: %w", err)
	}

	var liked bool
	var count int64

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.CommentLike
		err := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&existing).Error

		switch {
		case err == nil:
			if err := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).
				Delete(&domain.CommentLike{}).Error; err != nil {
				return fmt.Errorf("failed to remove like: %w", err)
			}
			liked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&domain.CommentLike{CommentID: commentID, UserID: userID}).Error; err != nil {
				return fmt.Errorf("failed to add like: %w", err)
			}
			liked = true
		default:
			return fmt.Errorf("failed to check like: %w", err)
		}

		if err := tx.Model(&domain.CommentLike{}).Where("comment_id = ?", commentID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count likes: %w", err)
		}

		return nil
	})
	if err != nil {
		return false, 0, err
	}

	return liked, count, nil
}
