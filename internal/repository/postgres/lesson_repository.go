package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"agrilink/domain"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{
		DB: db,
	}
}

func (r *LessonRepository) Create(ctx context.Context, lesson *domain.Lesson) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(lesson).Error; err != nil {
		return fmt.Errorf("failed to create lesson: %w", err)
	}

	return nil
}

func (r *LessonRepository) FindByID(ctx context.Context, id uint) (domain.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return domain.Lesson{}, fmt.Errorf("context error: %w", err)
	}

	var lesson domain.Lesson

	err := r.DB.WithContext(ctx).Preload("CreatedBy").First(&lesson, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Lesson{}, fmt.Errorf("lesson %d: %w", id, domain.ErrNotFound)
		}
		return domain.Lesson{}, fmt.Errorf("failed to find lesson: %w", err)
	}

	return lesson, nil
}

type LessonFilter struct {
	Category      string
	Difficulty    string
	PublishedOnly bool
}

func (r *LessonRepository) FindAll(ctx context.Context, filter LessonFilter) ([]domain.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).Preload("CreatedBy")
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var lessons []domain.Lesson
	if err := query.Order("created_at desc").Find(&lessons).Error; err != nil {
		return nil, fmt.Errorf("failed to find lessons: %w", err)
	}

	return lessons, nil
}

func (r *LessonRepository) Update(ctx context.Context, lesson *domain.Lesson) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"title":        lesson.Title,
		"description":  lesson.Description,
		"content":      lesson.Content,
		"category":     lesson.Category,
		"duration":     lesson.Duration,
		"difficulty":   lesson.Difficulty,
		"is_published": lesson.IsPublished,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Lesson{}).Where("id = ?", lesson.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update lesson: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("lesson %d: %w", lesson.ID, domain.ErrNotFound)
	}

	return nil
}

func (r *LessonRepository) Delete(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Lesson{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete lesson: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("lesson %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *LessonRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var count int64
	if err := r.DB.WithContext(ctx).Model(&domain.Lesson{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}

	return count, nil
}
