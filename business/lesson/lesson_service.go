package lesson

import (
	"context"
	"fmt"

	"gorm.io/datatypes"

	"agrilink/domain"
	"agrilink/internal/repository/postgres"
	"agrilink/pkg/logger"
)

// LessonRepository contract interface
type LessonRepository interface {
	Create(ctx context.Context, lesson *domain.Lesson) error
	FindByID(ctx context.Context, id uint) (domain.Lesson, error)
	FindAll(ctx context.Context, filter postgres.LessonFilter) ([]domain.Lesson, error)
	Update(ctx context.Context, lesson *domain.Lesson) error
	Delete(ctx context.Context, id uint) error
}

// Broadcaster contract interface
type Broadcaster interface {
	Broadcast(notifType string, data map[string]any)
}

type lessonService struct {
	lessonRepo  LessonRepository
	broadcaster Broadcaster
}

func NewLessonService(lessonRepo LessonRepository, broadcaster Broadcaster) *lessonService {
	return &lessonService{
		lessonRepo:  lessonRepo,
		broadcaster: broadcaster,
	}
}

type LessonInput struct {
	Title       map[string]any
	Description map[string]any
	Content     map[string]any
	Category    string
	Duration    int
	Difficulty  string
	IsPublished bool
}

func (s *lessonService) CreateLesson(ctx context.Context, identity domain.Identity, input LessonInput) (domain.Lesson, error) {
	if !domain.ValidLessonCategory(input.Category) {
		return domain.Lesson{}, fmt.Errorf("%w: invalid category %q", domain.ErrInvalidArgument, input.Category)
	}
	if !domain.ValidDifficulty(input.Difficulty) {
		return domain.Lesson{}, fmt.Errorf("%w: invalid difficulty %q", domain.ErrInvalidArgument, input.Difficulty)
	}

	newLesson := domain.Lesson{
		Title:       datatypes.JSONMap(input.Title),
		Description: datatypes.JSONMap(input.Description),
		Content:     datatypes.JSONMap(input.Content),
		Category:    input.Category,
		Duration:    input.Duration,
		Difficulty:  input.Difficulty,
		CreatedByID: identity.UserID,
		IsPublished: input.IsPublished,
	}

	if err := s.lessonRepo.Create(ctx, &newLesson); err != nil {
		logger.Error("Failed to create lesson", err)
		return domain.Lesson{}, err
	}

	if newLesson.IsPublished {
		s.announce(newLesson)
	}

	return newLesson, nil
}

// GetLessonByID hides drafts from everyone but admins.
func (s *lessonService) GetLessonByID(ctx context.Context, identity domain.Identity, id uint) (domain.Lesson, error) {
	lesson, err := s.lessonRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Lesson{}, err
	}

	if !lesson.IsPublished && !identity.IsAdmin() {
		return domain.Lesson{}, fmt.Errorf("lesson %d: %w", id, domain.ErrNotFound)
	}

	return lesson, nil
}

type ListFilter struct {
	Category   string
	Difficulty string
}

func (s *lessonService) GetAllLessons(ctx context.Context, identity domain.Identity, filter ListFilter) ([]domain.Lesson, error) {
	if filter.Category != "" && !domain.ValidLessonCategory(filter.Category) {
		return nil, fmt.Errorf("%w: invalid category %q", domain.ErrInvalidArgument, filter.Category)
	}
	if filter.Difficulty != "" && !domain.ValidDifficulty(filter.Difficulty) {
		return nil, fmt.Errorf("%w: invalid difficulty %q", domain.ErrInvalidArgument, filter.Difficulty)
	}

	return s.lessonRepo.FindAll(ctx, postgres.LessonFilter{
		Category:      filter.Category,
		Difficulty:    filter.Difficulty,
		PublishedOnly: !identity.IsAdmin(),
	})
}

type UpdateLessonInput struct {
	Title       map[string]any
	Description map[string]any
	Content     map[string]any
	Category    string
	Duration    *int
	Difficulty  string
	IsPublished *bool
}

func (s *lessonService) UpdateLesson(ctx context.Context, id uint, input UpdateLessonInput) (domain.Lesson, error) {
	existing, err := s.lessonRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Lesson{}, err
	}

	if input.Title != nil {
		existing.Title = datatypes.JSONMap(input.Title)
	}
	if input.Description != nil {
		existing.Description = datatypes.JSONMap(input.Description)
	}
	if input.Content != nil {
		existing.Content = datatypes.JSONMap(input.Content)
	}
	if input.Category != "" {
		if !domain.ValidLessonCategory(input.Category) {
			return domain.Lesson{}, fmt.Errorf("%w: invalid category %q", domain.ErrInvalidArgument, input.Category)
		}
		existing.Category = input.Category
	}
	if input.Duration != nil {
		existing.Duration = *input.Duration
	}
	if input.Difficulty != "" {
		if !domain.ValidDifficulty(input.Difficulty) {
			return domain.Lesson{}, fmt.Errorf("%w: invalid difficulty %q", domain.ErrInvalidArgument, input.Difficulty)
		}
		existing.Difficulty = input.Difficulty
	}

	justPublished := false
	if input.IsPublished != nil {
		justPublished = *input.IsPublished && !existing.IsPublished
		existing.IsPublished = *input.IsPublished
	}

	if err := s.lessonRepo.Update(ctx, &existing); err != nil {
		logger.Error("Failed to update lesson", err)
		return domain.Lesson{}, err
	}

	if justPublished {
		s.announce(existing)
	}

	return existing, nil
}

func (s *lessonService) DeleteLesson(ctx context.Context, id uint) error {
	if _, err := s.lessonRepo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.lessonRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete lesson", err)
		return err
	}

	return nil
}

func (s *lessonService) announce(lesson domain.Lesson) {
	s.broadcaster.Broadcast(domain.NotificationLessonPublished, map[string]any{
		"lesson_id": lesson.ID,
		"title":     lesson.Title,
		"category":  lesson.Category,
	})
}
