package lesson

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"agrilink/domain"
	"agrilink/internal/repository/postgres"
)

type fakeLessonRepo struct {
	records map[uint]domain.Lesson
	nextID  uint
}

func newFakeLessonRepo() *fakeLessonRepo {
	return &fakeLessonRepo{records: make(map[uint]domain.Lesson), nextID: 1}
}

func (f *fakeLessonRepo) Create(_ context.Context, l *domain.Lesson) error {
	l.ID = f.nextID
	f.nextID++
	f.records[l.ID] = *l
	return nil
}

func (f *fakeLessonRepo) FindByID(_ context.Context, id uint) (domain.Lesson, error) {
	l, ok := f.records[id]
	if !ok {
		return domain.Lesson{}, fmt.Errorf("lesson %d: %w", id, domain.ErrNotFound)
	}
	return l, nil
}

func (f *fakeLessonRepo) FindAll(_ context.Context, filter postgres.LessonFilter) ([]domain.Lesson, error) {
	var out []domain.Lesson
	for _, l := range f.records {
		if filter.PublishedOnly && !l.IsPublished {
			continue
		}
		if filter.Category != "" && l.Category != filter.Category {
			continue
		}
		if filter.Difficulty != "" && l.Difficulty != filter.Difficulty {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeLessonRepo) Update(_ context.Context, l *domain.Lesson) error {
	if _, ok := f.records[l.ID]; !ok {
		return fmt.Errorf("lesson %d: %w", l.ID, domain.ErrNotFound)
	}
	f.records[l.ID] = *l
	return nil
}

func (f *fakeLessonRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.records[id]; !ok {
		return fmt.Errorf("lesson %d: %w", id, domain.ErrNotFound)
	}
	delete(f.records, id)
	return nil
}

type fakeBroadcaster struct {
	events []string
}

func (f *fakeBroadcaster) Broadcast(notifType string, _ map[string]any) {
	f.events = append(f.events, notifType)
}

var (
	admin  = domain.Identity{UserID: 1, Role: domain.RoleAdmin}
	farmer = domain.Identity{UserID: 2, Role: domain.RoleFarmer}
)

func draftInput() LessonInput {
	return LessonInput{
		Title:      map[string]any{"en": "Composting basics"},
		Category:   domain.LessonCategoryFarming,
		Duration:   15,
		Difficulty: domain.DifficultyBeginner,
	}
}

func TestCreateDraftDoesNotBroadcast(t *testing.T) {
	broadcaster := &fakeBroadcaster{}
	service := NewLessonService(newFakeLessonRepo(), broadcaster)

	_, err := service.CreateLesson(context.Background(), admin, draftInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(broadcaster.events) != 0 {
		t.Errorf("draft must not broadcast, got %v", broadcaster.events)
	}
}

func TestPublishFlipBroadcastsOnce(t *testing.T) {
	broadcaster := &fakeBroadcaster{}
	service := NewLessonService(newFakeLessonRepo(), broadcaster)
	ctx := context.Background()

	created, err := service.CreateLesson(ctx, admin, draftInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	published := true
	if _, err := service.UpdateLesson(ctx, created.ID, UpdateLessonInput{IsPublished: &published}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(broadcaster.events) != 1 || broadcaster.events[0] != domain.NotificationLessonPublished {
		t.Fatalf("expected one lesson_published event, got %v", broadcaster.events)
	}

	// editing an already published lesson must not re-announce it
	if _, err := service.UpdateLesson(ctx, created.ID, UpdateLessonInput{IsPublished: &published, Duration: intPtr(20)}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if len(broadcaster.events) != 1 {
		t.Errorf("expected no re-broadcast, got %v", broadcaster.events)
	}
}

func TestDraftHiddenFromNonAdmins(t *testing.T) {
	service := NewLessonService(newFakeLessonRepo(), &fakeBroadcaster{})
	ctx := context.Background()

	created, err := service.CreateLesson(ctx, admin, draftInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = service.GetLessonByID(ctx, farmer, created.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for draft, got %v", err)
	}
	if _, err := service.GetLessonByID(ctx, admin, created.ID); err != nil {
		t.Errorf("admin should see draft: %v", err)
	}

	lessons, err := service.GetAllLessons(ctx, farmer, ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lessons) != 0 {
		t.Errorf("drafts leaked into public list")
	}

	lessons, err = service.GetAllLessons(ctx, admin, ListFilter{})
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(lessons) != 1 {
		t.Errorf("admin list must include drafts")
	}
}

func TestCreateLessonInvalidDifficulty(t *testing.T) {
	service := NewLessonService(newFakeLessonRepo(), &fakeBroadcaster{})

	input := draftInput()
	input.Difficulty = "impossible"
	_, err := service.CreateLesson(context.Background(), admin, input)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func intPtr(v int) *int { return &v }
