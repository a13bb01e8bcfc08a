package forum

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"agrilink/domain"
)

type fakeForumRepo struct {
	records map[uint]domain.Forum
	likes   map[uint]map[uint]bool
	nextID  uint
}

func newFakeForumRepo() *fakeForumRepo {
	return &fakeForumRepo{
		records: make(map[uint]domain.Forum),
		likes:   make(map[uint]map[uint]bool),
		nextID:  1,
	}
}

func (f *fakeForumRepo) Create(_ context.Context, post *domain.Forum) error {
	post.ID = f.nextID
	f.nextID++
	f.records[post.ID] = *post
	return nil
}

func (f *fakeForumRepo) FindByID(_ context.Context, id uint) (domain.Forum, error) {
	post, ok := f.records[id]
	if !ok {
		return domain.Forum{}, fmt.Errorf("forum post %d: %w", id, domain.ErrNotFound)
	}
	return post, nil
}

func (f *fakeForumRepo) FindAll(_ context.Context, category string) ([]domain.Forum, error) {
	var out []domain.Forum
	for _, post := range f.records {
		if category == "" || post.Category == category {
			out = append(out, post)
		}
	}
	return out, nil
}

func (f *fakeForumRepo) Update(_ context.Context, post *domain.Forum) error {
	if _, ok := f.records[post.ID]; !ok {
		return fmt.Errorf("forum post %d: %w", post.ID, domain.ErrNotFound)
	}
	f.records[post.ID] = *post
	return nil
}

func (f *fakeForumRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.records[id]; !ok {
		return fmt.Errorf("forum post %d: %w", id, domain.ErrNotFound)
	}
	delete(f.records, id)
	return nil
}

func (f *fakeForumRepo) ToggleLike(_ context.Context, forumID, userID uint) (bool, int64, error) {
	set, ok := f.likes[forumID]
	if !ok {
		set = make(map[uint]bool)
		f.likes[forumID] = set
	}
	liked := !set[userID]
	if liked {
		set[userID] = true
	} else {
		delete(set, userID)
	}
	return liked, int64(len(set)), nil
}

type fakeNotifier struct {
	adminEvents []string
}

func (f *fakeNotifier) NotifyAdmins(_ context.Context, notifType string, _ map[string]any) error {
	f.adminEvents = append(f.adminEvents, notifType)
	return nil
}

var (
	author = domain.Identity{UserID: 1, Role: domain.RoleFarmer}
	other  = domain.Identity{UserID: 2, Role: domain.RoleMarketWoman}
	admin  = domain.Identity{UserID: 3, Role: domain.RoleAdmin}
)

func seedPost(t *testing.T, service *forumService) domain.Forum {
	t.Helper()
	post, err := service.CreatePost(context.Background(), author, PostInput{
		Title:    "Best season for maize?",
		Content:  "When do you plant in the north?",
		Category: domain.ForumCategoryFarming,
		Tags:     []string{"maize", "planting"},
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

func TestCreatePostStampsAuthor(t *testing.T) {
	service := NewForumService(newFakeForumRepo(), &fakeNotifier{})

	post := seedPost(t, service)
	if post.AuthorID != author.UserID {
		t.Errorf("expected author %d, got %d", author.UserID, post.AuthorID)
	}
}

func TestUpdatePostGates(t *testing.T) {
	service := NewForumService(newFakeForumRepo(), &fakeNotifier{})
	ctx := context.Background()

	post := seedPost(t, service)

	_, err := service.UpdatePost(ctx, other, post.ID, UpdatePostInput{Title: "Hijacked"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	_, err = service.UpdatePost(ctx, other, 999, UpdatePostInput{Title: "X"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing post reports not found before ownership, got %v", err)
	}

	closed := true
	_, err = service.UpdatePost(ctx, author, post.ID, UpdatePostInput{IsClosed: &closed})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("only admins close posts, got %v", err)
	}

	updated, err := service.UpdatePost(ctx, admin, post.ID, UpdatePostInput{IsClosed: &closed})
	if err != nil {
		t.Fatalf("admin close: %v", err)
	}
	if !updated.IsClosed {
		t.Error("expected post to be closed")
	}
}

func TestToggleLikeIsIdempotentPair(t *testing.T) {
	service := NewForumService(newFakeForumRepo(), &fakeNotifier{})
	ctx := context.Background()

	post := seedPost(t, service)

	liked, count, err := service.ToggleLike(ctx, other, post.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !liked || count != 1 {
		t.Errorf("expected liked with count 1, got %v %d", liked, count)
	}

	liked, count, err = service.ToggleLike(ctx, other, post.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if liked || count != 0 {
		t.Errorf("expected unliked with count 0, got %v %d", liked, count)
	}

	_, _, err = service.ToggleLike(ctx, other, 999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReportPostNotifiesAdmins(t *testing.T) {
	repo := newFakeForumRepo()
	notifier := &fakeNotifier{}
	service := NewForumService(repo, notifier)
	ctx := context.Background()

	post := seedPost(t, service)

	if err := service.ReportPost(ctx, other, post.ID, "spam"); err != nil {
		t.Fatalf("report: %v", err)
	}

	flagged, err := service.GetPostByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !flagged.IsReported || flagged.ReportReason != "spam" {
		t.Errorf("expected flagged post, got %+v", flagged)
	}
	if len(notifier.adminEvents) != 1 || notifier.adminEvents[0] != domain.NotificationNewReport {
		t.Errorf("expected one new_report admin event, got %v", notifier.adminEvents)
	}
}
