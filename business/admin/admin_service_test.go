package admin

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"agrilink/domain"
)

type fakeForumRepo struct {
	records map[uint]domain.Forum
}

func (f *fakeForumRepo) FindByID(_ context.Context, id uint) (domain.Forum, error) {
	post, ok := f.records[id]
	if !ok {
		return domain.Forum{}, fmt.Errorf("forum post %d: %w", id, domain.ErrNotFound)
	}
	return post, nil
}

func (f *fakeForumRepo) FindReported(_ context.Context) ([]domain.Forum, error) {
	var out []domain.Forum
	for _, post := range f.records {
		if post.IsReported {
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

func (f *fakeForumRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.records)), nil
}

func (f *fakeForumRepo) CountReported(_ context.Context) (int64, error) {
	reported, _ := f.FindReported(context.Background())
	return int64(len(reported)), nil
}

type fixedCount int64

func (f fixedCount) Count(_ context.Context) (int64, error) { return int64(f), nil }

type fakeUserRepo struct{ fixedCount }

func (f fakeUserRepo) CountByRole(_ context.Context) (map[string]int64, error) {
	return map[string]int64{domain.RoleFarmer: 3, domain.RoleMarketWoman: 2}, nil
}

func newService(forums *fakeForumRepo) *adminService {
	return NewAdminService(forums, fakeUserRepo{fixedCount(5)}, fixedCount(4), fixedCount(2))
}

func seedForums() *fakeForumRepo {
	return &fakeForumRepo{records: map[uint]domain.Forum{
		1: {ID: 1, Title: "ok post"},
		2: {ID: 2, Title: "spam post", IsReported: true, ReportReason: "spam"},
	}}
}

func TestDashboardOverviewCounts(t *testing.T) {
	service := newService(seedForums())

	overview, err := service.GetDashboardOverview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}

	if overview.TotalUsers != 5 || overview.TotalProducts != 4 || overview.TotalForums != 2 || overview.TotalLessons != 2 {
		t.Errorf("wrong counts: %+v", overview)
	}
	if overview.ReportedForums != 1 {
		t.Errorf("expected 1 reported post, got %d", overview.ReportedForums)
	}
	if overview.UsersByRole[domain.RoleFarmer] != 3 {
		t.Errorf("expected 3 farmers, got %d", overview.UsersByRole[domain.RoleFarmer])
	}
}

func TestResolveReportDismiss(t *testing.T) {
	forums := seedForums()
	service := newService(forums)
	ctx := context.Background()

	if err := service.ResolveReport(ctx, 2, ActionDismiss); err != nil {
		t.Fatalf("dismiss: %v", err)
	}

	post := forums.records[2]
	if post.IsReported || post.ReportReason != "" {
		t.Errorf("expected cleared flag, got %+v", post)
	}
}

func TestResolveReportDelete(t *testing.T) {
	forums := seedForums()
	service := newService(forums)

	if err := service.ResolveReport(context.Background(), 2, ActionDelete); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := forums.records[2]; ok {
		t.Error("expected post removed")
	}
}

func TestResolveReportGates(t *testing.T) {
	service := newService(seedForums())
	ctx := context.Background()

	err := service.ResolveReport(ctx, 2, "archive")
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}

	err = service.ResolveReport(ctx, 99, ActionDismiss)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing post, got %v", err)
	}

	// a clean post is not resolvable
	err = service.ResolveReport(ctx, 1, ActionDismiss)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unreported post, got %v", err)
	}
}
