package user

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"agrilink/domain"
)

type fakeUserRepo struct {
	records map[uint]domain.User
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	f := &fakeUserRepo{records: make(map[uint]domain.User)}
	for _, u := range users {
		f.records[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	u, ok := f.records[id]
	if !ok {
		return domain.User{}, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return u, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.records {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) FindByRole(_ context.Context, role string) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.records {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.records[user.ID]; !ok {
		return fmt.Errorf("user %d: %w", user.ID, domain.ErrNotFound)
	}
	f.records[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.records[id]; !ok {
		return fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	delete(f.records, id)
	return nil
}

var (
	farmer = domain.User{ID: 1, Name: "Ama", Role: domain.RoleFarmer, PreferredLanguage: domain.LanguageEnglish}
	trader = domain.User{ID: 2, Name: "Esi", Role: domain.RoleMarketWoman, PreferredLanguage: domain.LanguageTwi}

	farmerIdentity = domain.Identity{UserID: 1, Name: "Ama", Role: domain.RoleFarmer}
	adminIdentity  = domain.Identity{UserID: 9, Name: "Kofi", Role: domain.RoleAdmin}
)

func TestUpdateProfileOwner(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(farmer, trader))

	updated, err := svc.UpdateProfile(context.Background(), farmerIdentity, 1, UpdateProfileInput{
		Name:              "Ama Mensah",
		Location:          "Kumasi",
		PreferredLanguage: domain.LanguageTwi,
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Name != "Ama Mensah" || updated.Location != "Kumasi" {
		t.Errorf("profile fields not merged: %+v", updated)
	}
	if updated.PreferredLanguage != domain.LanguageTwi {
		t.Errorf("language = %q, want %q", updated.PreferredLanguage, domain.LanguageTwi)
	}
	// untouched fields survive the merge
	if updated.Role != domain.RoleFarmer {
		t.Errorf("role changed unexpectedly to %q", updated.Role)
	}
}

func TestUpdateProfileNotOwner(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(farmer, trader))

	_, err := svc.UpdateProfile(context.Background(), farmerIdentity, 2, UpdateProfileInput{Name: "x"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}
}

func TestUpdateProfileMissingUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(farmer))

	_, err := svc.UpdateProfile(context.Background(), adminIdentity, 42, UpdateProfileInput{Name: "x"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestUpdateProfileRoleChangeRequiresAdmin(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(farmer, trader))

	_, err := svc.UpdateProfile(context.Background(), farmerIdentity, 1, UpdateProfileInput{Role: domain.RoleLogistics})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("self role change error = %v, want ErrForbidden", err)
	}

	updated, err := svc.UpdateProfile(context.Background(), adminIdentity, 1, UpdateProfileInput{Role: domain.RoleLogistics})
	if err != nil {
		t.Fatalf("admin role change: %v", err)
	}
	if updated.Role != domain.RoleLogistics {
		t.Errorf("role = %q, want %q", updated.Role, domain.RoleLogistics)
	}
}

func TestUpdateProfileInvalidLanguage(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(farmer))

	_, err := svc.UpdateProfile(context.Background(), farmerIdentity, 1, UpdateProfileInput{PreferredLanguage: "fr"})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
}

func TestGetUsersByRole(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(farmer, trader))

	farmers, err := svc.GetUsersByRole(context.Background(), domain.RoleFarmer)
	if err != nil {
		t.Fatalf("GetUsersByRole: %v", err)
	}
	if len(farmers) != 1 || farmers[0].ID != 1 {
		t.Errorf("farmers = %+v, want only user 1", farmers)
	}

	if _, err := svc.GetUsersByRole(context.Background(), "pilot"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("invalid role error = %v, want ErrInvalidArgument", err)
	}
}

func TestDeleteUserMissing(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(farmer))

	if err := svc.DeleteUser(context.Background(), 42); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}

	if err := svc.DeleteUser(context.Background(), 1); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := svc.GetUserByID(context.Background(), 1); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("user still present after delete")
	}
}
