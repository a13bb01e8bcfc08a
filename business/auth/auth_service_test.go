package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"

	"agrilink/domain"
	"agrilink/pkg/utils"
)

func init() {
	utils.InitJWT("test-secret")
}

type fakeUserRepo struct {
	byPhone map[string]domain.User
	nextID  uint

	verified map[uint]bool
	pins     map[uint]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byPhone:  make(map[string]domain.User),
		nextID:   1,
		verified: make(map[uint]bool),
		pins:     make(map[uint]string),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = f.nextID
	f.nextID++
	f.byPhone[user.Phone] = *user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	for _, u := range f.byPhone {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
}

func (f *fakeUserRepo) FindByPhone(_ context.Context, phone string) (domain.User, error) {
	u, ok := f.byPhone[phone]
	if !ok {
		return domain.User{}, fmt.Errorf("user %s: %w", phone, domain.ErrNotFound)
	}
	return u, nil
}

func (f *fakeUserRepo) UpdatePin(_ context.Context, id uint, pinHash string) error {
	f.pins[id] = pinHash
	for phone, u := range f.byPhone {
		if u.ID == id {
			u.Pin = pinHash
			f.byPhone[phone] = u
		}
	}
	return nil
}

func (f *fakeUserRepo) MarkVerified(_ context.Context, id uint) error {
	f.verified[id] = true
	for phone, u := range f.byPhone {
		if u.ID == id {
			u.IsVerified = true
			f.byPhone[phone] = u
		}
	}
	return nil
}

type fakeOtp struct {
	requested []string
	code      string
	verifyErr error
}

func (f *fakeOtp) Request(_ context.Context, phone string) error {
	f.requested = append(f.requested, phone)
	return nil
}

func (f *fakeOtp) Verify(_ context.Context, phone, code string) error {
	if f.verifyErr != nil {
		return f.verifyErr
	}
	if code != f.code {
		return domain.ErrOtpMismatch
	}
	return nil
}

func newService(repo *fakeUserRepo, otp *fakeOtp) *authService {
	return NewAuthService(repo, otp, validator.New())
}

func TestRegisterNormalizesPhone(t *testing.T) {
	repo := newFakeUserRepo()
	otp := &fakeOtp{}
	service := newService(repo, otp)

	user, token, err := service.Register(context.Background(), RegisterInput{
		Name:  "Ama Mensah",
		Phone: "020 123 4567",
		Pin:   "123456",
		Role:  domain.RoleFarmer,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Phone != "233201234567" {
		t.Errorf("expected normalized phone, got %s", user.Phone)
	}
	if token == "" {
		t.Error("expected a token")
	}
	if user.PreferredLanguage != domain.LanguageEnglish {
		t.Errorf("expected default language, got %s", user.PreferredLanguage)
	}
	if len(otp.requested) != 1 {
		t.Errorf("expected signup verification code, got %d requests", len(otp.requested))
	}
}

func TestRegisterDuplicatePhoneConflict(t *testing.T) {
	repo := newFakeUserRepo()
	service := newService(repo, &fakeOtp{})
	ctx := context.Background()

	input := RegisterInput{Name: "Ama", Phone: "0201234567", Pin: "123456", Role: domain.RoleFarmer}
	if _, _, err := service.Register(ctx, input); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, _, err := service.Register(ctx, input)
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestRegisterRejectsWrongLengthPin(t *testing.T) {
	service := newService(newFakeUserRepo(), &fakeOtp{})

	for _, pin := range []string{"", "1234", "12345", "1234567", "12a456"} {
		_, _, err := service.Register(context.Background(), RegisterInput{
			Name: "Ama", Phone: "0201234567", Pin: pin, Role: domain.RoleFarmer,
		})
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("pin %q: expected ErrInvalidArgument, got %v", pin, err)
		}
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	service := newService(newFakeUserRepo(), &fakeOtp{})

	_, _, err := service.Register(context.Background(), RegisterInput{
		Name: "Ama", Phone: "0201234567", Pin: "123456", Role: domain.RoleAdmin,
	})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestLoginWrongPinInvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	service := newService(repo, &fakeOtp{})
	ctx := context.Background()

	if _, _, err := service.Register(ctx, RegisterInput{
		Name: "Ama", Phone: "0201234567", Pin: "123456", Role: domain.RoleFarmer,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := service.Login(ctx, "0201234567", "999999")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	// unknown phone reports the same error as a wrong pin
	_, _, err = service.Login(ctx, "0209999999", "123456")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown phone, got %v", err)
	}

	user, token, err := service.Login(ctx, "0201234567", "123456")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" || user.ID == 0 {
		t.Error("expected user and token on correct pin")
	}
}

func TestRequestOTPUnknownPhoneNotFound(t *testing.T) {
	service := newService(newFakeUserRepo(), &fakeOtp{})

	err := service.RequestOTP(context.Background(), "0201234567")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestVerifyOTPMarksVerified(t *testing.T) {
	repo := newFakeUserRepo()
	otp := &fakeOtp{code: "123456"}
	service := newService(repo, otp)
	ctx := context.Background()

	user, _, err := service.Register(ctx, RegisterInput{
		Name: "Ama", Phone: "0201234567", Pin: "123456", Role: domain.RoleFarmer,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := service.VerifyOTP(ctx, "0201234567", "123456"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !repo.verified[user.ID] {
		t.Error("expected account to be marked verified")
	}

	err = service.VerifyOTP(ctx, "0201234567", "000000")
	if !errors.Is(err, domain.ErrOtpMismatch) {
		t.Errorf("expected ErrOtpMismatch, got %v", err)
	}
}

func TestResetPinRequiresValidCode(t *testing.T) {
	repo := newFakeUserRepo()
	otp := &fakeOtp{code: "123456"}
	service := newService(repo, otp)
	ctx := context.Background()

	if _, _, err := service.Register(ctx, RegisterInput{
		Name: "Ama", Phone: "0201234567", Pin: "123456", Role: domain.RoleFarmer,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	err := service.ResetPin(ctx, "0201234567", "000000", "567890")
	if !errors.Is(err, domain.ErrOtpMismatch) {
		t.Fatalf("expected ErrOtpMismatch, got %v", err)
	}

	if err := service.ResetPin(ctx, "0201234567", "123456", "567890"); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if _, _, err := service.Login(ctx, "0201234567", "567890"); err != nil {
		t.Errorf("login with new pin: %v", err)
	}
}

func TestChangePinChecksCurrent(t *testing.T) {
	repo := newFakeUserRepo()
	service := newService(repo, &fakeOtp{})
	ctx := context.Background()

	user, _, err := service.Register(ctx, RegisterInput{
		Name: "Ama", Phone: "0201234567", Pin: "123456", Role: domain.RoleFarmer,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	identity := domain.Identity{UserID: user.ID, Role: user.Role}

	err = service.ChangePin(ctx, identity, "000000", "567890")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if err := service.ChangePin(ctx, identity, "123456", "567890"); err != nil {
		t.Fatalf("change pin: %v", err)
	}
	if _, _, err := service.Login(ctx, "0201234567", "567890"); err != nil {
		t.Errorf("login with new pin: %v", err)
	}
}
