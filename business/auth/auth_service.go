package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	"agrilink/domain"
	"agrilink/pkg/logger"
	"agrilink/pkg/utils"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByPhone(ctx context.Context, phone string) (domain.User, error)
	UpdatePin(ctx context.Context, id uint, pinHash string) error
	MarkVerified(ctx context.Context, id uint) error
}

// OtpService contract interface
type OtpService interface {
	Request(ctx context.Context, phone string) error
	Verify(ctx context.Context, phone, code string) error
}

type authService struct {
	userRepo UserRepository
	otp      OtpService
	validate *validator.Validate
}

func NewAuthService(userRepo UserRepository, otp OtpService, validate *validator.Validate) *authService {
	return &authService{
		userRepo: userRepo,
		otp:      otp,
		validate: validate,
	}
}

type RegisterInput struct {
	Name              string
	Phone             string
	Pin               string
	Role              string
	Location          string
	PreferredLanguage string
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (domain.User, string, error) {
	phone, err := utils.NormalizePhone(input.Phone)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	if err := s.validate.Var(input.Pin, "required,len=6,numeric"); err != nil {
		return domain.User{}, "", fmt.Errorf("%w: pin must be 6 digits", domain.ErrInvalidArgument)
	}

	if input.Role == domain.RoleAdmin || !domain.ValidRole(input.Role) {
		return domain.User{}, "", fmt.Errorf("%w: invalid role %q", domain.ErrInvalidArgument, input.Role)
	}

	language := input.PreferredLanguage
	if language == "" {
		language = domain.LanguageEnglish
	}
	if !domain.ValidLanguage(language) {
		return domain.User{}, "", fmt.Errorf("%w: invalid language %q", domain.ErrInvalidArgument, language)
	}

	if existing, err := s.userRepo.FindByPhone(ctx, phone); err == nil && existing.ID > 0 {
		logger.Warn("Registration with taken phone number", "phone", phone)
		return domain.User{}, "", fmt.Errorf("phone number already registered: %w", domain.ErrConflict)
	}

	pinHash, err := utils.HashPin(input.Pin)
	if err != nil {
		logger.Error("Failed to hash pin", err)
		return domain.User{}, "", err
	}

	newUser := domain.User{
		Name:              input.Name,
		Phone:             phone,
		Pin:               pinHash,
		Role:              input.Role,
		Location:          input.Location,
		PreferredLanguage: language,
		IsVerified:        false,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create user", err)
		return domain.User{}, "", err
	}

	token, err := s.tokenFor(newUser)
	if err != nil {
		return domain.User{}, "", err
	}

	// verification code is best effort at signup; the user can re-request
	if err := s.otp.Request(ctx, phone); err != nil {
		logger.Warn("Failed to send signup verification code", "phone", phone, "error", err)
	}

	return newUser, token, nil
}

func (s *authService) Login(ctx context.Context, rawPhone, pin string) (domain.User, string, error) {
	phone, err := utils.NormalizePhone(rawPhone)
	if err != nil {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, "", domain.ErrInvalidCredentials
		}
		logger.Error("Failed to look up user for login", err)
		return domain.User{}, "", err
	}

	if !utils.CheckPin(user.Pin, pin) {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenFor(user)
	if err != nil {
		return domain.User{}, "", err
	}

	return user, token, nil
}

// RequestOTP sends a fresh verification code. The phone number must belong
// to a registered user.
func (s *authService) RequestOTP(ctx context.Context, rawPhone string) error {
	phone, err := utils.NormalizePhone(rawPhone)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	if _, err := s.userRepo.FindByPhone(ctx, phone); err != nil {
		return err
	}

	return s.otp.Request(ctx, phone)
}

// VerifyOTP consumes a code and marks the account verified.
func (s *authService) VerifyOTP(ctx context.Context, rawPhone, code string) error {
	phone, err := utils.NormalizePhone(rawPhone)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return err
	}

	if err := s.otp.Verify(ctx, phone, code); err != nil {
		return err
	}

	if user.IsVerified {
		return nil
	}
	return s.userRepo.MarkVerified(ctx, user.ID)
}

// ResetPin sets a new PIN after the caller proves phone ownership with a
// fresh code.
func (s *authService) ResetPin(ctx context.Context, rawPhone, code, newPin string) error {
	phone, err := utils.NormalizePhone(rawPhone)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	if err := s.validate.Var(newPin, "required,len=6,numeric"); err != nil {
		return fmt.Errorf("%w: pin must be 6 digits", domain.ErrInvalidArgument)
	}

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return err
	}

	if err := s.otp.Verify(ctx, phone, code); err != nil {
		return err
	}

	pinHash, err := utils.HashPin(newPin)
	if err != nil {
		logger.Error("Failed to hash pin", err)
		return err
	}

	return s.userRepo.UpdatePin(ctx, user.ID, pinHash)
}

// ChangePin rotates the PIN for a logged-in user who knows the current one.
func (s *authService) ChangePin(ctx context.Context, identity domain.Identity, currentPin, newPin string) error {
	if err := s.validate.Var(newPin, "required,len=6,numeric"); err != nil {
		return fmt.Errorf("%w: pin must be 6 digits", domain.ErrInvalidArgument)
	}

	user, err := s.userRepo.FindByID(ctx, identity.UserID)
	if err != nil {
		return err
	}

	if !utils.CheckPin(user.Pin, currentPin) {
		return domain.ErrInvalidCredentials
	}

	pinHash, err := utils.HashPin(newPin)
	if err != nil {
		logger.Error("Failed to hash pin", err)
		return err
	}

	return s.userRepo.UpdatePin(ctx, user.ID, pinHash)
}

// Me returns the caller's own profile.
func (s *authService) Me(ctx context.Context, identity domain.Identity) (domain.User, error) {
	return s.userRepo.FindByID(ctx, identity.UserID)
}

func (s *authService) tokenFor(user domain.User) (string, error) {
	userIdStr := strconv.FormatUint(uint64(user.ID), 10)
	token, err := utils.GenerateJWT(userIdStr, user.Role)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", errors.New("failed to generate token")
	}
	return token, nil
}
