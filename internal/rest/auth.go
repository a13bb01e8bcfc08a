package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"agrilink/business/auth"
	"agrilink/domain"
	"agrilink/internal/middleware"
	jsonres "agrilink/pkg/response"
)

type AuthService interface {
	Register(ctx context.Context, input auth.RegisterInput) (domain.User, string, error)
	Login(ctx context.Context, phone, pin string) (domain.User, string, error)
	RequestOTP(ctx context.Context, phone string) error
	VerifyOTP(ctx context.Context, phone, code string) error
	ResetPin(ctx context.Context, phone, code, newPin string) error
	ChangePin(ctx context.Context, identity domain.Identity, currentPin, newPin string) error
	Me(ctx context.Context, identity domain.Identity) (domain.User, error)
}

type AuthHandler struct {
	authService AuthService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type RegisterRequest struct {
	Name              string `json:"name" validate:"required,min=2,max=100"`
	Phone             string `json:"phone" validate:"required"`
	Pin               string `json:"pin" validate:"required,len=6,numeric"`
	Role              string `json:"role" validate:"required"`
	Location          string `json:"location" validate:"max=200"`
	PreferredLanguage string `json:"preferred_language"`
}

type LoginRequest struct {
	Phone string `json:"phone" validate:"required"`
	Pin   string `json:"pin" validate:"required"`
}

type RequestOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
	Otp   string `json:"otp" validate:"required,len=6,numeric"`
}

type ResetPinRequest struct {
	Phone  string `json:"phone" validate:"required"`
	Otp    string `json:"otp" validate:"required,len=6,numeric"`
	NewPin string `json:"new_pin" validate:"required,len=6,numeric"`
}

type ChangePinRequest struct {
	CurrentPin string `json:"current_pin" validate:"required"`
	NewPin     string `json:"new_pin" validate:"required,len=6,numeric"`
}

type authPayload struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return writeBindError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return writeValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, token, err := h.authService.Register(ctx, auth.RegisterInput{
		Name:              req.Name,
		Phone:             req.Phone,
		Pin:               req.Pin,
		Role:              req.Role,
		Location:          req.Location,
		PreferredLanguage: req.PreferredLanguage,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, jsonres.Success("registration successful", authPayload{User: user, Token: token}))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return writeBindError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return writeValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, token, err := h.authService.Login(ctx, req.Phone, req.Pin)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("login successful", authPayload{User: user, Token: token}))
}

func (h *AuthHandler) RequestOTP(c echo.Context) error {
	var req RequestOTPRequest
	if err := c.Bind(&req); err != nil {
		return writeBindError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return writeValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.authService.RequestOTP(ctx, req.Phone); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("OTP sent", nil))
}

func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return writeBindError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return writeValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.authService.VerifyOTP(ctx, req.Phone, req.Otp); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("phone number verified", nil))
}

func (h *AuthHandler) ResetPin(c echo.Context) error {
	var req ResetPinRequest
	if err := c.Bind(&req); err != nil {
		return writeBindError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return writeValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.authService.ResetPin(ctx, req.Phone, req.Otp, req.NewPin); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("PIN reset successful", nil))
}

func (h *AuthHandler) ChangePin(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return writeError(c, domain.ErrUnauthenticated)
	}

	var req ChangePinRequest
	if err := c.Bind(&req); err != nil {
		return writeBindError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return writeValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.authService.ChangePin(ctx, identity, req.CurrentPin, req.NewPin); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("PIN changed", nil))
}

func (h *AuthHandler) Me(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return writeError(c, domain.ErrUnauthenticated)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.authService.Me(ctx, identity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("profile retrieved", user))
}
