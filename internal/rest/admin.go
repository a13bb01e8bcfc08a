package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"agrilink/business/admin"
	"agrilink/domain"
	jsonres "agrilink/pkg/response"
)

type AdminService interface {
	GetDashboardOverview(ctx context.Context) (admin.DashboardOverview, error)
	GetReportedContent(ctx context.Context) ([]domain.Forum, error)
	ResolveReport(ctx context.Context, id uint, action string) error
}

type AdminHandler struct {
	adminService AdminService
	validator    *validator.Validate
	timeout      time.Duration
}

func NewAdminHandler(adminService AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		validator:    validator.New(),
		timeout:      10 * time.Second,
	}
}

type ResolveReportRequest struct {
	Action string `json:"action" validate:"required"`
}

func (h *AdminHandler) GetDashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	overview, err := h.adminService.GetDashboardOverview(ctx)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("dashboard retrieved", overview))
}

func (h *AdminHandler) GetReportedContent(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	reported, err := h.adminService.GetReportedContent(ctx)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("reported content retrieved", reported))
}

func (h *AdminHandler) ResolveReport(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var req ResolveReportRequest
	if err := c.Bind(&req); err != nil {
		return writeBindError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return writeValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.adminService.ResolveReport(ctx, id, req.Action); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("report resolved", nil))
}
