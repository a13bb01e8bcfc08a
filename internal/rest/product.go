package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"agrilink/business/product"
	"agrilink/domain"
	"agrilink/internal/middleware"
	jsonres "agrilink/pkg/response"
)

type ProductService interface {
	CreateProduct(ctx context.Context, identity domain.Identity, input product.ProductInput) (domain.Product, error)
	GetProductByID(ctx context.Context, identity domain.Identity, id uint) (domain.Product, error)
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
	GetProductsBySeller(ctx context.Context, sellerID uint) ([]domain.Product, error)
	GetAllProductsAdmin(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, identity domain.Identity, id uint, input product.UpdateProductInput) (domain.Product, error)
	DeleteProduct(ctx context.Context, identity domain.Identity, id uint) error
}

type ProductHandler struct {
	productService ProductService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description string  `json:"description" validate:"max=1000"`
	Image       string  `json:"image"`
	Category    string  `json:"category" validate:"required"`
	Unit        string  `json:"unit" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Quantity    float64 `json:"quantity" validate:"required,gte=0"`
	Location    string  `json:"location" validate:"max=200"`
}

type UpdateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description" validate:"max=1000"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Unit        string   `json:"unit"`
	Price       *float64 `json:"price"`
	Quantity    *float64 `json:"quantity"`
	Location    string   `json:"location" validate:"max=200"`
	IsActive    *bool    `json:"is_active"`
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return writeError(c, domain.ErrUnauthenticated)
	}

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return writeBindError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return writeValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.productService.CreateProduct(ctx, identity, product.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Category:    req.Category,
		Unit:        req.Unit,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Location:    req.Location,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, jsonres.Success("product created", created))
}

func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetAllProducts(ctx)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("products retrieved", products))
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	// anonymous callers see only active listings
	identity, _ := middleware.IdentityFromContext(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	found, err := h.productService.GetProductByID(ctx, identity, id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("product retrieved", found))
}

func (h *ProductHandler) GetProductsByCategory(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetProductsByCategory(ctx, c.Param("category"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("products retrieved", products))
}

func (h *ProductHandler) GetProductsBySeller(c echo.Context) error {
	sellerID, err := pathID(c, "userId")
	if err != nil {
		return writeError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetProductsBySeller(ctx, sellerID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("products retrieved", products))
}

// GetAllProductsAdmin includes deactivated listings.
func (h *ProductHandler) GetAllProductsAdmin(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetAllProductsAdmin(ctx)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("products retrieved", products))
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return writeError(c, domain.ErrUnauthenticated)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return writeBindError(c, err)
	}
	if err := h.validator.Struct(&req); err != nil {
		return writeValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.productService.UpdateProduct(ctx, identity, id, product.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Category:    req.Category,
		Unit:        req.Unit,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Location:    req.Location,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("product updated", updated))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return writeError(c, domain.ErrUnauthenticated)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.productService.DeleteProduct(ctx, identity, id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("product removed", nil))
}
