package product

import (
	"context"
	"fmt"

	"agrilink/domain"
	"agrilink/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint) (domain.Product, error)
	FindAllActive(ctx context.Context) ([]domain.Product, error)
	FindByCategory(ctx context.Context, category string) ([]domain.Product, error)
	FindBySeller(ctx context.Context, sellerID uint) ([]domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Deactivate(ctx context.Context, id uint) error
}

type productService struct {
	productRepo ProductRepository
}

func NewProductService(productRepo ProductRepository) *productService {
	return &productService{
		productRepo: productRepo,
	}
}

type ProductInput struct {
	Name        string
	Description string
	Image       string
	Category    string
	Unit        string
	Price       float64
	Quantity    float64
	Location    string
}

func (s *productService) CreateProduct(ctx context.Context, identity domain.Identity, input ProductInput) (domain.Product, error) {
	if !domain.ValidProductCategory(input.Category) {
		return domain.Product{}, fmt.Errorf("%w: invalid category %q", domain.ErrInvalidArgument, input.Category)
	}
	if !domain.ValidUnit(input.Unit) {
		return domain.Product{}, fmt.Errorf("%w: invalid unit %q", domain.ErrInvalidArgument, input.Unit)
	}
	if input.Price < 0 || input.Quantity < 0 {
		return domain.Product{}, fmt.Errorf("%w: price and quantity cannot be negative", domain.ErrInvalidArgument)
	}

	newProduct := domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Image:       input.Image,
		Category:    input.Category,
		Unit:        input.Unit,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Location:    input.Location,
		SellerID:    identity.UserID,
		IsActive:    true,
	}

	if err := s.productRepo.Create(ctx, &newProduct); err != nil {
		logger.Error("Failed to create product", err)
		return domain.Product{}, err
	}

	return newProduct, nil
}

// GetProductByID hides deactivated listings from everyone but the seller
// and admins.
func (s *productService) GetProductByID(ctx context.Context, identity domain.Identity, id uint) (domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if !product.IsActive && !identity.OwnerOrAdmin(product.SellerID) {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}

	return product, nil
}

func (s *productService) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.FindAllActive(ctx)
}

func (s *productService) GetProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	if !domain.ValidProductCategory(category) {
		return nil, fmt.Errorf("%w: invalid category %q", domain.ErrInvalidArgument, category)
	}
	return s.productRepo.FindByCategory(ctx, category)
}

func (s *productService) GetProductsBySeller(ctx context.Context, sellerID uint) ([]domain.Product, error) {
	return s.productRepo.FindBySeller(ctx, sellerID)
}

// GetAllProductsAdmin includes deactivated listings for moderation.
func (s *productService) GetAllProductsAdmin(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.FindAll(ctx)
}

type UpdateProductInput struct {
	Name        string
	Description string
	Image       string
	Category    string
	Unit        string
	Price       *float64
	Quantity    *float64
	Location    string
	IsActive    *bool
}

func (s *productService) UpdateProduct(ctx context.Context, identity domain.Identity, id uint, input UpdateProductInput) (domain.Product, error) {
	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if !identity.OwnerOrAdmin(existing.SellerID) {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrForbidden)
	}

	if input.Name != "" {
		existing.Name = input.Name
	}
	if input.Description != "" {
		existing.Description = input.Description
	}
	if input.Image != "" {
		existing.Image = input.Image
	}
	if input.Category != "" {
		if !domain.ValidProductCategory(input.Category) {
			return domain.Product{}, fmt.Errorf("%w: invalid category %q", domain.ErrInvalidArgument, input.Category)
		}
		existing.Category = input.Category
	}
	if input.Unit != "" {
		if !domain.ValidUnit(input.Unit) {
			return domain.Product{}, fmt.Errorf("%w: invalid unit %q", domain.ErrInvalidArgument, input.Unit)
		}
		existing.Unit = input.Unit
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return domain.Product{}, fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidArgument)
		}
		existing.Price = *input.Price
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return domain.Product{}, fmt.Errorf("%w: quantity cannot be negative", domain.ErrInvalidArgument)
		}
		existing.Quantity = *input.Quantity
	}
	if input.Location != "" {
		existing.Location = input.Location
	}
	if input.IsActive != nil {
		existing.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(ctx, &existing); err != nil {
		logger.Error("Failed to update product", err)
		return domain.Product{}, err
	}

	return existing, nil
}

// DeleteProduct deactivates the listing instead of removing the row.
func (s *productService) DeleteProduct(ctx context.Context, identity domain.Identity, id uint) error {
	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !identity.OwnerOrAdmin(existing.SellerID) {
		return fmt.Errorf("product %d: %w", id, domain.ErrForbidden)
	}

	if err := s.productRepo.Deactivate(ctx, id); err != nil {
		logger.Error("Failed to deactivate product", err)
		return err
	}

	return nil
}
