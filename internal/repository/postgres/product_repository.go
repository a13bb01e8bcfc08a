package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"agrilink/domain"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// FindByID returns the row regardless of the active flag; callers decide
// whether a soft-deleted product is visible.
func (r *ProductRepository) FindByID(ctx context.Context, id uint) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	var product domain.Product

	err := r.DB.WithContext(ctx).Preload("Seller").First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

func (r *ProductRepository) FindAllActive(ctx context.Context) ([]domain.Product, error) {
	return r.findActive(ctx, nil)
}

func (r *ProductRepository) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return r.findActive(ctx, map[string]interface{}{"category": category})
}

func (r *ProductRepository) FindBySeller(ctx context.Context, sellerID uint) ([]domain.Product, error) {
	return r.findActive(ctx, map[string]interface{}{"seller_id": sellerID})
}

func (r *ProductRepository) findActive(ctx context.Context, conditions map[string]interface{}) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).Preload("Seller").Where("is_active = ?", true)
	if len(conditions) > 0 {
		query = query.Where(conditions)
	}

	var products []domain.Product
	if err := query.Order("created_at desc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

// FindAll includes soft-deleted products; used by admin views only.
func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var products []domain.Product
	err := r.DB.WithContext(ctx).Preload("Seller").Order("created_at desc").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"name":        product.Name,
		"description": product.Description,
		"image":       product.Image,
		"category":    product.Category,
		"unit":        product.Unit,
		"price":       product.Price,
		"quantity":    product.Quantity,
		"location":    product.Location,
		"is_active":   product.IsActive,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", product.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", product.ID, domain.ErrNotFound)
	}

	return nil
}

// Deactivate is the soft delete: the row stays, the listing disappears.
func (r *ProductRepository) Deactivate(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var count int64
	if err := r.DB.WithContext(ctx).Model(&domain.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}
