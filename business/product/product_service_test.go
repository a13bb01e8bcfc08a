package product

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"agrilink/domain"
)

type fakeProductRepo struct {
	records map[uint]domain.Product
	nextID  uint
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{records: make(map[uint]domain.Product), nextID: 1}
}

func (f *fakeProductRepo) Create(_ context.Context, p *domain.Product) error {
	p.ID = f.nextID
	f.nextID++
	f.records[p.ID] = *p
	return nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uint) (domain.Product, error) {
	p, ok := f.records[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

func (f *fakeProductRepo) FindAllActive(_ context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.records {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindByCategory(_ context.Context, category string) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.records {
		if p.IsActive && p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindBySeller(_ context.Context, sellerID uint) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.records {
		if p.IsActive && p.SellerID == sellerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindAll(_ context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.records {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := f.records[p.ID]; !ok {
		return fmt.Errorf("product %d: %w", p.ID, domain.ErrNotFound)
	}
	f.records[p.ID] = *p
	return nil
}

func (f *fakeProductRepo) Deactivate(_ context.Context, id uint) error {
	p, ok := f.records[id]
	if !ok {
		return fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	p.IsActive = false
	f.records[id] = p
	return nil
}

var (
	seller = domain.Identity{UserID: 1, Role: domain.RoleFarmer}
	buyer  = domain.Identity{UserID: 2, Role: domain.RoleMarketWoman}
	admin  = domain.Identity{UserID: 3, Role: domain.RoleAdmin}
)

func seedProduct(t *testing.T, service *productService) domain.Product {
	t.Helper()
	p, err := service.CreateProduct(context.Background(), seller, ProductInput{
		Name:     "Fresh Tomatoes",
		Category: domain.CategoryVegetables,
		Unit:     domain.UnitKilogram,
		Price:    12.5,
		Quantity: 40,
		Location: "Kumasi",
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func TestCreateProductStampsSeller(t *testing.T) {
	service := NewProductService(newFakeProductRepo())

	p := seedProduct(t, service)
	if p.SellerID != seller.UserID {
		t.Errorf("expected seller %d, got %d", seller.UserID, p.SellerID)
	}
	if !p.IsActive {
		t.Error("new product must be active")
	}
}

func TestCreateProductInvalidCategory(t *testing.T) {
	service := NewProductService(newFakeProductRepo())

	_, err := service.CreateProduct(context.Background(), seller, ProductInput{
		Name: "Thing", Category: "gadgets", Unit: domain.UnitKilogram,
	})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestDeleteProductSoftDeletes(t *testing.T) {
	repo := newFakeProductRepo()
	service := NewProductService(repo)
	ctx := context.Background()

	p := seedProduct(t, service)
	if err := service.DeleteProduct(ctx, seller, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// hidden from buyers
	_, err := service.GetProductByID(ctx, buyer, p.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for buyer, got %v", err)
	}

	// still visible to the seller and to admins
	if _, err := service.GetProductByID(ctx, seller, p.ID); err != nil {
		t.Errorf("seller should still see own listing: %v", err)
	}
	if _, err := service.GetProductByID(ctx, admin, p.ID); err != nil {
		t.Errorf("admin should see deactivated listing: %v", err)
	}

	active, err := service.GetAllProducts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("deactivated listing leaked into public list")
	}

	all, err := service.GetAllProductsAdmin(ctx)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("admin list must include deactivated listings")
	}
}

func TestUpdateProductOwnership(t *testing.T) {
	service := NewProductService(newFakeProductRepo())
	ctx := context.Background()

	p := seedProduct(t, service)

	_, err := service.UpdateProduct(ctx, buyer, p.ID, UpdateProductInput{Name: "Hijacked"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// missing listing reports not found before ownership
	_, err = service.UpdateProduct(ctx, buyer, 999, UpdateProductInput{Name: "X"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	price := 20.0
	updated, err := service.UpdateProduct(ctx, admin, p.ID, UpdateProductInput{Price: &price})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Price != 20.0 {
		t.Errorf("expected price 20.0, got %v", updated.Price)
	}
}

func TestUpdateProductNegativePrice(t *testing.T) {
	service := NewProductService(newFakeProductRepo())

	p := seedProduct(t, service)

	price := -1.0
	_, err := service.UpdateProduct(context.Background(), seller, p.ID, UpdateProductInput{Price: &price})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}
