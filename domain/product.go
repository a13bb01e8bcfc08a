package domain

import (
	"time"
)

const (
	CategoryVegetables = "vegetables"
	CategoryFruits     = "fruits"
	CategoryTubers     = "tubers"
	CategoryGrains     = "grains"
	CategoryLegumes    = "legumes"
	CategorySpices     = "spices"
	CategoryHerbs      = "herbs"
)

var validProductCategories = map[string]bool{
	CategoryVegetables: true,
	CategoryFruits:     true,
	CategoryTubers:     true,
	CategoryGrains:     true,
	CategoryLegumes:    true,
	CategorySpices:     true,
	CategoryHerbs:      true,
}

func ValidProductCategory(category string) bool {
	return validProductCategories[category]
}

const (
	UnitKilogram = "kg"
	UnitGram     = "g"
	UnitPiece    = "piece"
	UnitBundle   = "bundle"
	UnitBag      = "bag"
)

var validUnits = map[string]bool{
	UnitKilogram: true,
	UnitGram:     true,
	UnitPiece:    true,
	UnitBundle:   true,
	UnitBag:      true,
}

func ValidUnit(unit string) bool {
	return validUnits[unit]
}

type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"column:name;not null" json:"name"`
	Description string  `gorm:"column:description;type:text" json:"description"`
	Image       string  `gorm:"column:image" json:"image"`
	Category    string  `gorm:"column:category;not null" json:"category"`
	Unit        string  `gorm:"column:unit;not null" json:"unit"`
	Price       float64 `gorm:"column:price;type:numeric" json:"price"`
	Quantity    float64 `gorm:"column:quantity;type:numeric" json:"quantity"`
	SellerID    uint    `gorm:"column:seller_id;index;not null" json:"sellerId"`
	Seller      *User   `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Location    string  `gorm:"column:location" json:"location"`
	// Soft delete flag, products are never removed physically.
	IsActive  bool `gorm:"column:is_active;default:true" json:"isActive"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Product) TableName() string {
	return "products"
}
