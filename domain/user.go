package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleFarmer      = "farmer"
	RoleMarketWoman = "market_woman"
	RoleLogistics   = "logistics"
	RoleAdmin       = "admin"
)

var validRoles = map[string]bool{
	RoleFarmer:      true,
	RoleMarketWoman: true,
	RoleLogistics:   true,
	RoleAdmin:       true,
}

func ValidRole(role string) bool {
	return validRoles[role]
}

const (
	LanguageEnglish = "en"
	LanguageTwi     = "tw"
	LanguageGa      = "ga"
	LanguageEwe     = "ewe"

	DefaultLanguage = LanguageEnglish
)

var validLanguages = map[string]bool{
	LanguageEnglish: true,
	LanguageTwi:     true,
	LanguageGa:      true,
	LanguageEwe:     true,
}

func ValidLanguage(lang string) bool {
	return validLanguages[lang]
}

type User struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	Name              string `gorm:"column:name;not null" json:"name"`
	Phone             string `gorm:"column:phone;unique;not null" json:"phone"`
	Pin               string `gorm:"column:pin;not null" json:"-"`
	Role              string `gorm:"column:role;default:farmer" json:"role"`
	Location          string `gorm:"column:location" json:"location"`
	PreferredLanguage string `gorm:"column:preferred_language;default:en" json:"preferredLanguage"`
	IsVerified        bool   `gorm:"column:is_verified;default:false" json:"isVerified"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// Identity is the authenticated caller, resolved from a bearer token by the
// auth middleware.
type Identity struct {
	UserID uint
	Name   string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// OwnerOrAdmin reports whether the caller may mutate a resource owned by
// ownerID. Resource existence must be checked before ownership.
func (i Identity) OwnerOrAdmin(ownerID uint) bool {
	return i.IsAdmin() || i.UserID == ownerID
}
