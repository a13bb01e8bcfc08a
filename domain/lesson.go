package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	LessonCategoryBusiness = "Business"
	LessonCategoryFarming  = "Farming"
	LessonCategoryHealth   = "Health"
)

var validLessonCategories = map[string]bool{
	LessonCategoryBusiness: true,
	LessonCategoryFarming:  true,
	LessonCategoryHealth:   true,
}

func ValidLessonCategory(category string) bool {
	return validLessonCategories[category]
}

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

var validDifficulties = map[string]bool{
	DifficultyBeginner:     true,
	DifficultyIntermediate: true,
	DifficultyAdvanced:     true,
}

func ValidDifficulty(difficulty string) bool {
	return validDifficulties[difficulty]
}

// Lesson content is multilingual: Title and Description map a language code
// to a string, Content maps a language code to {text, audioUrl, videoUrl,
// images}.
type Lesson struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Title       datatypes.JSONMap `gorm:"column:title" json:"title"`
	Description datatypes.JSONMap `gorm:"column:description" json:"description"`
	Content     datatypes.JSONMap `gorm:"column:content" json:"content"`
	Category    string            `gorm:"column:category;not null" json:"category"`
	// Duration in minutes.
	Duration    int    `gorm:"column:duration" json:"duration"`
	Difficulty  string `gorm:"column:difficulty;default:beginner" json:"difficulty"`
	CreatedByID uint   `gorm:"column:created_by_id;index;not null" json:"createdById"`
	CreatedBy   *User  `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
	IsPublished bool   `gorm:"column:is_published;default:false" json:"isPublished"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Lesson) TableName() string {
	return "lessons"
}
