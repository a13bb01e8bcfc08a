package domain

import (
	"time"

	"github.com/lib/pq"
)

const (
	ForumCategoryGeneral   = "general"
	ForumCategoryFarming   = "farming"
	ForumCategoryMarketing = "marketing"
	ForumCategoryLogistics = "logistics"
	ForumCategoryHealth    = "health"
)

var validForumCategories = map[string]bool{
	ForumCategoryGeneral:   true,
	ForumCategoryFarming:   true,
	ForumCategoryMarketing: true,
	ForumCategoryLogistics: true,
	ForumCategoryHealth:    true,
}

func ValidForumCategory(category string) bool {
	return validForumCategories[category]
}

type Forum struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"column:title;not null" json:"title"`
	Content      string         `gorm:"column:content;type:text;not null" json:"content"`
	AuthorID     uint           `gorm:"column:author_id;index;not null" json:"authorId"`
	Author       *User          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Category     string         `gorm:"column:category;default:general" json:"category"`
	Tags         pq.StringArray `gorm:"column:tags;type:text[]" json:"tags"`
	LikeCount    int64          `gorm:"-" json:"likes"`
	IsReported   bool           `gorm:"column:is_reported;default:false" json:"isReported"`
	ReportReason string         `gorm:"column:report_reason" json:"reportReason,omitempty"`
	IsClosed     bool           `gorm:"column:is_closed;default:false" json:"isClosed"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Forum) TableName() string {
	return "forums"
}

// ForumLike is one row per (post, user) pair; the composite primary key
// makes duplicate likes impossible at the schema level.
type ForumLike struct {
	ForumID   uint `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}

func (ForumLike) TableName() string {
	return "forum_likes"
}
