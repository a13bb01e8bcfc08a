package domain

import (
	"time"
)

type Comment struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Content         string `gorm:"column:content;type:text;not null" json:"content"`
	AuthorID        uint   `gorm:"column:author_id;index;not null" json:"authorId"`
	Author          *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	ForumID         uint   `gorm:"column:forum_id;index;not null" json:"forumId"`
	ParentCommentID *uint  `gorm:"column:parent_comment_id" json:"parentCommentId,omitempty"`
	LikeCount       int64  `gorm:"-" json:"likes"`
	IsReported      bool   `gorm:"column:is_reported;default:false" json:"isReported"`
	ReportReason    string `gorm:"column:report_reason" json:"reportReason,omitempty"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Comment) TableName() string {
	return "comments"
}

type CommentLike struct {
	CommentID uint `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}

func (CommentLike) TableName() string {
	return "comment_likes"
}
