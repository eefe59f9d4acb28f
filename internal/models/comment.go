package models

import "time"

// Comment represents a comment on a post. Comments are append-only: they are
// never edited or deleted on their own, only removed by the post cascade.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;not null"`
	Post      Post      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	AuthorID  uint      `json:"author_id" gorm:"index;not null"`
	Author    User      `json:"author" gorm:"constraint:OnDelete:CASCADE"`
	Text      string    `json:"text" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommentRequest defines the form fields for adding a comment
type CreateCommentRequest struct {
	Text string `json:"text" form:"text" validate:"required"`
}
