package models

import "time"

// Post represents a blog entry. CreatedAt is set once on insert and is the
// ordering key for every listing; updates never touch it.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text" gorm:"not null"`
	Image     string    `json:"image,omitempty"` // stored media filename, empty when no attachment
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	GroupID   *uint     `json:"group_id,omitempty" gorm:"index"`
	Group     *Group    `json:"group,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	AuthorID  uint      `json:"author_id" gorm:"index;not null"`
	Author    User      `json:"author" gorm:"constraint:OnDelete:CASCADE"`
}

// PostFormRequest defines the form fields for creating or editing a post.
// Group carries the raw select value; empty means no group.
type PostFormRequest struct {
	Text  string `json:"text" form:"text" validate:"required"`
	Group string `json:"group" form:"group" validate:"omitempty,numeric"`
}
