package models

// Group is a named topic a post may be filed under
type Group struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:150"`
	Description string `json:"description"`
}
