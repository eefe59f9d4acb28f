package models

import "time"

// Follow is a directed edge: the follower sees the author's posts in their
// feed. The composite unique index keeps at most one edge per pair.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_author"`
	AuthorID   uint      `json:"author_id" gorm:"index;uniqueIndex:idx_follower_author"`
	CreatedAt  time.Time `json:"created_at"`
}
