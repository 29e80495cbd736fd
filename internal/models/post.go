package models

import (
	"time"
)

// Post represents a blog post authored by the administrator.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"unique;not null" json:"title"`
	Subtitle string `gorm:"not null" json:"subtitle"`
	Body     string `gorm:"type:text;not null" json:"body"`
	ImageURL string `gorm:"not null" json:"image_url"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"author"`
	// Comments are cascade-deleted with the post.
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	// CommentsCount is not persisted; computed at query time.
	CommentsCount int       `gorm:"->" json:"comments_count"`
	PublishedAt   time.Time `gorm:"not null;index" json:"published_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DisplayDate formats the publication timestamp for presentation,
// e.g. "August 29, 2026". Ordering and filtering always use PublishedAt.
func (p *Post) DisplayDate() string {
	return p.PublishedAt.Format("January 2, 2006")
}
