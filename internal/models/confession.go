package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Confession represents a confession post. Anonymity is a display preference
// only; the author association is always stored and resolved.
type Confession struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"authorId"`
	Author      User      `gorm:"foreignKey:AuthorID" json:"author"`
	IsAnonymous bool      `gorm:"not null;default:true" json:"isAnonymous"`
	// Shares has no write path in the API; it exists for schema parity and
	// seeded data only.
	Shares   int       `gorm:"not null;default:0" json:"shares"`
	Likes    []Like    `gorm:"foreignKey:ConfessionID" json:"likes"`
	Comments []Comment `gorm:"foreignKey:ConfessionID" json:"comments"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likesCount"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int       `gorm:"->" json:"commentsCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (cf *Confession) BeforeCreate(tx *gorm.DB) error {
	if cf.ID == uuid.Nil {
		cf.ID = uuid.New()
	}
	return nil
}
