package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like marks a user's membership in a confession's likes set.
// The (confession, user) pair is unique, which is what gives the toggle its
// set semantics.
type Like struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	ConfessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_confession_user" json:"-"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_confession_user" json:"userId"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
