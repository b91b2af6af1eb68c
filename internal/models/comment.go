package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is an immutable entry in a confession's comment list, ordered by
// creation time. Comments have no update or delete path of their own; they
// disappear only when their confession is deleted.
type Comment struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ConfessionID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	UserID       uuid.UUID `gorm:"type:uuid;not null" json:"userId"`
	User         User      `gorm:"foreignKey:UserID" json:"user"`
	Content      string    `gorm:"size:200;not null" json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (cm *Comment) BeforeCreate(tx *gorm.DB) error {
	if cm.ID == uuid.Nil {
		cm.ID = uuid.New()
	}
	return nil
}
