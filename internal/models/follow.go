package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow is a directed edge: follower follows followee. A single row serves
// both directions of the relationship, so a user's followers are the edges
// pointing at them and their following list is the edges they own.
type Follow struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	FollowerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follower_followee" json:"followerId"`
	FolloweeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follower_followee;index" json:"followeeId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
