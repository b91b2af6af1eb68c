// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultDisplayName is assigned when a user registers without one.
const DefaultDisplayName = "Anonymous Soul"

// User represents an account in the Unburden application.
//
// ConfessionCount is denormalized: it is maintained by separate writes when
// confessions are created or deleted, not derived at query time.
// FollowersCount and FollowingCount are the opposite: never written directly,
// only filled in by subquery aliases on reads.
type User struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Username       string                      `gorm:"uniqueIndex;not null" json:"username"`
	Email          string                      `gorm:"uniqueIndex;not null" json:"email"`
	Password       string                      `gorm:"not null" json:"-"`
	DisplayName    string                      `gorm:"not null" json:"displayName"`
	ProfilePicture string                      `json:"profilePicture"`
	Bio            string                      `gorm:"size:200" json:"bio"`
	Interests      datatypes.JSONSlice[string] `json:"interests"`
	IsOnboarded    bool                        `gorm:"not null;default:false" json:"isOnboarded"`
	IsAnonymous    bool                        `gorm:"not null;default:true" json:"isAnonymous"`
	// ConfessionCount is incremented and decremented by its own UPDATE
	// statements, independent of the confession write itself.
	ConfessionCount int                         `gorm:"not null;default:0" json:"confessionCount"`
	Streak          int                         `gorm:"not null;default:0" json:"streak"`
	Achievements    datatypes.JSONSlice[string] `json:"achievements"`
	// FollowersCount is not persisted; computed at query time
	FollowersCount int `gorm:"->" json:"followers"`
	// FollowingCount is not persisted; computed at query time
	FollowingCount int       `gorm:"->" json:"following"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// BeforeCreate assigns the store-side identity and fills registration
// defaults. IDs are generated here rather than by a database default so the
// sqlite test driver behaves the same as postgres.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.DisplayName == "" {
		u.DisplayName = DefaultDisplayName
	}
	if u.Interests == nil {
		u.Interests = datatypes.JSONSlice[string]{}
	}
	if u.Achievements == nil {
		u.Achievements = datatypes.JSONSlice[string]{}
	}
	return nil
}

// Summary is the abbreviated shape returned from register and login.
func (u *User) Summary() map[string]interface{} {
	return map[string]interface{}{
		"id":             u.ID,
		"username":       u.Username,
		"email":          u.Email,
		"displayName":    u.DisplayName,
		"profilePicture": u.ProfilePicture,
		"isOnboarded":    u.IsOnboarded,
	}
}
