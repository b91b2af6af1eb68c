package repository

import (
	"context"
	"fmt"
	"testing"

	"unburden/internal/database"
	"unburden/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory database per test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.ConnectTest()
	require.NoError(t, err)
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestConfession(t *testing.T, db *gorm.DB, author *models.User, content string) *models.Confession {
	t.Helper()
	confession := &models.Confession{
		Content:  content,
		AuthorID: author.ID,
	}
	require.NoError(t, db.Create(confession).Error)
	return confession
}

func mustGetUser(t *testing.T, db *gorm.DB, id uuid.UUID) *models.User {
	t.Helper()
	user, err := NewUserRepository(db).GetByID(context.Background(), id)
	require.NoError(t, err)
	return user
}
