package service

import (
	"context"
	"strings"
	"testing"

	"unburden/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfessionService_CreateConfession_Validation(t *testing.T) {
	t.Parallel()

	svc := NewConfessionService(noopConfessionRepo(), noopUserRepo())
	ctx := context.Background()
	authorID := uuid.New()

	tests := []struct {
		name  string
		input CreateConfessionInput
	}{
		{
			name:  "empty content",
			input: CreateConfessionInput{AuthorID: authorID, Content: ""},
		},
		{
			name:  "whitespace only content",
			input: CreateConfessionInput{AuthorID: authorID, Content: "   \n\t  "},
		},
		{
			name:  "content too long",
			input: CreateConfessionInput{AuthorID: authorID, Content: strings.Repeat("x", 501)},
		},
		{
			name:  "missing author",
			input: CreateConfessionInput{Content: "something to confess"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.CreateConfession(ctx, tt.input)
			assertValidationError(t, err)
		})
	}
}

func TestConfessionService_CreateConfession_ContentAtLimit(t *testing.T) {
	t.Parallel()

	svc := NewConfessionService(noopConfessionRepo(), noopUserRepo())

	_, err := svc.CreateConfession(context.Background(), CreateConfessionInput{
		AuthorID: uuid.New(),
		Content:  strings.Repeat("x", 500),
	})
	assert.NoError(t, err)
}

func TestConfessionService_CreateConfession_DefaultsAnonymous(t *testing.T) {
	t.Parallel()

	repo := noopConfessionRepo()
	var created *models.Confession
	repo.createFn = func(_ context.Context, confession *models.Confession) error {
		created = confession
		return nil
	}

	svc := NewConfessionService(repo, noopUserRepo())
	_, err := svc.CreateConfession(context.Background(), CreateConfessionInput{
		AuthorID: uuid.New(),
		Content:  "I still sleep with a nightlight",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, created.IsAnonymous)
}

func TestConfessionService_CreateConfession_ExplicitNotAnonymous(t *testing.T) {
	t.Parallel()

	repo := noopConfessionRepo()
	var created *models.Confession
	repo.createFn = func(_ context.Context, confession *models.Confession) error {
		created = confession
		return nil
	}

	notAnon := false
	svc := NewConfessionService(repo, noopUserRepo())
	_, err := svc.CreateConfession(context.Background(), CreateConfessionInput{
		AuthorID:    uuid.New(),
		Content:     "owning this one",
		IsAnonymous: &notAnon,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.False(t, created.IsAnonymous)
}

func TestConfessionService_CreateConfession_UnknownAuthor(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, _ uuid.UUID) (*models.User, error) {
		return nil, models.NewNotFoundError("User")
	}

	svc := NewConfessionService(noopConfessionRepo(), users)
	_, err := svc.CreateConfession(context.Background(), CreateConfessionInput{
		AuthorID: uuid.New(),
		Content:  "ghost confession",
	})
	assertNotFoundError(t, err)
}

func TestConfessionService_CreateConfession_BumpsAuthorCounter(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	var adjustedBy int
	users.adjustConfessionCountFn = func(_ context.Context, _ uuid.UUID, delta int) error {
		adjustedBy = delta
		return nil
	}

	svc := NewConfessionService(noopConfessionRepo(), users)
	_, err := svc.CreateConfession(context.Background(), CreateConfessionInput{
		AuthorID: uuid.New(),
		Content:  "counted",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, adjustedBy)
}

func TestConfessionService_UpdateConfession(t *testing.T) {
	t.Parallel()

	repo := noopConfessionRepo()
	var updated *models.Confession
	repo.updateFn = func(_ context.Context, confession *models.Confession) error {
		updated = confession
		return nil
	}

	svc := NewConfessionService(repo, noopUserRepo())

	_, err := svc.UpdateConfession(context.Background(), UpdateConfessionInput{
		ConfessionID: uuid.New(),
		Content:      "  revised confession  ",
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "revised confession", updated.Content)

	_, err = svc.UpdateConfession(context.Background(), UpdateConfessionInput{
		ConfessionID: uuid.New(),
		Content:      strings.Repeat("x", 501),
	})
	assertValidationError(t, err)
}

func TestConfessionService_DeleteConfession_DecrementsAuthorCounter(t *testing.T) {
	t.Parallel()

	authorID := uuid.New()
	repo := noopConfessionRepo()
	repo.getByIDFn = func(_ context.Context, id uuid.UUID) (*models.Confession, error) {
		return &models.Confession{ID: id, AuthorID: authorID}, nil
	}

	users := noopUserRepo()
	var adjustedID uuid.UUID
	var adjustedBy int
	users.adjustConfessionCountFn = func(_ context.Context, id uuid.UUID, delta int) error {
		adjustedID = id
		adjustedBy = delta
		return nil
	}

	svc := NewConfessionService(repo, users)
	require.NoError(t, svc.DeleteConfession(context.Background(), uuid.New()))
	assert.Equal(t, authorID, adjustedID)
	assert.Equal(t, -1, adjustedBy)
}

func TestConfessionService_ToggleLike(t *testing.T) {
	t.Parallel()

	t.Run("not yet liked adds the like", func(t *testing.T) {
		t.Parallel()

		repo := noopConfessionRepo()
		likeCalled := false
		repo.likeFn = func(_ context.Context, _, _ uuid.UUID) error {
			likeCalled = true
			return nil
		}

		svc := NewConfessionService(repo, noopUserRepo())
		liked, err := svc.ToggleLike(context.Background(), uuid.New(), uuid.New())
		require.NoError(t, err)
		assert.True(t, liked)
		assert.True(t, likeCalled)
	})

	t.Run("already liked removes the like", func(t *testing.T) {
		t.Parallel()

		repo := noopConfessionRepo()
		repo.isLikedFn = func(_ context.Context, _, _ uuid.UUID) (bool, error) { return true, nil }
		unlikeCalled := false
		repo.unlikeFn = func(_ context.Context, _, _ uuid.UUID) error {
			unlikeCalled = true
			return nil
		}

		svc := NewConfessionService(repo, noopUserRepo())
		liked, err := svc.ToggleLike(context.Background(), uuid.New(), uuid.New())
		require.NoError(t, err)
		assert.False(t, liked)
		assert.True(t, unlikeCalled)
	})

	t.Run("missing user id", func(t *testing.T) {
		t.Parallel()

		svc := NewConfessionService(noopConfessionRepo(), noopUserRepo())
		_, err := svc.ToggleLike(context.Background(), uuid.New(), uuid.Nil)
		assertValidationError(t, err)
	})

	t.Run("unknown confession", func(t *testing.T) {
		t.Parallel()

		repo := noopConfessionRepo()
		repo.getByIDFn = func(_ context.Context, _ uuid.UUID) (*models.Confession, error) {
			return nil, models.NewNotFoundError("Confession")
		}

		svc := NewConfessionService(repo, noopUserRepo())
		_, err := svc.ToggleLike(context.Background(), uuid.New(), uuid.New())
		assertNotFoundError(t, err)
	})
}

func TestConfessionService_AddComment(t *testing.T) {
	t.Parallel()

	t.Run("valid comment", func(t *testing.T) {
		t.Parallel()

		repo := noopConfessionRepo()
		var added *models.Comment
		repo.addCommentFn = func(_ context.Context, comment *models.Comment) error {
			added = comment
			return nil
		}

		svc := NewConfessionService(repo, noopUserRepo())
		_, err := svc.AddComment(context.Background(), AddCommentInput{
			ConfessionID: uuid.New(),
			UserID:       uuid.New(),
			Content:      "  me too  ",
		})
		require.NoError(t, err)
		require.NotNil(t, added)
		assert.Equal(t, "me too", added.Content)
	})

	t.Run("content at limit", func(t *testing.T) {
		t.Parallel()

		svc := NewConfessionService(noopConfessionRepo(), noopUserRepo())
		_, err := svc.AddComment(context.Background(), AddCommentInput{
			ConfessionID: uuid.New(),
			UserID:       uuid.New(),
			Content:      strings.Repeat("x", 200),
		})
		assert.NoError(t, err)
	})

	t.Run("content over limit", func(t *testing.T) {
		t.Parallel()

		svc := NewConfessionService(noopConfessionRepo(), noopUserRepo())
		_, err := svc.AddComment(context.Background(), AddCommentInput{
			ConfessionID: uuid.New(),
			UserID:       uuid.New(),
			Content:      strings.Repeat("x", 201),
		})
		assertValidationError(t, err)
	})

	t.Run("missing user id", func(t *testing.T) {
		t.Parallel()

		svc := NewConfessionService(noopConfessionRepo(), noopUserRepo())
		_, err := svc.AddComment(context.Background(), AddCommentInput{
			ConfessionID: uuid.New(),
			Content:      "anonymous comment",
		})
		assertValidationError(t, err)
	})
}
