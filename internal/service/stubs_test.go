package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"unburden/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn               func(context.Context, uuid.UUID) (*models.User, error)
	getByEmailFn            func(context.Context, string) (*models.User, error)
	getByUsernameFn         func(context.Context, string) (*models.User, error)
	createFn                func(context.Context, *models.User) error
	updateFn                func(context.Context, *models.User) error
	deleteFn                func(context.Context, uuid.UUID) error
	adjustConfessionCountFn func(context.Context, uuid.UUID, int) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) AdjustConfessionCount(ctx context.Context, id uuid.UUID, delta int) error {
	return s.adjustConfessionCountFn(ctx, id, delta)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByEmailFn:            func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn:         func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:                func(_ context.Context, _ *models.User) error { return nil },
		updateFn:                func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:                func(_ context.Context, _ uuid.UUID) error { return nil },
		adjustConfessionCountFn: func(_ context.Context, _ uuid.UUID, _ int) error { return nil },
	}
}

// confessionRepoStub is a stub for repository.ConfessionRepository.
type confessionRepoStub struct {
	createFn          func(context.Context, *models.Confession) error
	getByIDFn         func(context.Context, uuid.UUID) (*models.Confession, error)
	getByAuthorFn     func(context.Context, uuid.UUID) ([]models.Confession, error)
	listFn            func(context.Context, int, int) ([]models.Confession, error)
	countFn           func(context.Context) (int64, error)
	trendingFn        func(context.Context, time.Time, int) ([]models.Confession, error)
	listByAuthorsFn   func(context.Context, []uuid.UUID) ([]models.Confession, error)
	updateFn          func(context.Context, *models.Confession) error
	deleteFn          func(context.Context, uuid.UUID) error
	deleteByAuthorFn  func(context.Context, uuid.UUID) error
	isLikedFn         func(context.Context, uuid.UUID, uuid.UUID) (bool, error)
	likeFn            func(context.Context, uuid.UUID, uuid.UUID) error
	unlikeFn          func(context.Context, uuid.UUID, uuid.UUID) error
	addCommentFn      func(context.Context, *models.Comment) error
	countEngagementFn func(context.Context, uuid.UUID) (int64, int64, error)
}

func (s *confessionRepoStub) Create(ctx context.Context, confession *models.Confession) error {
	return s.createFn(ctx, confession)
}
func (s *confessionRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Confession, error) {
	return s.getByIDFn(ctx, id)
}
func (s *confessionRepoStub) GetByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Confession, error) {
	return s.getByAuthorFn(ctx, authorID)
}
func (s *confessionRepoStub) List(ctx context.Context, limit, offset int) ([]models.Confession, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *confessionRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *confessionRepoStub) Trending(ctx context.Context, since time.Time, limit int) ([]models.Confession, error) {
	return s.trendingFn(ctx, since, limit)
}
func (s *confessionRepoStub) ListByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]models.Confession, error) {
	return s.listByAuthorsFn(ctx, authorIDs)
}
func (s *confessionRepoStub) Update(ctx context.Context, confession *models.Confession) error {
	return s.updateFn(ctx, confession)
}
func (s *confessionRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}
func (s *confessionRepoStub) DeleteByAuthor(ctx context.Context, authorID uuid.UUID) error {
	return s.deleteByAuthorFn(ctx, authorID)
}
func (s *confessionRepoStub) IsLiked(ctx context.Context, confessionID, userID uuid.UUID) (bool, error) {
	return s.isLikedFn(ctx, confessionID, userID)
}
func (s *confessionRepoStub) Like(ctx context.Context, confessionID, userID uuid.UUID) error {
	return s.likeFn(ctx, confessionID, userID)
}
func (s *confessionRepoStub) Unlike(ctx context.Context, confessionID, userID uuid.UUID) error {
	return s.unlikeFn(ctx, confessionID, userID)
}
func (s *confessionRepoStub) AddComment(ctx context.Context, comment *models.Comment) error {
	return s.addCommentFn(ctx, comment)
}
func (s *confessionRepoStub) CountEngagement(ctx context.Context, authorID uuid.UUID) (int64, int64, error) {
	return s.countEngagementFn(ctx, authorID)
}

func noopConfessionRepo() *confessionRepoStub {
	return &confessionRepoStub{
		createFn: func(_ context.Context, _ *models.Confession) error { return nil },
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.Confession, error) {
			return &models.Confession{ID: id}, nil
		},
		getByAuthorFn:     func(_ context.Context, _ uuid.UUID) ([]models.Confession, error) { return nil, nil },
		listFn:            func(_ context.Context, _, _ int) ([]models.Confession, error) { return nil, nil },
		countFn:           func(_ context.Context) (int64, error) { return 0, nil },
		trendingFn:        func(_ context.Context, _ time.Time, _ int) ([]models.Confession, error) { return nil, nil },
		listByAuthorsFn:   func(_ context.Context, _ []uuid.UUID) ([]models.Confession, error) { return nil, nil },
		updateFn:          func(_ context.Context, _ *models.Confession) error { return nil },
		deleteFn:          func(_ context.Context, _ uuid.UUID) error { return nil },
		deleteByAuthorFn:  func(_ context.Context, _ uuid.UUID) error { return nil },
		isLikedFn:         func(_ context.Context, _, _ uuid.UUID) (bool, error) { return false, nil },
		likeFn:            func(_ context.Context, _, _ uuid.UUID) error { return nil },
		unlikeFn:          func(_ context.Context, _, _ uuid.UUID) error { return nil },
		addCommentFn:      func(_ context.Context, _ *models.Comment) error { return nil },
		countEngagementFn: func(_ context.Context, _ uuid.UUID) (int64, int64, error) { return 0, 0, nil },
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	createFn           func(context.Context, *models.Follow) error
	deleteFn           func(context.Context, uuid.UUID, uuid.UUID) error
	existsFn           func(context.Context, uuid.UUID, uuid.UUID) (bool, error)
	countFollowersFn   func(context.Context, uuid.UUID) (int64, error)
	countFollowingFn   func(context.Context, uuid.UUID) (int64, error)
	listFolloweeIDsFn  func(context.Context, uuid.UUID) ([]uuid.UUID, error)
	deleteByFollowerFn func(context.Context, uuid.UUID) error
	deleteByFolloweeFn func(context.Context, uuid.UUID) error
}

func (s *followRepoStub) Create(ctx context.Context, follow *models.Follow) error {
	return s.createFn(ctx, follow)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followeeID uuid.UUID) error {
	return s.deleteFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	return s.existsFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.countFollowersFn(ctx, userID)
}
func (s *followRepoStub) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.countFollowingFn(ctx, userID)
}
func (s *followRepoStub) ListFolloweeIDs(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error) {
	return s.listFolloweeIDsFn(ctx, followerID)
}
func (s *followRepoStub) DeleteByFollower(ctx context.Context, followerID uuid.UUID) error {
	return s.deleteByFollowerFn(ctx, followerID)
}
func (s *followRepoStub) DeleteByFollowee(ctx context.Context, followeeID uuid.UUID) error {
	return s.deleteByFolloweeFn(ctx, followeeID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:           func(_ context.Context, _ *models.Follow) error { return nil },
		deleteFn:           func(_ context.Context, _, _ uuid.UUID) error { return nil },
		existsFn:           func(_ context.Context, _, _ uuid.UUID) (bool, error) { return false, nil },
		countFollowersFn:   func(_ context.Context, _ uuid.UUID) (int64, error) { return 0, nil },
		countFollowingFn:   func(_ context.Context, _ uuid.UUID) (int64, error) { return 0, nil },
		listFolloweeIDsFn:  func(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) { return nil, nil },
		deleteByFollowerFn: func(_ context.Context, _ uuid.UUID) error { return nil },
		deleteByFolloweeFn: func(_ context.Context, _ uuid.UUID) error { return nil },
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// assertNotFoundError asserts that err is an AppError with code NOT_FOUND.
func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
