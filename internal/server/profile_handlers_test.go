package server

import (
	"net/http"
	"testing"

	"unburden/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	t.Parallel()

	_, app, db := newTestServer(t)
	user := seedUser(t, db, "visible")

	resp, body := doJSON(t, app, http.MethodGet, "/api/profile/"+user.ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	profile, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "visible", profile["username"])
	_, hasPassword := profile["password"]
	assert.False(t, hasPassword, "password must never be serialized")
}

func TestGetProfile_NotFound(t *testing.T) {
	t.Parallel()

	_, app, _ := newTestServer(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/profile/"+uuid.New().String(), nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", body["error"])
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	_, app, db := newTestServer(t)
	user := seedUser(t, db, "editable")

	resp, body := doJSON(t, app, http.MethodPut, "/api/profile/"+user.ID.String(), map[string]any{
		"bio": "short and honest",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "short and honest", updated["bio"])
	// Username was not in the payload and stays.
	assert.Equal(t, "editable", updated["username"])
}

func TestGetUserConfessions(t *testing.T) {
	t.Parallel()

	_, app, db := newTestServer(t)
	user := seedUser(t, db, "prolific")
	seedConfession(t, db, user, "one")
	seedConfession(t, db, user, "two")

	resp, body := doJSON(t, app, http.MethodGet, "/api/profile/"+user.ID.String()+"/confessions", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["count"])

	confessions, ok := body["confessions"].([]any)
	require.True(t, ok)
	assert.Len(t, confessions, 2)
}

func TestGetUserStats(t *testing.T) {
	t.Parallel()

	_, app, db := newTestServer(t)
	author := seedUser(t, db, "measured")
	fan := seedUser(t, db, "fan")

	confession := seedConfession(t, db, author, "stat me")
	require.NoError(t, db.Create(&models.Like{ConfessionID: confession.ID, UserID: fan.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{ConfessionID: confession.ID, UserID: fan.ID, Content: "nice"}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: fan.ID, FolloweeID: author.ID}).Error)

	resp, body := doJSON(t, app, http.MethodGet, "/api/profile/"+author.ID.String()+"/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stats, ok := body["stats"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), stats["totalLikes"])
	assert.Equal(t, float64(1), stats["totalComments"])
	assert.Equal(t, float64(1), stats["followers"])
	assert.Equal(t, float64(0), stats["following"])
}

func TestFollowAndUnfollow(t *testing.T) {
	t.Parallel()

	_, app, db := newTestServer(t)
	follower := seedUser(t, db, "follower")
	followee := seedUser(t, db, "followee")

	followPath := "/api/profile/" + followee.ID.String() + "/follow"
	payload := map[string]string{"followerId": follower.ID.String()}

	resp, _ := doJSON(t, app, http.MethodPost, followPath, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Following twice is an error, not a no-op.
	resp, body := doJSON(t, app, http.MethodPost, followPath, payload)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Already following this user", body["error"])

	resp, _ = doJSON(t, app, http.MethodDelete, followPath, payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The edge is gone now.
	resp, body = doJSON(t, app, http.MethodDelete, followPath, payload)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Follow relationship not found", body["error"])
}

func TestFollowUser_SelfFollow(t *testing.T) {
	t.Parallel()

	_, app, db := newTestServer(t)
	user := seedUser(t, db, "loner")

	resp, body := doJSON(t, app, http.MethodPost, "/api/profile/"+user.ID.String()+"/follow",
		map[string]string{"followerId": user.ID.String()})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Cannot follow yourself", body["error"])
}

func TestFollowUser_MissingFollower(t *testing.T) {
	t.Parallel()

	_, app, db := newTestServer(t)
	followee := seedUser(t, db, "followed")

	resp, body := doJSON(t, app, http.MethodPost, "/api/profile/"+followee.ID.String()+"/follow",
		map[string]string{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Follower ID is required", body["error"])
}

func TestDeleteAccount(t *testing.T) {
	t.Parallel()

	_, app, db := newTestServer(t)
	leaver := seedUser(t, db, "leaver")
	stayer := seedUser(t, db, "stayer")

	leaverPost := seedConfession(t, db, leaver, "going away")
	stayerPost := seedConfession(t, db, stayer, "staying")

	// Engagement both ways plus follow edges around the leaver.
	require.NoError(t, db.Create(&models.Like{ConfessionID: stayerPost.ID, UserID: leaver.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{ConfessionID: stayerPost.ID, UserID: leaver.ID, Content: "bye"}).Error)
	require.NoError(t, db.Create(&models.Like{ConfessionID: leaverPost.ID, UserID: stayer.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: leaver.ID, FolloweeID: stayer.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: stayer.ID, FolloweeID: leaver.ID}).Error)

	resp, body := doJSON(t, app, http.MethodDelete, "/api/profile/"+leaver.ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Account deleted successfully", body["message"])

	// The user, their confessions and their follow edges are gone.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/profile/"+leaver.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var confessionCount, followCount int64
	require.NoError(t, db.Model(&models.Confession{}).Where("author_id = ?", leaver.ID).Count(&confessionCount).Error)
	require.NoError(t, db.Model(&models.Follow{}).Count(&followCount).Error)
	assert.Zero(t, confessionCount)
	assert.Zero(t, followCount)

	// Their likes and comments on other people's confessions are kept.
	var likeCount, commentCount int64
	require.NoError(t, db.Model(&models.Like{}).Where("user_id = ?", leaver.ID).Count(&likeCount).Error)
	require.NoError(t, db.Model(&models.Comment{}).Where("user_id = ?", leaver.ID).Count(&commentCount).Error)
	assert.Equal(t, int64(1), likeCount)
	assert.Equal(t, int64(1), commentCount)
}

func TestDeleteAccount_NotFound(t *testing.T) {
	t.Parallel()

	_, app, _ := newTestServer(t)

	resp, _ := doJSON(t, app, http.MethodDelete, "/api/profile/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
