// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"unburden/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var interestPool = []string{
	"music", "movies", "gaming", "fitness", "books", "travel",
	"cooking", "art", "photography", "meditation", "running", "coding",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	interests := make([]string, 0, 3)
	for _, idx := range rand.Perm(len(interestPool))[:3] {
		interests = append(interests, interestPool[idx])
	}

	user := &models.User{
		Username:       gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:          gofakeit.Email(),
		DisplayName:    gofakeit.Name(),
		Bio:            gofakeit.Sentence(10),
		ProfilePicture: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Interests:      datatypes.NewJSONSlice(interests),
		IsOnboarded:    true,
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateConfession constructs and persists a sample confession for the given
// author, with a realistic created_at spread over the configured window.
func (f *Factory) CreateConfession(author *models.User, overrides ...func(*models.Confession)) (*models.Confession, error) {
	confession := &models.Confession{
		Content:     gofakeit.Paragraph(1, 2, 8, " "),
		AuthorID:    author.ID,
		IsAnonymous: gofakeit.Number(0, 9) < 8,
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 30
	}
	daysBack := rand.Intn(maxDays)
	hoursBack := rand.Intn(24)
	minsBack := rand.Intn(60)
	confession.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(confession)
	}

	if err := f.db.Create(confession).Error; err != nil {
		return nil, err
	}
	return confession, nil
}

// CreateComment constructs and persists a sample comment on the provided
// confession authored by the provided user.
func (f *Factory) CreateComment(user *models.User, confession *models.Confession, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		ConfessionID: confession.ID,
		UserID:       user.ID,
		Content:      gofakeit.Sentence(8),
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from `user` on `confession`.
func (f *Factory) CreateLike(user *models.User, confession *models.Confession) error {
	like := &models.Like{
		ConfessionID: confession.ID,
		UserID:       user.ID,
	}
	return f.db.Create(like).Error
}

// CreateFollow persists a follow edge from follower to followee.
func (f *Factory) CreateFollow(follower, followee *models.User) error {
	follow := &models.Follow{
		FollowerID: follower.ID,
		FolloweeID: followee.ID,
	}
	return f.db.Create(follow).Error
}
