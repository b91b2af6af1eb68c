package seed

import (
	"fmt"
	"log"
	"math/rand"

	"unburden/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder.
type Options struct {
	// SkipBcrypt stores the plain password. Only useful when seeding large
	// sets during development; login will not work against these users.
	SkipBcrypt bool
	// MaxDays is how far back confession timestamps are spread.
	MaxDays int
}

// Seeder populates the database with realistic demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder with default options.
func NewSeeder(db *gorm.DB) *Seeder {
	return NewSeederWithOptions(db, Options{})
}

// NewSeederWithOptions creates a Seeder with explicit options.
func NewSeederWithOptions(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// ClearAll removes all seeded data. Order matters: engagement rows first,
// then confessions, follows, users.
func (s *Seeder) ClearAll() error {
	log.Println("🗑️  Clearing existing data...")
	for _, model := range []interface{}{
		&models.Comment{},
		&models.Like{},
		&models.Confession{},
		&models.Follow{},
		&models.User{},
	} {
		if err := s.db.Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clear failed: %w", err)
		}
	}
	return nil
}

// SeedSocialMesh creates users and a sparse random follow graph among them.
func (s *Seeder) SeedSocialMesh(numUsers int) ([]*models.User, error) {
	log.Printf("🌱 Creating %d users...", numUsers)

	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}

	// Each user follows roughly 10% of the others.
	edges := 0
	for _, follower := range users {
		for _, followee := range users {
			if follower.ID == followee.ID || rand.Intn(10) != 0 {
				continue
			}
			if err := s.factory.CreateFollow(follower, followee); err != nil {
				return nil, fmt.Errorf("create follow: %w", err)
			}
			edges++
		}
	}

	log.Printf("✓ %d users and %d follow edges created", len(users), edges)
	return users, nil
}

// SeedEngagement creates confessions spread across the given users, then
// sprinkles likes and comments over them. The users' denormalized confession
// counters are synced afterwards with one UPDATE per author.
func (s *Seeder) SeedEngagement(users []*models.User, numConfessions int) ([]*models.Confession, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to attribute confessions to")
	}

	log.Printf("🌱 Creating %d confessions...", numConfessions)

	counts := make(map[string]int, len(users))
	confessions := make([]*models.Confession, 0, numConfessions)
	for i := 0; i < numConfessions; i++ {
		author := users[rand.Intn(len(users))]
		confession, err := s.factory.CreateConfession(author)
		if err != nil {
			return nil, fmt.Errorf("create confession: %w", err)
		}
		confessions = append(confessions, confession)
		counts[author.ID.String()]++
	}

	for id, count := range counts {
		if err := s.db.Model(&models.User{}).
			Where("id = ?", id).
			UpdateColumn("confession_count", count).Error; err != nil {
			return nil, fmt.Errorf("sync confession count: %w", err)
		}
	}

	likes, comments := 0, 0
	for _, confession := range confessions {
		for _, user := range users {
			if rand.Intn(5) == 0 {
				if err := s.factory.CreateLike(user, confession); err != nil {
					return nil, fmt.Errorf("create like: %w", err)
				}
				likes++
			}
			if rand.Intn(12) == 0 {
				if _, err := s.factory.CreateComment(user, confession); err != nil {
					return nil, fmt.Errorf("create comment: %w", err)
				}
				comments++
			}
		}
	}

	log.Printf("✓ %d confessions, %d likes, %d comments created", len(confessions), likes, comments)
	return confessions, nil
}
