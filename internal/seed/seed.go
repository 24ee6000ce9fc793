// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"resonate/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumReviews  int
	ShouldClean bool
}

// Run seeds the database with a small social mesh: users, friendships in
// both pending and accepted states, reviews with comments and reactions, and
// a few listening statuses.
func Run(db *gorm.DB, opts Options) error {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())

	if opts.NumUsers <= 0 {
		opts.NumUsers = 20
	}
	if opts.NumReviews <= 0 {
		opts.NumReviews = 40
	}

	if opts.ShouldClean {
		if err := clean(db); err != nil {
			return fmt.Errorf("cleaning tables: %w", err)
		}
	}

	users, err := seedUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}
	log.Printf("Seeded %d users", len(users))

	if err := seedFriendships(db, users); err != nil {
		return fmt.Errorf("seeding friendships: %w", err)
	}

	reviews, err := seedReviews(db, users, opts.NumReviews)
	if err != nil {
		return fmt.Errorf("seeding reviews: %w", err)
	}
	log.Printf("Seeded %d reviews", len(reviews))

	if err := seedEngagement(db, users, reviews); err != nil {
		return fmt.Errorf("seeding comments and reactions: %w", err)
	}

	if err := seedStatuses(db, users); err != nil {
		return fmt.Errorf("seeding listening statuses: %w", err)
	}

	return nil
}

func clean(db *gorm.DB) error {
	// Order matters: children before parents.
	return db.Exec(
		"TRUNCATE TABLE reactions, comments, reviews, listening_statuses, friendships, users RESTART IDENTITY CASCADE",
	).Error
}

func seedUsers(db *gorm.DB, n int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("SeedPassword12!"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		username := randomUsername(i)
		users = append(users, models.User{
			Username: username,
			Email:    username + "@seed.example",
			Password: string(hashed),
			Bio:      randomBio(),
			Avatar:   randomAvatar(),
		})
	}
	if err := db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// seedFriendships links each user to a handful of others. Roughly two thirds
// of the edges are accepted, the rest stay pending so the request queues have
// content.
func seedFriendships(db *gorm.DB, users []models.User) error {
	if len(users) < 2 {
		return nil
	}

	seen := make(map[[2]uint]bool)
	var rows []models.Friendship
	for i := range users {
		links := 2 + rand.Intn(3)
		for j := 0; j < links; j++ {
			other := rand.Intn(len(users))
			if other == i {
				continue
			}
			a, b := users[i].ID, users[other].ID
			key := [2]uint{min(a, b), max(a, b)}
			if seen[key] {
				continue
			}
			seen[key] = true

			status := models.FriendshipStatusAccepted
			if rand.Intn(3) == 0 {
				status = models.FriendshipStatusPending
			}
			rows = append(rows, models.Friendship{
				RequesterID: a,
				AddresseeID: b,
				Status:      status,
			})
		}
	}
	if len(rows) == 0 {
		return nil
	}
	return db.Create(&rows).Error
}

func seedReviews(db *gorm.DB, users []models.User, n int) ([]models.Review, error) {
	reviews := make([]models.Review, 0, n)
	for i := 0; i < n; i++ {
		track := tracks[rand.Intn(len(tracks))]
		reviews = append(reviews, models.Review{
			TrackName: track.name,
			Artist:    track.artist,
			Rating:    1 + rand.Intn(5),
			Body:      randomReviewBody(),
			UserID:    users[rand.Intn(len(users))].ID,
		})
	}
	if err := db.Create(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func seedEngagement(db *gorm.DB, users []models.User, reviews []models.Review) error {
	var comments []models.Comment
	var reactions []models.Reaction
	seenReaction := make(map[[2]uint]bool)

	for _, review := range reviews {
		for i := 0; i < rand.Intn(4); i++ {
			comments = append(comments, models.Comment{
				Content:  randomComment(),
				UserID:   users[rand.Intn(len(users))].ID,
				ReviewID: review.ID,
			})
		}
		for i := 0; i < rand.Intn(6); i++ {
			reactor := users[rand.Intn(len(users))].ID
			key := [2]uint{reactor, review.ID}
			if seenReaction[key] {
				continue
			}
			seenReaction[key] = true
			reactions = append(reactions, models.Reaction{
				UserID:   reactor,
				ReviewID: review.ID,
				Kind:     reactionKinds[rand.Intn(len(reactionKinds))],
			})
		}
	}

	if len(comments) > 0 {
		if err := db.Create(&comments).Error; err != nil {
			return err
		}
	}
	if len(reactions) > 0 {
		if err := db.Create(&reactions).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedStatuses(db *gorm.DB, users []models.User) error {
	var statuses []models.ListeningStatus
	for _, u := range users {
		if rand.Intn(2) == 0 {
			continue
		}
		track := tracks[rand.Intn(len(tracks))]
		statuses = append(statuses, models.ListeningStatus{
			UserID:    u.ID,
			TrackName: track.name,
			Artist:    track.artist,
		})
	}
	if len(statuses) == 0 {
		return nil
	}
	return db.Create(&statuses).Error
}
