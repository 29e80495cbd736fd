// Package seed provides database seeding utilities for development.
package seed

import (
	"fmt"
	"log"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// DefaultPassword is the password every seeded account gets.
const DefaultPassword = "password123"

// Run populates the database with an admin, readers, posts, and comments.
// The admin account is admin@example.com; every account uses DefaultPassword.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 5
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 10
	}

	if opts.ShouldClean {
		if err := clean(db); err != nil {
			return err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	admin := &models.User{
		Email:    "admin@example.com",
		Password: string(hashed),
		Name:     "Site Admin",
		IsAdmin:  true,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	readers := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user := &models.User{
			Email:    fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Password: string(hashed),
			Name:     gofakeit.Name(),
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		readers = append(readers, user)
	}

	for i := 0; i < opts.NumPosts; i++ {
		post := &models.Post{
			Title:       fmt.Sprintf("%s #%d", gofakeit.HipsterSentence(4), i+1),
			Subtitle:    gofakeit.HipsterSentence(6),
			Body:        gofakeit.Paragraph(3, 5, 12, "\n\n"),
			ImageURL:    gofakeit.ImageURL(1200, 600),
			UserID:      admin.ID,
			PublishedAt: time.Now().AddDate(0, 0, -gofakeit.Number(0, 90)),
		}
		if err := db.Create(post).Error; err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}

		for j := 0; j < gofakeit.Number(0, 4); j++ {
			reader := readers[gofakeit.Number(0, len(readers)-1)]
			comment := &models.Comment{
				Text:   gofakeit.HipsterSentence(gofakeit.Number(5, 15)),
				UserID: reader.ID,
				PostID: post.ID,
			}
			if err := db.Create(comment).Error; err != nil {
				return fmt.Errorf("failed to create comment: %w", err)
			}
		}
	}

	log.Printf("Seeded %d users, %d posts (admin: admin@example.com / %s)",
		opts.NumUsers+1, opts.NumPosts, DefaultPassword)
	return nil
}

func clean(db *gorm.DB) error {
	for _, model := range []any{&models.Comment{}, &models.Post{}, &models.User{}} {
		if err := db.Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clean table: %w", err)
		}
	}
	return nil
}
