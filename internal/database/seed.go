package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/emilythestrangee/blog-platform/backend/internal/config"
	"github.com/emilythestrangee/blog-platform/backend/internal/models"
)

const (
	seedAdminUsername = "admin"
	seedAdminEmail    = "admin@example.com"
	seedPostTitle     = "Welcome to the blog!"
	seedPostContent   = "This is the first post on our blog."
)

// Seed creates an admin account and a welcome post when sample data is enabled and no users exist yet.
func Seed(ctx context.Context, db *gorm.DB, cfg *config.Config, log *logrus.Logger) error {
	if !cfg.SeedSampleData {
		return nil
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		log.Debug("Users already present, skipping sample data")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		admin := models.User{
			Email:        seedAdminEmail,
			Username:     seedAdminUsername,
			PasswordHash: string(hash),
			IsActive:     true,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		post := models.Post{
			UserID:      admin.ID,
			Title:       seedPostTitle,
			Content:     seedPostContent,
			IsPublished: true,
		}
		if err := tx.Omit("Author").Create(&post).Error; err != nil {
			return fmt.Errorf("failed to create welcome post: %w", err)
		}

		log.WithFields(logrus.Fields{
			"user_id": admin.ID,
			"post_id": post.ID,
		}).Info("🌱 Sample data created")
		return nil
	})
}
