// Package dbtest starts a throwaway PostgreSQL for integration tests.
package dbtest

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/emilythestrangee/blog-platform/backend/internal/database"
)

const image = "postgres:16-alpine"

// Tables in truncation order. CASCADE takes care of the association tables too.
var tables = []string{
	"post_reactions",
	"user_subscriptions",
	"bookmarks",
	"post_tags",
	"comments",
	"tags",
	"posts",
	"users",
}

type Container struct {
	DB        *gorm.DB
	container *postgres.PostgresContainer
}

// Start runs a postgres container and migrates the schema into it. It returns an error
// instead of panicking when no container runtime is reachable.
func Start(ctx context.Context) (c *Container, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("container runtime unavailable: %v", r)
		}
	}()

	pg, err := postgres.Run(ctx, image,
		postgres.WithDatabase("blog_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = testcontainers.TerminateContainer(pg)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := database.Open(dsn, log)
	if err != nil {
		_ = testcontainers.TerminateContainer(pg)
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = testcontainers.TerminateContainer(pg)
		return nil, err
	}

	return &Container{DB: db, container: pg}, nil
}

// Reset empties every table and restarts id sequences.
func (c *Container) Reset(t *testing.T) {
	t.Helper()
	for _, table := range tables {
		if err := c.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}

func (c *Container) Terminate() {
	if sqlDB, err := c.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = testcontainers.TerminateContainer(c.container)
}
