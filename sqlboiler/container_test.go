//go:build integration

package sqlboiler_test

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Post is a row of the posts table.
type Post struct {
	ID          string      `boil:"id" json:"id"`
	Author      string      `boil:"author" json:"author"`
	Title       string      `boil:"title" json:"title"`
	Content     null.String `boil:"content" json:"content,omitempty"`
	PublishedAt null.Time   `boil:"published_at" json:"published_at,omitempty"`
	CreatedAt   time.Time   `boil:"created_at" json:"created_at"`
}

// Container represents a running PostgreSQL testcontainer.
type Container struct {
	Container *postgres.PostgresContainer
	DB        *sql.DB
	ConnStr   string
}

var (
	ctx       context.Context
	container *Container
)

var _ = BeforeSuite(func() {
	ctx = context.Background()
	var err error

	container, err = SetupPostgres(ctx)
	Expect(err).ToNot(HaveOccurred())

	GinkgoWriter.Printf("PostgreSQL container started: %s\n", container.ConnStr)
})

var _ = AfterSuite(func() {
	if container != nil {
		Expect(container.Terminate(ctx)).To(Succeed())
	}
})

// SetupPostgres starts a PostgreSQL container with the posts table.
func SetupPostgres(ctx context.Context) (*Container, error) {
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start PostgreSQL container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	schema := `
		CREATE TABLE posts (
			id UUID PRIMARY KEY,
			author VARCHAR(255) NOT NULL,
			title VARCHAR(500) NOT NULL,
			content TEXT,
			published_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		);
		CREATE INDEX idx_posts_created_at ON posts(created_at, id);
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Container{Container: pgContainer, DB: db, ConnStr: connStr}, nil
}

// Terminate stops and removes the PostgreSQL container.
func (c *Container) Terminate(ctx context.Context) error {
	if c.DB != nil {
		c.DB.Close()
	}
	if c.Container != nil {
		return c.Container.Terminate(ctx)
	}
	return nil
}

// SeedPosts inserts count posts alternating between two authors, with
// created_at increasing by one minute per row. Every third post is a draft.
func SeedPosts(ctx context.Context, db *sql.DB, count int) error {
	base := time.Now().Add(-time.Duration(count) * time.Minute).UTC().Truncate(time.Second)

	for i := 0; i < count; i++ {
		author := "ada"
		if i%2 == 1 {
			author = "grace"
		}

		createdAt := base.Add(time.Duration(i) * time.Minute)
		publishedAt := null.TimeFrom(createdAt.Add(time.Hour))
		if i%3 == 0 {
			publishedAt = null.Time{}
		}

		_, err := db.ExecContext(ctx,
			`INSERT INTO posts (id, author, title, content, published_at, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New().String(),
			author,
			fmt.Sprintf("Title - %d", i),
			null.StringFrom(fmt.Sprintf("Content %d", i)),
			publishedAt,
			createdAt,
		)
		if err != nil {
			return fmt.Errorf("failed to seed post %d: %w", i, err)
		}
	}
	return nil
}

// CleanupTables truncates all test tables.
func CleanupTables(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, "TRUNCATE TABLE posts"); err != nil {
		return fmt.Errorf("failed to truncate table posts: %w", err)
	}
	return nil
}
