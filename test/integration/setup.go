package integration

import (
	"context"
	"testing"
	"time"

	"reyan-luxe/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	poolConfig.MaxConns = 10

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.ApplySchema(ctx, pool); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// CleanupDB truncates all tables between test cases.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	_, err := pool.Exec(ctx, `
		TRUNCATE TABLE order_items, orders, cart_items, wishlist_items, otps, auth_tokens, users, bracelets, chains, categories
		RESTART IDENTITY CASCADE
	`)
	if err != nil {
		t.Fatalf("failed to clean database: %v", err)
	}
}

// SeedUser inserts a user with an auth token and returns the user id.
func SeedUser(t *testing.T, pool *pgxpool.Pool, email, token string) int64 {
	t.Helper()

	ctx := context.Background()

	var userID int64
	err := pool.QueryRow(ctx, `
		INSERT INTO users (username, email)
		VALUES ($1, $2)
		RETURNING id
	`, email, email).Scan(&userID)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	if _, err := pool.Exec(ctx, `
		INSERT INTO auth_tokens (token, user_id)
		VALUES ($1, $2)
	`, token, userID); err != nil {
		t.Fatalf("failed to seed auth token: %v", err)
	}

	return userID
}

// SeedCatalog inserts one category with a bracelet and a chain attached, and
// returns the bracelet and chain ids.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) (braceletID, chainID int64) {
	t.Helper()

	ctx := context.Background()

	var categoryID int64
	err := pool.QueryRow(ctx, `
		INSERT INTO categories (name, slug, group_name, position)
		VALUES ('Gold', 'gold', 'bracelets', 1)
		RETURNING id
	`).Scan(&categoryID)
	if err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	err = pool.QueryRow(ctx, `
		INSERT INTO bracelets (name, description, price, badge, category_id)
		VALUES ('Aurelia Cuff', '18k gold cuff', 499900, 'bestseller', $1)
		RETURNING id
	`, categoryID).Scan(&braceletID)
	if err != nil {
		t.Fatalf("failed to seed bracelet: %v", err)
	}

	err = pool.QueryRow(ctx, `
		INSERT INTO chains (name, description, price, category_id)
		VALUES ('Serpentine Chain', 'Rope chain', 899900, $1)
		RETURNING id
	`, categoryID).Scan(&chainID)
	if err != nil {
		t.Fatalf("failed to seed chain: %v", err)
	}

	return braceletID, chainID
}
