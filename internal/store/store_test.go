// store_test.go provides shared test database helpers for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"

	"shopfront/internal/database"
	"shopfront/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "shopfront")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "shopfront")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanUsers removes test users by username. Call in t.Cleanup().
func cleanUsers(t *testing.T, db *sql.DB, usernames ...string) {
	t.Helper()
	for _, name := range usernames {
		db.Exec("DELETE FROM users WHERE username = $1", name)
	}
}

// cleanCategories removes test categories by slug; their items cascade.
// Call in t.Cleanup().
func cleanCategories(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM categories WHERE slug = $1", slug)
	}
}

// testCategory creates a category for a test, registering cleanup.
func testCategory(t *testing.T, db *sql.DB, name, slug string) *models.Category {
	t.Helper()
	cats := NewCategoryStore(db)
	t.Cleanup(func() { cleanCategories(t, db, slug) })
	c, err := cats.Create(name, slug)
	if err != nil {
		t.Fatalf("create category %q: %v", slug, err)
	}
	return c
}

// testCatalogItem creates an item in the given category for a test.
func testCatalogItem(t *testing.T, db *sql.DB, categoryID uuid.UUID, name, slug, brand, price string) *models.Item {
	t.Helper()
	items := NewItemStore(db)
	p, err := decimal.NewFromString(price)
	if err != nil {
		t.Fatalf("bad price %q: %v", price, err)
	}
	it, err := items.Create(&models.Item{
		Name:       name,
		Slug:       slug,
		CategoryID: categoryID,
		Brand:      brand,
		Color:      "black",
		Size:       "M",
		Price:      p,
	})
	if err != nil {
		t.Fatalf("create item %q: %v", slug, err)
	}
	return it
}

// testUser creates a user for a test, registering cleanup.
func testUser(t *testing.T, db *sql.DB, username string) *models.User {
	t.Helper()
	users := NewUserStore(db)
	t.Cleanup(func() { cleanUsers(t, db, username) })
	u, err := users.Create(username, username+"@store-test.local", "testpass123")
	if err != nil {
		t.Fatalf("create user %q: %v", username, err)
	}
	return u
}
