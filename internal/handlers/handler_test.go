// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"shopfront/internal/cache"
	"shopfront/internal/cart"
	"shopfront/internal/database"
	"shopfront/internal/middleware"
	"shopfront/internal/models"
	"shopfront/internal/render"
	"shopfront/internal/session"
	"shopfront/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "shopfront")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "shopfront")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test session, cart, and cache keys.
		for _, pattern := range []string{"session:*", "cart:*", "page:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB         *sql.DB
	Valkey     *redis.Client
	Renderer   *render.Renderer
	Sessions   *session.Store
	Users      *store.UserStore
	Categories *store.CategoryStore
	Items      *store.ItemStore
	Reviews    *store.ReviewStore
	Profiles   *store.ProfileStore
	Carts      *cart.Store
	PageCache  *cache.PageCache
	Shop       *Shop
	Cart       *Cart
	Auth       *Auth
	Account    *Account
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	sessions := session.NewStore(vk, false)
	users := store.NewUserStore(db)
	categories := store.NewCategoryStore(db)
	items := store.NewItemStore(db)
	reviews := store.NewReviewStore(db)
	profiles := store.NewProfileStore(db)
	carts := cart.NewStore(vk, items)
	pageCache := cache.NewPageCache(vk, 1*time.Minute)

	return &testEnv{
		DB:         db,
		Valkey:     vk,
		Renderer:   renderer,
		Sessions:   sessions,
		Users:      users,
		Categories: categories,
		Items:      items,
		Reviews:    reviews,
		Profiles:   profiles,
		Carts:      carts,
		PageCache:  pageCache,
		Shop:       NewShop(renderer, categories, items, reviews, profiles, pageCache),
		Cart:       NewCart(renderer, carts),
		Auth:       NewAuth(renderer, sessions, users, profiles),
		Account:    NewAccount(renderer, profiles, items),
	}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withChiURLParamAndSession adds both chi URL param and session to a request.
func withChiURLParamAndSession(r *http.Request, key, value string, sess *session.Data) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.SessionKey, sess)
	return r.WithContext(ctx)
}

// cleanUsers removes test users by username.
func cleanUsers(t *testing.T, db *sql.DB, usernames ...string) {
	t.Helper()
	for _, name := range usernames {
		db.Exec("DELETE FROM users WHERE username = $1", name)
	}
}

// cleanCategories removes test categories by slug; items cascade with them.
func cleanCategories(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM categories WHERE slug = $1", slug)
	}
}

// seedShopper creates a user with a profile and an authenticated session.
func seedShopper(t *testing.T, env *testEnv, username string) (*models.User, *session.Data) {
	t.Helper()

	t.Cleanup(func() { cleanUsers(t, env.DB, username) })
	user, err := env.Users.Create(username, username+"@handler-test.local", "testpass123")
	if err != nil {
		t.Fatalf("create user %q: %v", username, err)
	}
	if _, err := env.Profiles.GetOrCreate(user.ID); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	sess := &session.Data{
		ID:       "test-" + uuid.NewString(),
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
	return user, sess
}

// seedCatalogItem creates a category and an item in it for a test.
func seedCatalogItem(t *testing.T, env *testEnv, catSlug, itemName, price string) *models.Item {
	t.Helper()

	t.Cleanup(func() { cleanCategories(t, env.DB, catSlug) })
	cat, err := env.Categories.Create("Handler Cat "+catSlug, catSlug)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	p, err := decimal.NewFromString(price)
	if err != nil {
		t.Fatalf("bad price %q: %v", price, err)
	}
	item, err := env.Items.Create(&models.Item{
		Name:       itemName,
		Slug:       "test-" + uuid.NewString(),
		CategoryID: cat.ID,
		Brand:      "Acme",
		Color:      "black",
		Size:       "M",
		Price:      p,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	return item
}
