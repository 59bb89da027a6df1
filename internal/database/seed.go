package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/gosimple/slug"
)

// seedItem describes one catalog row inserted by Seed.
type seedItem struct {
	name        string
	category    string
	brand       string
	color       string
	size        string
	price       string
	description string
}

var seedCategories = []string{"Shirts", "Shoes", "Accessories"}

var seedItems = []seedItem{
	{"Oxford Shirt", "Shirts", "Marlowe", "white", "M", "39.99", "A crisp cotton oxford for every day.\n\n- Button-down collar\n- Machine washable"},
	{"Linen Shirt", "Shirts", "Marlowe", "sand", "L", "49.50", "Lightweight linen, cut loose for warm weather."},
	{"Trail Runner", "Shoes", "Northbound", "grey", "42", "89.00", "Cushioned trail shoe with a grippy outsole."},
	{"Canvas Sneaker", "Shoes", "Harbor", "navy", "43", "54.95", "A low-top classic in heavy canvas."},
	{"Wool Beanie", "Accessories", "Northbound", "charcoal", "OS", "19.99", "Ribbed merino beanie, one size."},
	{"Leather Belt", "Accessories", "Harbor", "brown", "90", "34.00", "Full-grain leather with a brushed buckle."},
}

// Seed populates the database with initial development data: a demo user
// and a small catalog. It is a no-op if any users already exist.
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Demo shopper. bcrypt hash of "demo" generated once; hashing at seed
	// time would slow every dev boot for no benefit.
	_, err := db.Exec(`
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
	`, "demo", "demo@shopfront.local",
		"$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")
	if err != nil {
		return fmt.Errorf("seed insert demo user: %w", err)
	}

	if _, err := db.Exec(`
		INSERT INTO profiles (user_id)
		SELECT id FROM users WHERE username = 'demo'
	`); err != nil {
		return fmt.Errorf("seed insert demo profile: %w", err)
	}

	for _, name := range seedCategories {
		if _, err := db.Exec(`
			INSERT INTO categories (name, slug) VALUES ($1, $2)
			ON CONFLICT (slug) DO NOTHING
		`, name, slug.Make(name)); err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}

	for _, it := range seedItems {
		if _, err := db.Exec(`
			INSERT INTO items (name, slug, category_id, brand, color, size, price, image_path, description)
			SELECT $1, $2, c.id, $3, $4, $5, $6::numeric, $7, $8
			FROM categories c WHERE c.slug = $9
		`, it.name, slug.Make(it.name), it.brand, it.color, it.size, it.price,
			"/static/items/"+slug.Make(it.name)+".jpg", it.description,
			slug.Make(it.category)); err != nil {
			return fmt.Errorf("seed item %q: %w", it.name, err)
		}
	}

	slog.Info("database seeded with demo catalog",
		"categories", len(seedCategories),
		"items", len(seedItems),
		"user", "demo",
	)

	return nil
}
