// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"shopfront/internal/models"
)

// ItemStore manages catalog items in the database.
type ItemStore struct {
	db *sql.DB
}

// NewItemStore returns a new ItemStore.
func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

const itemSelect = `
	SELECT i.id, i.name, i.slug, i.category_id, i.brand, i.color, i.size,
	       i.price, i.image_path, i.description, i.created_at,
	       c.name, c.slug
	FROM items i
	JOIN categories c ON c.id = i.category_id`

// scanItem scans a joined item row into an Item struct.
func scanItem(scanner interface{ Scan(...any) error }) (*models.Item, error) {
	var it models.Item
	err := scanner.Scan(
		&it.ID, &it.Name, &it.Slug, &it.CategoryID, &it.Brand, &it.Color,
		&it.Size, &it.Price, &it.ImagePath, &it.Description, &it.CreatedAt,
		&it.CategoryName, &it.CategorySlug,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Search returns all items matching the conjunction of the provided
// filters: case-insensitive substring match on name (q) and brand, exact
// match on category slug. Empty filters add no predicate, so Search with
// no arguments lists the whole catalog in storage order.
func (s *ItemStore) Search(q, categorySlug, brand string) ([]models.Item, error) {
	query := itemSelect
	var (
		conds []string
		args  []any
	)
	if q != "" {
		args = append(args, q)
		conds = append(conds, fmt.Sprintf("i.name ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if categorySlug != "" {
		args = append(args, categorySlug)
		conds = append(conds, fmt.Sprintf("c.slug = $%d", len(args)))
	}
	if brand != "" {
		args = append(args, brand)
		conds = append(conds, fmt.Sprintf("i.brand ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if len(conds) > 0 {
		query += "\n\tWHERE " + strings.Join(conds, " AND ")
	}
	query += "\n\tORDER BY i.created_at"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// FindByID retrieves an item by ID, including its category name and slug.
// Returns nil if not found.
func (s *ItemStore) FindByID(id uuid.UUID) (*models.Item, error) {
	row := s.db.QueryRow(itemSelect+` WHERE i.id = $1`, id)
	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find item by id: %w", err)
	}
	return it, nil
}

// Create inserts a new item and returns it with category fields populated.
func (s *ItemStore) Create(it *models.Item) (*models.Item, error) {
	var id uuid.UUID
	err := s.db.QueryRow(`
		INSERT INTO items (name, slug, category_id, brand, color, size, price, image_path, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, it.Name, it.Slug, it.CategoryID, it.Brand, it.Color, it.Size,
		it.Price, it.ImagePath, it.Description).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return s.FindByID(id)
}

// Delete removes an item by ID. Reviews and profile join rows follow via
// ON DELETE CASCADE; session cart entries referencing the item surface
// NotFound at read time.
func (s *ItemStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
