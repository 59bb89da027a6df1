// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"shopfront/internal/models"
)

// ProfileStore manages per-user profiles and their viewed-items and
// wishlist sets. Both sets get their idempotence from composite primary
// keys plus ON CONFLICT DO NOTHING rather than any read-before-write.
type ProfileStore struct {
	db *sql.DB
}

// NewProfileStore returns a new ProfileStore.
func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// GetOrCreate returns the profile for a user, creating an empty one if it
// does not exist yet. Safe to call concurrently: the insert ignores
// conflicts on user_id and the subsequent select always finds the row.
func (s *ProfileStore) GetOrCreate(userID uuid.UUID) (*models.Profile, error) {
	_, err := s.db.Exec(`
		INSERT INTO profiles (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	p := &models.Profile{}
	err = s.db.QueryRow(`
		SELECT id, user_id, created_at FROM profiles WHERE user_id = $1
	`, userID).Scan(&p.ID, &p.UserID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// FindByUserID retrieves a profile without creating one. Returns nil if
// the user has no profile yet.
func (s *ProfileStore) FindByUserID(userID uuid.UUID) (*models.Profile, error) {
	p := &models.Profile{}
	err := s.db.QueryRow(`
		SELECT id, user_id, created_at FROM profiles WHERE user_id = $1
	`, userID).Scan(&p.ID, &p.UserID, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return p, nil
}

// AddViewedItem records that the profile's user viewed an item. Repeat
// views are no-ops.
func (s *ProfileStore) AddViewedItem(profileID, itemID uuid.UUID) error {
	_, err := s.db.Exec(`
		INSERT INTO profile_viewed_items (profile_id, item_id) VALUES ($1, $2)
		ON CONFLICT (profile_id, item_id) DO NOTHING
	`, profileID, itemID)
	if err != nil {
		return fmt.Errorf("add viewed item: %w", err)
	}
	return nil
}

// ListViewedItems returns the items a user has viewed, most recent first.
func (s *ProfileStore) ListViewedItems(userID uuid.UUID) ([]models.Item, error) {
	return s.listJoined(userID, `
		SELECT i.id, i.name, i.slug, i.category_id, i.brand, i.color, i.size,
		       i.price, i.image_path, i.description, i.created_at,
		       c.name, c.slug
		FROM profile_viewed_items v
		JOIN profiles p ON p.id = v.profile_id
		JOIN items i ON i.id = v.item_id
		JOIN categories c ON c.id = i.category_id
		WHERE p.user_id = $1
		ORDER BY v.viewed_at DESC
	`, "list viewed items")
}

// AddWishlistItem puts an item on the profile's wishlist. Idempotent.
func (s *ProfileStore) AddWishlistItem(profileID, itemID uuid.UUID) error {
	_, err := s.db.Exec(`
		INSERT INTO profile_wishlist_items (profile_id, item_id) VALUES ($1, $2)
		ON CONFLICT (profile_id, item_id) DO NOTHING
	`, profileID, itemID)
	if err != nil {
		return fmt.Errorf("add wishlist item: %w", err)
	}
	return nil
}

// RemoveWishlistItem takes an item off the wishlist. Removing an item that
// is not on the list is a no-op.
func (s *ProfileStore) RemoveWishlistItem(profileID, itemID uuid.UUID) error {
	_, err := s.db.Exec(`
		DELETE FROM profile_wishlist_items WHERE profile_id = $1 AND item_id = $2
	`, profileID, itemID)
	if err != nil {
		return fmt.Errorf("remove wishlist item: %w", err)
	}
	return nil
}

// ListWishlistItems returns the items on a user's wishlist, most recently
// added first.
func (s *ProfileStore) ListWishlistItems(userID uuid.UUID) ([]models.Item, error) {
	return s.listJoined(userID, `
		SELECT i.id, i.name, i.slug, i.category_id, i.brand, i.color, i.size,
		       i.price, i.image_path, i.description, i.created_at,
		       c.name, c.slug
		FROM profile_wishlist_items w
		JOIN profiles p ON p.id = w.profile_id
		JOIN items i ON i.id = w.item_id
		JOIN categories c ON c.id = i.category_id
		WHERE p.user_id = $1
		ORDER BY w.added_at DESC
	`, "list wishlist items")
}

// listJoined runs an item-returning query bound to a single user.
func (s *ProfileStore) listJoined(userID uuid.UUID, query, op string) ([]models.Item, error) {
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}
