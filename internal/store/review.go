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

// ReviewStore manages item reviews in the database.
type ReviewStore struct {
	db *sql.DB
}

// NewReviewStore returns a new ReviewStore.
func NewReviewStore(db *sql.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

// Create appends a new review for an item by a user. No uniqueness is
// enforced: the same user may review the same item repeatedly.
func (s *ReviewStore) Create(itemID, userID uuid.UUID, rating int, comment string) (*models.Review, error) {
	rv := &models.Review{}
	err := s.db.QueryRow(`
		INSERT INTO reviews (item_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, item_id, user_id, rating, comment, created_at
	`, itemID, userID, rating, comment).Scan(
		&rv.ID, &rv.ItemID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return rv, nil
}

// ListByItem returns all reviews for an item, newest first, with the
// reviewer's username populated.
func (s *ReviewStore) ListByItem(itemID uuid.UUID) ([]models.Review, error) {
	rows, err := s.db.Query(`
		SELECT r.id, r.item_id, r.user_id, r.rating, r.comment, r.created_at, u.username
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.item_id = $1
		ORDER BY r.created_at DESC
	`, itemID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(
			&rv.ID, &rv.ItemID, &rv.UserID, &rv.Rating, &rv.Comment,
			&rv.CreatedAt, &rv.Username,
		); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

// CountByItem returns the number of reviews for an item.
func (s *ReviewStore) CountByItem(itemID uuid.UUID) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM reviews WHERE item_id = $1`, itemID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return n, nil
}
