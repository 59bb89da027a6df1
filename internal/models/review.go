// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds for reviews. The database enforces the same range with a
// CHECK constraint and defaults to MaxRating.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a rating plus free-text comment left by a user on an item.
// There is no uniqueness constraint: a user may review the same item any
// number of times. Reviews disappear only via cascade when the item or the
// user is deleted.
type Review struct {
	ID        uuid.UUID `json:"id"`
	ItemID    uuid.UUID `json:"item_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`

	// Virtual field populated by store methods.
	Username string `json:"username,omitempty"`
}
