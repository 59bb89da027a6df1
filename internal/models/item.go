// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a single catalog product. Items belong to exactly one category
// and are created by seed/admin data only — there is no edit surface.
type Item struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	CategoryID  uuid.UUID       `json:"category_id"`
	Brand       string          `json:"brand"`
	Color       string          `json:"color"`
	Size        string          `json:"size"`
	Price       decimal.Decimal `json:"price"` // Fixed-point, NUMERIC(10,2) in the DB
	ImagePath   string          `json:"image_path"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`

	// Virtual fields populated by store methods.
	CategoryName string `json:"category_name,omitempty"`
	CategorySlug string `json:"category_slug,omitempty"`
}
