// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cart implements the per-session shopping cart. The cart is an
// ephemeral JSON mapping from item ID to quantity, stored whole in Valkey
// under the session ID. Every mutation is a read-modify-write of the full
// mapping, so concurrent requests on the same session are last-write-wins.
// Quantities are always >= 1: setting a quantity to zero or below removes
// the entry instead of storing a zero.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"shopfront/internal/models"
)

const (
	// keyPrefix namespaces cart keys in Valkey.
	keyPrefix = "cart:"

	// DefaultTTL matches the session TTL so a cart never outlives the
	// session that owns it.
	DefaultTTL = 24 * time.Hour
)

// ErrItemNotFound is returned when a cart operation references an item ID
// that does not resolve to a catalog item.
var ErrItemNotFound = errors.New("item not found")

// Catalog resolves item IDs against the catalog. *store.ItemStore
// satisfies it.
type Catalog interface {
	FindByID(id uuid.UUID) (*models.Item, error)
}

// Line is one resolved cart entry: the catalog item, its quantity, and
// the exact line total (price x quantity).
type Line struct {
	Item     models.Item
	Quantity int
	Total    decimal.Decimal
}

// Summary is the rendered view of a cart: all lines plus the grand total.
type Summary struct {
	Lines []Line
	Total decimal.Decimal
}

// Count returns the total number of units across all lines.
func (s *Summary) Count() int {
	n := 0
	for _, l := range s.Lines {
		n += l.Quantity
	}
	return n
}

// Store manages cart mappings in Valkey, keyed by session ID.
type Store struct {
	client *redis.Client
	items  Catalog
	ttl    time.Duration
}

// NewStore creates a cart store backed by the given Valkey client and
// catalog resolver.
func NewStore(client *redis.Client, items Catalog) *Store {
	return &Store{client: client, items: items, ttl: DefaultTTL}
}

// Add increments the quantity for an item by one, inserting the entry at
// quantity 1 if absent. Returns ErrItemNotFound if the ID does not
// resolve to a catalog item.
func (s *Store) Add(ctx context.Context, sessionID string, itemID uuid.UUID) error {
	it, err := s.items.FindByID(itemID)
	if err != nil {
		return fmt.Errorf("cart add: %w", err)
	}
	if it == nil {
		return ErrItemNotFound
	}

	m, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	m[itemID.String()]++
	return s.save(ctx, sessionID, m)
}

// SetQuantities applies a batch of quantity_{id} form fields to the cart.
// A positive quantity sets the entry, zero or negative removes it, and a
// malformed (non-numeric) value skips that single pair while the rest of
// the batch still applies. There is no atomicity across the batch.
func (s *Store) SetQuantities(ctx context.Context, sessionID string, form url.Values) error {
	m, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	applyQuantityFields(m, form)
	return s.save(ctx, sessionID, m)
}

// Remove deletes an item's entry from the cart. Removing an absent item
// is a no-op, not an error.
func (s *Store) Remove(ctx context.Context, sessionID string, itemID uuid.UUID) error {
	m, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	delete(m, itemID.String())
	return s.save(ctx, sessionID, m)
}

// View resolves every cart entry against the catalog and computes line
// totals and the grand total in fixed-point decimal arithmetic. Lines are
// ordered by item ID so repeated renders are stable. A cart entry whose
// item no longer exists aborts the whole view with ErrItemNotFound.
func (s *Store) View(ctx context.Context, sessionID string) (*Summary, error) {
	m, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	summary := &Summary{Total: decimal.Zero}
	for _, id := range ids {
		itemID, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("cart view: bad item id %q: %w", id, ErrItemNotFound)
		}
		it, err := s.items.FindByID(itemID)
		if err != nil {
			return nil, fmt.Errorf("cart view: %w", err)
		}
		if it == nil {
			return nil, fmt.Errorf("cart view: item %s: %w", id, ErrItemNotFound)
		}

		qty := m[id]
		lineTotal := it.Price.Mul(decimal.NewFromInt(int64(qty)))
		summary.Lines = append(summary.Lines, Line{
			Item:     *it,
			Quantity: qty,
			Total:    lineTotal,
		})
		summary.Total = summary.Total.Add(lineTotal)
	}

	return summary, nil
}

// applyQuantityFields mutates the mapping in place from quantity_{id}
// form fields.
func applyQuantityFields(m map[string]int, form url.Values) {
	for field, values := range form {
		id, ok := strings.CutPrefix(field, "quantity_")
		if !ok || id == "" || len(values) == 0 {
			continue
		}
		qty, err := strconv.Atoi(strings.TrimSpace(values[0]))
		if err != nil {
			continue // malformed value: skip this pair, keep the rest
		}
		if qty > 0 {
			m[id] = qty
		} else {
			delete(m, id)
		}
	}
}

// load reads the cart mapping for a session. A missing key yields an
// empty mapping.
func (s *Store) load(ctx context.Context, sessionID string) (map[string]int, error) {
	payload, err := s.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return map[string]int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart load: %w", err)
	}

	var m map[string]int
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, fmt.Errorf("cart unmarshal: %w", err)
	}
	if m == nil {
		m = map[string]int{}
	}
	return m, nil
}

// save writes the whole mapping back, refreshing the TTL.
func (s *Store) save(ctx context.Context, sessionID string, m map[string]int) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("cart marshal: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+sessionID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("cart save: %w", err)
	}
	return nil
}
