// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"shopfront/internal/cart"
	"shopfront/internal/render"
)

// Cart groups the session-cart handlers. All routes require an
// authenticated session; the router enforces that.
type Cart struct {
	renderer *render.Renderer
	carts    *cart.Store
}

// NewCart creates a new Cart handler group.
func NewCart(renderer *render.Renderer, carts *cart.Store) *Cart {
	return &Cart{renderer: renderer, carts: carts}
}

// View renders the cart with per-line and grand totals. A cart entry
// whose item was removed from the catalog aborts the whole view with a
// 404, unlike Update which tolerates bad entries pair by pair.
func (c *Cart) View(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	summary, err := c.carts.View(r.Context(), sess.ID)
	if err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.Error("cart view failed", "user_id", sess.UserID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	c.renderer.Page(w, r, "cart", &render.PageData{
		Title: "Cart",
		Data:  map[string]any{"Summary": summary},
	})
}

// Add increments the quantity of an item by one and redirects to the cart.
func (c *Cart) Add(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "item_id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	sess := sessionFrom(r)
	if err := c.carts.Add(r.Context(), sess.ID, itemID); err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.Error("cart add failed", "item_id", itemID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Update applies a batch of quantity_{id} form fields. Malformed values
// skip only their own pair; zero or negative quantities remove the line.
func (c *Cart) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	sess := sessionFrom(r)
	if err := c.carts.SetQuantities(r.Context(), sess.ID, r.PostForm); err != nil {
		slog.Error("cart update failed", "user_id", sess.UserID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Remove deletes a cart line. Removing an item that is not in the cart
// is a no-op.
func (c *Cart) Remove(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "item_id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	sess := sessionFrom(r)
	if err := c.carts.Remove(r.Context(), sess.ID, itemID); err != nil {
		slog.Error("cart remove failed", "item_id", itemID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
