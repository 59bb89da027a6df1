// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"shopfront/internal/render"
	"shopfront/internal/store"
)

// Account groups the dashboard and wishlist handlers. All routes require
// an authenticated session.
type Account struct {
	renderer *render.Renderer
	profiles *store.ProfileStore
	items    *store.ItemStore
}

// NewAccount creates a new Account handler group.
func NewAccount(renderer *render.Renderer, profiles *store.ProfileStore, items *store.ItemStore) *Account {
	return &Account{renderer: renderer, profiles: profiles, items: items}
}

// Dashboard lists the shopper's recently viewed items and wishlist.
func (a *Account) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	// Ensure the profile exists; accounts registered before profiles were
	// created eagerly may not have one yet.
	if _, err := a.profiles.GetOrCreate(sess.UserID); err != nil {
		slog.Error("profile get-or-create failed", "user_id", sess.UserID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	viewed, err := a.profiles.ListViewedItems(sess.UserID)
	if err != nil {
		slog.Error("list viewed items failed", "user_id", sess.UserID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	wishlist, err := a.profiles.ListWishlistItems(sess.UserID)
	if err != nil {
		slog.Error("list wishlist failed", "user_id", sess.UserID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.Page(w, r, "dashboard", &render.PageData{
		Title: "Dashboard",
		Data: map[string]any{
			"Viewed":   viewed,
			"Wishlist": wishlist,
		},
	})
}

// WishlistAdd puts an item on the shopper's wishlist and returns to the
// item page. Adding an item that is already listed is a no-op.
func (a *Account) WishlistAdd(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "item_id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	item, err := a.items.FindByID(itemID)
	if err != nil {
		slog.Error("item lookup failed", "id", itemID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.NotFound(w, r)
		return
	}

	sess := sessionFrom(r)
	profile, err := a.profiles.GetOrCreate(sess.UserID)
	if err != nil {
		slog.Error("profile get-or-create failed", "user_id", sess.UserID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := a.profiles.AddWishlistItem(profile.ID, item.ID); err != nil {
		slog.Error("wishlist add failed", "item_id", item.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/item/"+item.ID.String(), http.StatusSeeOther)
}

// WishlistRemove takes an item off the wishlist and returns to the
// dashboard.
func (a *Account) WishlistRemove(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "item_id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	sess := sessionFrom(r)
	profile, err := a.profiles.GetOrCreate(sess.UserID)
	if err != nil {
		slog.Error("profile get-or-create failed", "user_id", sess.UserID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := a.profiles.RemoveWishlistItem(profile.ID, itemID); err != nil {
		slog.Error("wishlist remove failed", "item_id", itemID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
