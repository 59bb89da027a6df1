// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the storefront, grouped
// by concern: Shop (catalog browsing + reviews), Cart, Auth, and Account.
package handlers

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"shopfront/internal/cache"
	"shopfront/internal/markdown"
	"shopfront/internal/middleware"
	"shopfront/internal/render"
	"shopfront/internal/session"
	"shopfront/internal/store"
)

// Shop groups the catalog browsing and review handlers.
type Shop struct {
	renderer   *render.Renderer
	categories *store.CategoryStore
	items      *store.ItemStore
	reviews    *store.ReviewStore
	profiles   *store.ProfileStore
	pageCache  *cache.PageCache
}

// NewShop creates a new Shop handler group.
func NewShop(renderer *render.Renderer, categories *store.CategoryStore, items *store.ItemStore, reviews *store.ReviewStore, profiles *store.ProfileStore, pageCache *cache.PageCache) *Shop {
	return &Shop{
		renderer:   renderer,
		categories: categories,
		items:      items,
		reviews:    reviews,
		profiles:   profiles,
		pageCache:  pageCache,
	}
}

// sessionFrom returns the session loaded by the middleware, or nil for
// anonymous visitors.
func sessionFrom(r *http.Request) *session.Data {
	return middleware.SessionFromCtx(r.Context())
}

// Home renders the landing page with the category overview.
func (s *Shop) Home(w http.ResponseWriter, r *http.Request) {
	cats, err := s.categories.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	s.renderer.Page(w, r, "home", &render.PageData{
		Title: "Home",
		Data:  map[string]any{"Categories": cats},
	})
}

// List renders the filtered catalog listing. The three filters combine as
// a conjunction; absent filters impose no constraint. Rendered pages are
// cached per filter combination, but only for anonymous visitors; the
// layout embeds session state.
func (s *Shop) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	brand := r.URL.Query().Get("brand")

	sess := sessionFrom(r)
	cacheKey := cache.ShopKey(q, category, brand)

	if sess == nil {
		if cached, ok := s.pageCache.Get(ctx, cacheKey); ok {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(cached)
			return
		}
	}

	items, err := s.items.Search(q, category, brand)
	if err != nil {
		slog.Error("item search failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cats, err := s.categories.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := &render.PageData{
		Title: "Shop",
		Data: map[string]any{
			"Items":      items,
			"Categories": cats,
			"Query":      q,
			"Category":   category,
			"Brand":      brand,
		},
	}

	if sess == nil {
		html, err := s.renderer.RenderBytes(r, "shop", data)
		if err != nil {
			slog.Error("shop render failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		s.pageCache.Set(ctx, cacheKey, html)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(html)
		return
	}

	s.renderer.Page(w, r, "shop", data)
}

// ItemDetail renders an item's detail page with its reviews, and records
// the view on the shopper's profile when a session exists. Anonymous
// visits cause no writes.
func (s *Shop) ItemDetail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	item, err := s.items.FindByID(id)
	if err != nil {
		slog.Error("item lookup failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.NotFound(w, r)
		return
	}

	if sess := sessionFrom(r); sess != nil {
		profile, err := s.profiles.GetOrCreate(sess.UserID)
		if err != nil {
			slog.Error("profile get-or-create failed", "user_id", sess.UserID, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if err := s.profiles.AddViewedItem(profile.ID, item.ID); err != nil {
			slog.Error("record view failed", "item_id", item.ID, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	reviews, err := s.reviews.ListByItem(item.ID)
	if err != nil {
		slog.Error("list reviews failed", "item_id", item.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	descHTML, err := markdown.ToHTML(item.Description)
	if err != nil {
		slog.Warn("description render failed", "item_id", item.ID, "error", err)
		descHTML = template.HTMLEscapeString(item.Description)
	}

	s.renderer.Page(w, r, "item_detail", &render.PageData{
		Title: item.Name,
		Data: map[string]any{
			"Item":            item,
			"Reviews":         reviews,
			"DescriptionHTML": template.HTML(descHTML),
		},
	})
}

// SubmitReview appends a review to an item on behalf of the session user.
// An invalid submission is logged and silently redirects back to the
// detail page; no error surfaces to the shopper.
func (s *Shop) SubmitReview(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "item_id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	item, err := s.items.FindByID(id)
	if err != nil {
		slog.Error("item lookup failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.NotFound(w, r)
		return
	}

	sess := sessionFrom(r)
	detailURL := "/item/" + item.ID.String()

	rating, vErr := validateReview(r.FormValue("rating"), r.FormValue("comment"))
	if vErr != "" {
		slog.Warn("review rejected", "item_id", item.ID, "user_id", sess.UserID, "reason", vErr)
		http.Redirect(w, r, detailURL, http.StatusSeeOther)
		return
	}

	if _, err := s.reviews.Create(item.ID, sess.UserID, rating, r.FormValue("comment")); err != nil {
		slog.Error("review create failed", "item_id", item.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, detailURL, http.StatusSeeOther)
}
