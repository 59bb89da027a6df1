// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestHome_ReturnsHTML(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	env.Shop.Home(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type: got %q, want text/html", ct)
	}
}

func TestList_FiltersItems(t *testing.T) {
	env := newTestEnv(t)

	item := seedCatalogItem(t, env, "test-list-cat", "Test Listed Shirt", "19.99")

	req := httptest.NewRequest(http.MethodGet, "/shop?q=Listed+Shirt", nil)
	rec := httptest.NewRecorder()

	env.Shop.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), item.Name) {
		t.Error("expected matching item in listing")
	}

	// A conjunction nothing satisfies renders an empty listing, not an error.
	req = httptest.NewRequest(http.MethodGet, "/shop?q=Listed+Shirt&category=test-no-such-cat", nil)
	rec = httptest.NewRecorder()
	env.Shop.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if strings.Contains(rec.Body.String(), item.Name) {
		t.Error("expected item filtered out by conjunction")
	}
}

func TestList_CachesAnonymousPages(t *testing.T) {
	env := newTestEnv(t)

	item := seedCatalogItem(t, env, "test-cache-cat", "Test Cached Hat", "9.99")

	target := "/shop?category=test-cache-cat"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	env.Shop.List(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	// Delete the item; the cached page still serves the old listing.
	if err := env.Items.Delete(item.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, target, nil)
	rec = httptest.NewRecorder()
	env.Shop.List(rec, req)
	if !strings.Contains(rec.Body.String(), item.Name) {
		t.Error("expected cached page for anonymous visitor")
	}
}

func TestItemDetail_NotFound(t *testing.T) {
	env := newTestEnv(t)

	// Malformed ID.
	req := httptest.NewRequest(http.MethodGet, "/item/not-a-uuid", nil)
	req = withChiURLParam(req, "id", "not-a-uuid")
	rec := httptest.NewRecorder()
	env.Shop.ItemDetail(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("malformed id: got %d, want %d", rec.Code, http.StatusNotFound)
	}

	// Well-formed but unknown ID.
	id := uuid.NewString()
	req = httptest.NewRequest(http.MethodGet, "/item/"+id, nil)
	req = withChiURLParam(req, "id", id)
	rec = httptest.NewRecorder()
	env.Shop.ItemDetail(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestItemDetail_RecordsViewForShopper(t *testing.T) {
	env := newTestEnv(t)

	item := seedCatalogItem(t, env, "test-detail-cat", "Test Detail Boot", "49.99")
	user, sess := seedShopper(t, env, "test-detail-shopper")

	req := httptest.NewRequest(http.MethodGet, "/item/"+item.ID.String(), nil)
	req = withChiURLParamAndSession(req, "id", item.ID.String(), sess)
	rec := httptest.NewRecorder()
	env.Shop.ItemDetail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	viewed, err := env.Profiles.ListViewedItems(user.ID)
	if err != nil {
		t.Fatalf("ListViewedItems: %v", err)
	}
	if len(viewed) != 1 || viewed[0].ID != item.ID {
		t.Fatalf("expected the viewed item recorded, got %d entries", len(viewed))
	}

	// Second visit does not duplicate the entry.
	rec = httptest.NewRecorder()
	env.Shop.ItemDetail(rec, req)
	viewed, _ = env.Profiles.ListViewedItems(user.ID)
	if len(viewed) != 1 {
		t.Errorf("expected idempotent view recording, got %d entries", len(viewed))
	}
}

func TestItemDetail_AnonymousVisitWritesNothing(t *testing.T) {
	env := newTestEnv(t)

	item := seedCatalogItem(t, env, "test-anon-cat", "Test Anon Scarf", "14.00")

	req := httptest.NewRequest(http.MethodGet, "/item/"+item.ID.String(), nil)
	req = withChiURLParam(req, "id", item.ID.String())
	rec := httptest.NewRecorder()
	env.Shop.ItemDetail(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var n int
	env.DB.QueryRow("SELECT COUNT(*) FROM profile_viewed_items WHERE item_id = $1", item.ID).Scan(&n)
	if n != 0 {
		t.Errorf("expected no view rows for anonymous visit, got %d", n)
	}
}

func TestSubmitReview_Valid(t *testing.T) {
	env := newTestEnv(t)

	item := seedCatalogItem(t, env, "test-review-cat", "Test Review Vest", "29.99")
	_, sess := seedShopper(t, env, "test-review-shopper")

	form := url.Values{}
	form.Set("rating", "4")
	form.Set("comment", "Fits well.")

	req := postForm("/review/"+item.ID.String(), form)
	req = withChiURLParamAndSession(req, "item_id", item.ID.String(), sess)
	rec := httptest.NewRecorder()
	env.Shop.SubmitReview(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/item/"+item.ID.String() {
		t.Errorf("Location: got %q", loc)
	}

	n, err := env.Reviews.CountByItem(item.ID)
	if err != nil {
		t.Fatalf("CountByItem: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 review, got %d", n)
	}
}

func TestSubmitReview_InvalidIsSwallowed(t *testing.T) {
	env := newTestEnv(t)

	item := seedCatalogItem(t, env, "test-swallow-cat", "Test Swallow Cap", "8.00")
	_, sess := seedShopper(t, env, "test-swallow-shopper")

	// Out-of-range rating: the shopper still gets a redirect to the detail
	// page, only the log records the rejection.
	form := url.Values{}
	form.Set("rating", "6")
	form.Set("comment", "Too enthusiastic.")

	req := postForm("/review/"+item.ID.String(), form)
	req = withChiURLParamAndSession(req, "item_id", item.ID.String(), sess)
	rec := httptest.NewRecorder()
	env.Shop.SubmitReview(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/item/"+item.ID.String() {
		t.Errorf("Location: got %q", loc)
	}

	n, err := env.Reviews.CountByItem(item.ID)
	if err != nil {
		t.Fatalf("CountByItem: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no review stored, got %d", n)
	}
}

func TestSubmitReview_UnknownItem(t *testing.T) {
	env := newTestEnv(t)

	_, sess := seedShopper(t, env, "test-review-404-shopper")

	id := uuid.NewString()
	form := url.Values{}
	form.Set("rating", "5")
	form.Set("comment", "Ghost item.")

	req := postForm("/review/"+id, form)
	req = withChiURLParamAndSession(req, "item_id", id, sess)
	rec := httptest.NewRecorder()
	env.Shop.SubmitReview(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}
