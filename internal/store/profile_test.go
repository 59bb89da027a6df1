// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"
)

func TestProfileStoreGetOrCreate(t *testing.T) {
	db := testDB(t)
	s := NewProfileStore(db)

	user := testUser(t, db, "test-profile-user")

	// No profile yet.
	p, err := s.FindByUserID(user.ID)
	if err != nil {
		t.Fatalf("FindByUserID: %v", err)
	}
	if p != nil {
		t.Fatal("expected nil before GetOrCreate")
	}

	created, err := s.GetOrCreate(user.ID)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if created.UserID != user.ID {
		t.Errorf("user_id: got %s, want %s", created.UserID, user.ID)
	}

	// Second call returns the same profile, not a new one.
	again, err := s.GetOrCreate(user.ID)
	if err != nil {
		t.Fatalf("GetOrCreate (again): %v", err)
	}
	if again.ID != created.ID {
		t.Errorf("expected same profile, got %s and %s", created.ID, again.ID)
	}
}

func TestProfileStoreViewedItemsIdempotent(t *testing.T) {
	db := testDB(t)
	s := NewProfileStore(db)

	user := testUser(t, db, "test-viewed-user")
	cat := testCategory(t, db, "Viewed Cat", "test-viewed-cat")
	item := testCatalogItem(t, db, cat.ID, "Test Viewed Item", "test-viewed-item", "Acme", "10.00")

	profile, err := s.GetOrCreate(user.ID)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	// Viewing the same item repeatedly records it once.
	for i := 0; i < 3; i++ {
		if err := s.AddViewedItem(profile.ID, item.ID); err != nil {
			t.Fatalf("AddViewedItem: %v", err)
		}
	}

	viewed, err := s.ListViewedItems(user.ID)
	if err != nil {
		t.Fatalf("ListViewedItems: %v", err)
	}
	if len(viewed) != 1 {
		t.Fatalf("expected 1 viewed item, got %d", len(viewed))
	}
	if viewed[0].ID != item.ID {
		t.Errorf("viewed item: got %s, want %s", viewed[0].ID, item.ID)
	}
}

func TestProfileStoreWishlist(t *testing.T) {
	db := testDB(t)
	s := NewProfileStore(db)

	user := testUser(t, db, "test-wishlist-user")
	cat := testCategory(t, db, "Wishlist Cat", "test-wishlist-cat")
	a := testCatalogItem(t, db, cat.ID, "Test Wish A", "test-wish-a", "Acme", "10.00")
	b := testCatalogItem(t, db, cat.ID, "Test Wish B", "test-wish-b", "Acme", "20.00")

	profile, err := s.GetOrCreate(user.ID)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	if err := s.AddWishlistItem(profile.ID, a.ID); err != nil {
		t.Fatalf("AddWishlistItem: %v", err)
	}
	if err := s.AddWishlistItem(profile.ID, b.ID); err != nil {
		t.Fatalf("AddWishlistItem: %v", err)
	}
	// Re-adding is a no-op.
	if err := s.AddWishlistItem(profile.ID, a.ID); err != nil {
		t.Fatalf("AddWishlistItem (repeat): %v", err)
	}

	list, err := s.ListWishlistItems(user.ID)
	if err != nil {
		t.Fatalf("ListWishlistItems: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 wishlist items, got %d", len(list))
	}

	// Remove one; removing again is a no-op.
	if err := s.RemoveWishlistItem(profile.ID, a.ID); err != nil {
		t.Fatalf("RemoveWishlistItem: %v", err)
	}
	if err := s.RemoveWishlistItem(profile.ID, a.ID); err != nil {
		t.Fatalf("RemoveWishlistItem (repeat): %v", err)
	}

	list, err = s.ListWishlistItems(user.ID)
	if err != nil {
		t.Fatalf("ListWishlistItems: %v", err)
	}
	if len(list) != 1 || list[0].ID != b.ID {
		t.Errorf("expected only item B left, got %d items", len(list))
	}
}
