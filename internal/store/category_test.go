// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"
)

func TestCategoryStoreList(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	cat := testCategory(t, db, "List Cat", "test-list-cat")
	testCatalogItem(t, db, cat.ID, "Test List Item A", "test-list-item-a", "Acme", "1.00")
	testCatalogItem(t, db, cat.ID, "Test List Item B", "test-list-item-b", "Acme", "2.00")

	cats, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	var found bool
	for _, c := range cats {
		if c.Slug == "test-list-cat" {
			found = true
			if c.ItemCount != 2 {
				t.Errorf("item count: got %d, want 2", c.ItemCount)
			}
		}
	}
	if !found {
		t.Error("expected test category in list")
	}
}

func TestCategoryStoreFindBySlug(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	// Not found.
	c, err := s.FindBySlug("test-no-such-slug")
	if err != nil {
		t.Fatalf("FindBySlug (not found): %v", err)
	}
	if c != nil {
		t.Error("expected nil for unknown slug")
	}

	created := testCategory(t, db, "Slug Cat", "test-slug-cat")
	c, err = s.FindBySlug("test-slug-cat")
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if c == nil {
		t.Fatal("expected category, got nil")
	}
	if c.ID != created.ID {
		t.Errorf("ID mismatch: got %s, want %s", c.ID, created.ID)
	}
}

func TestCategoryStoreDeleteCascadesItems(t *testing.T) {
	db := testDB(t)
	cats := NewCategoryStore(db)
	items := NewItemStore(db)

	cat := testCategory(t, db, "Cascade Cat", "test-cascade-cat")
	it := testCatalogItem(t, db, cat.ID, "Test Cascade Victim", "test-cascade-victim", "Acme", "3.00")

	if err := cats.Delete(cat.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	found, err := items.FindByID(it.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Error("expected item to cascade with its category")
	}
}
