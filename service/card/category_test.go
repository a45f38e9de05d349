package card_test

import (
	"testing"

	"magiccards.GO/service/card"
)

func TestCategoryService_ResolveIdempotent(t *testing.T) {
	db := cardTestDB(t)
	svc := card.NewCategoryService(db, 2)

	first := svc.Resolve("Magic: the Gathering", nil)
	if first.IsSentinel() {
		t.Fatal("Resolve returned sentinel")
	}
	second := svc.Resolve("Magic: the Gathering", nil)
	if second.EntityID != first.EntityID {
		t.Errorf("second Resolve id = %d, want %d", second.EntityID, first.EntityID)
	}
}

func TestCategoryService_ParentAndPath(t *testing.T) {
	db := cardTestDB(t)
	svc := card.NewCategoryService(db, 2)

	parent := svc.Resolve("Magic: the Gathering", nil)
	child := svc.Resolve("Wilds of Eldraine", parent)
	if child.IsSentinel() {
		t.Fatal("child Resolve returned sentinel")
	}
	if child.ParentID != parent.EntityID {
		t.Errorf("child ParentID = %d, want %d", child.ParentID, parent.EntityID)
	}
	if child.Level != parent.Level+1 {
		t.Errorf("child Level = %d, want %d", child.Level, parent.Level+1)
	}
	wantPrefix := parent.Path + "/"
	if len(child.Path) <= len(wantPrefix) || child.Path[:len(wantPrefix)] != wantPrefix {
		t.Errorf("child Path = %q, want prefix %q", child.Path, wantPrefix)
	}
}

// Same name under different parents resolves to distinct categories.
func TestCategoryService_ScopedByParent(t *testing.T) {
	db := cardTestDB(t)
	svc := card.NewCategoryService(db, 2)

	a := svc.Resolve("Promos", svc.Resolve("Magic: the Gathering", nil))
	b := svc.Resolve("Promos", svc.Resolve("Lorcana", nil))
	if a.IsSentinel() || b.IsSentinel() {
		t.Fatal("Resolve returned sentinel")
	}
	if a.EntityID == b.EntityID {
		t.Error("same-named categories under different parents collapsed into one")
	}
}

func TestCategoryService_SentinelOnMissingRoot(t *testing.T) {
	db := cardTestDB(t)
	svc := card.NewCategoryService(db, 999) // no such root

	cat := svc.Resolve("Magic: the Gathering", nil)
	if !cat.IsSentinel() {
		t.Errorf("Resolve under missing root = %+v, want sentinel", cat)
	}
}
