package catalog_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	catalogEntity "magiccards.GO/model/entity/catalog"
	catalogRepo "magiccards.GO/model/repository/catalog"
)

func repoTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&catalogEntity.EavAttribute{},
		&catalogEntity.EavAttributeOption{},
		&catalogEntity.Category{},
		&catalogEntity.CategoryProduct{},
		&catalogEntity.Product{},
		&catalogEntity.ProductLink{},
		&catalogEntity.ProductAttributeValue{},
		&catalogEntity.StockItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestProductRepository_Singleton(t *testing.T) {
	db := repoTestDB(t)
	if catalogRepo.GetProductRepository(db) != catalogRepo.GetProductRepository(db) {
		t.Error("GetProductRepository should return same instance for same DB")
	}
}

func TestProductRepository_FindBySKU(t *testing.T) {
	db := repoTestDB(t)
	repo := catalogRepo.NewProductRepository(db)

	_, found, err := repo.FindBySKU("mtg_woe_001")
	if err != nil {
		t.Fatalf("FindBySKU: %v", err)
	}
	if found {
		t.Error("FindBySKU on empty DB reported found")
	}

	p := &catalogEntity.Product{SKU: "mtg_woe_001", TypeID: "configurable", Name: "Hopeful Vigil"}
	if err := repo.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, found, err := repo.FindBySKU("mtg_woe_001")
	if err != nil || !found {
		t.Fatalf("FindBySKU after Save: found=%v err=%v", found, err)
	}
	if got.Name != "Hopeful Vigil" {
		t.Errorf("Name = %q", got.Name)
	}
}

func TestProductRepository_SaveConflict(t *testing.T) {
	db := repoTestDB(t)
	repo := catalogRepo.NewProductRepository(db)

	if err := repo.Save(&catalogEntity.Product{SKU: "dup", URLKey: "a"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	err := repo.Save(&catalogEntity.Product{SKU: "dup", URLKey: "b"})
	if !errors.Is(err, catalogRepo.ErrConflict) {
		t.Errorf("duplicate SKU Save = %v, want ErrConflict", err)
	}
}

func TestProductRepository_UpsertStock(t *testing.T) {
	db := repoTestDB(t)
	repo := catalogRepo.NewProductRepository(db)

	if err := repo.UpsertStock(7, 100, true); err != nil {
		t.Fatalf("UpsertStock: %v", err)
	}
	if err := repo.UpsertStock(7, 50, false); err != nil {
		t.Fatalf("UpsertStock update: %v", err)
	}
	var items []catalogEntity.StockItem
	db.Where("product_id = ?", 7).Find(&items)
	if len(items) != 1 {
		t.Fatalf("stock rows = %d, want 1", len(items))
	}
	if items[0].Qty != 50 || items[0].IsInStock != 0 {
		t.Errorf("stock = qty %v in_stock %d, want 50/0", items[0].Qty, items[0].IsInStock)
	}
}

func TestProductRepository_ReplaceLinks(t *testing.T) {
	db := repoTestDB(t)
	repo := catalogRepo.NewProductRepository(db)

	if err := repo.ReplaceLinks(1, []uint{10, 11}); err != nil {
		t.Fatalf("ReplaceLinks: %v", err)
	}
	if err := repo.ReplaceLinks(1, []uint{10, 12}); err != nil {
		t.Fatalf("ReplaceLinks again: %v", err)
	}
	ids, err := repo.LinkedChildren(1)
	if err != nil {
		t.Fatalf("LinkedChildren: %v", err)
	}
	if len(ids) != 2 || ids[0] != 10 || ids[1] != 12 {
		t.Errorf("LinkedChildren = %v, want [10 12]", ids)
	}
}

func TestProductRepository_AttributeValues(t *testing.T) {
	db := repoTestDB(t)
	repo := catalogRepo.NewProductRepository(db)

	values := map[uint16]string{1: "{1}{W}", 2: "Wilds of Eldraine"}
	if err := repo.SetAttributeValues(5, 0, values); err != nil {
		t.Fatalf("SetAttributeValues: %v", err)
	}
	// Upsert path: same attribute, new value.
	if err := repo.SetAttributeValues(5, 0, map[uint16]string{1: "{2}{W}"}); err != nil {
		t.Fatalf("SetAttributeValues upsert: %v", err)
	}
	got, err := repo.AttributeValues(5, 0)
	if err != nil {
		t.Fatalf("AttributeValues: %v", err)
	}
	if got[1] != "{2}{W}" || got[2] != "Wilds of Eldraine" {
		t.Errorf("AttributeValues = %v", got)
	}
}

func TestCategoryRepository_FindByNameScoping(t *testing.T) {
	db := repoTestDB(t)
	repo := catalogRepo.NewCategoryRepository(db)

	root, err := repo.EnsureRoot(2, "Default Category")
	if err != nil {
		t.Fatalf("EnsureRoot: %v", err)
	}
	a, err := repo.CreateUnder("Promos", root)
	if err != nil {
		t.Fatalf("CreateUnder: %v", err)
	}
	other, err := repo.CreateUnder("Other", root)
	if err != nil {
		t.Fatalf("CreateUnder: %v", err)
	}
	b, err := repo.CreateUnder("Promos", other)
	if err != nil {
		t.Fatalf("CreateUnder: %v", err)
	}

	got, found, err := repo.FindByName("Promos", other.EntityID)
	if err != nil || !found {
		t.Fatalf("FindByName scoped: found=%v err=%v", found, err)
	}
	if got.EntityID != b.EntityID {
		t.Errorf("scoped FindByName = %d, want %d", got.EntityID, b.EntityID)
	}

	// Unscoped search returns the oldest match, tree-wide.
	got, found, err = repo.FindByName("Promos", 0)
	if err != nil || !found {
		t.Fatalf("FindByName unscoped: found=%v err=%v", found, err)
	}
	if got.EntityID != a.EntityID {
		t.Errorf("unscoped FindByName = %d, want %d", got.EntityID, a.EntityID)
	}
}

func TestCategoryRepository_PathAfterCreate(t *testing.T) {
	db := repoTestDB(t)
	repo := catalogRepo.NewCategoryRepository(db)

	root, _ := repo.EnsureRoot(2, "Default Category")
	c, err := repo.CreateUnder("Magic: the Gathering", root)
	if err != nil {
		t.Fatalf("CreateUnder: %v", err)
	}
	want := fmt.Sprintf("%s/%d", root.Path, c.EntityID)
	if c.Path != want {
		t.Errorf("Path = %q, want %q", c.Path, want)
	}
}

func TestAttributeRepository_ResolveOption(t *testing.T) {
	db := repoTestDB(t)
	repo := catalogRepo.NewAttributeRepository(db)

	if _, err := repo.Ensure("card_type", "Card Type", "varchar"); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	first, err := repo.ResolveOption("card_type", "foil")
	if err != nil {
		t.Fatalf("ResolveOption: %v", err)
	}
	second, err := repo.ResolveOption("card_type", "foil")
	if err != nil {
		t.Fatalf("ResolveOption again: %v", err)
	}
	if first.OptionID != second.OptionID {
		t.Errorf("ResolveOption not idempotent: %d vs %d", first.OptionID, second.OptionID)
	}

	opts, err := repo.Options("card_type")
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if len(opts) != 1 || opts[0].Label != "foil" {
		t.Errorf("Options = %+v", opts)
	}
}

func TestAttributeRepository_IDsByCodeMissing(t *testing.T) {
	db := repoTestDB(t)
	repo := catalogRepo.NewAttributeRepository(db)

	if _, err := repo.IDsByCode([]string{"mana_cost"}); err == nil {
		t.Error("IDsByCode with uninstalled attribute should error")
	}
}
