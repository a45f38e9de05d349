package card

import (
	"fmt"

	"gorm.io/gorm"

	catalogEntity "magiccards.GO/model/entity/catalog"
	catalogRepo "magiccards.GO/model/repository/catalog"
)

// cardAttributes is the dictionary the importer writes. card_type is the
// select attribute distinguishing variant kinds.
var cardAttributes = []struct {
	code  string
	label string
}{
	{"card_set", "Card Set"},
	{"mana_cost", "Mana Cost"},
	{"color_identity", "Color Identity"},
	{"collector_number", "Collector Number"},
	{"type_line", "Type Line"},
	{"card_type", "Card Type"},
}

// InstallSchema migrates the catalog tables the importer needs. Safe to
// run repeatedly.
func InstallSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalogEntity.EavAttribute{},
		&catalogEntity.EavAttributeOption{},
		&catalogEntity.Category{},
		&catalogEntity.CategoryProduct{},
		&catalogEntity.Product{},
		&catalogEntity.ProductLink{},
		&catalogEntity.ProductAttributeValue{},
		&catalogEntity.StockItem{},
	)
}

// InstallCardAttributes seeds the card attribute dictionary and the
// variant kind options. Idempotent; re-running changes nothing.
func InstallCardAttributes(db *gorm.DB, rootCategoryID uint) error {
	attributes := catalogRepo.GetAttributeRepository(db)
	for _, a := range cardAttributes {
		if _, err := attributes.Ensure(a.code, a.label, "varchar"); err != nil {
			return fmt.Errorf("install attribute %q: %w", a.code, err)
		}
	}
	for _, kind := range VariantKinds {
		if _, err := attributes.ResolveOption("card_type", kind); err != nil {
			return fmt.Errorf("install card_type option %q: %w", kind, err)
		}
	}

	categories := catalogRepo.GetCategoryRepository(db)
	if _, err := categories.EnsureRoot(rootCategoryID, "Default Category"); err != nil {
		return fmt.Errorf("ensure root category: %w", err)
	}
	return nil
}
