package catalog

import (
	"errors"
	"strings"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogEntity "magiccards.GO/model/entity/catalog"
)

// ErrConflict is returned when a save violates a uniqueness constraint
// (duplicate SKU or url_key). Callers treat it as "already exists", not
// as a fatal failure.
var ErrConflict = errors.New("catalog: conflict")

type ProductRepository struct {
	db *gorm.DB
}

var (
	productRepoMu        sync.Mutex
	productRepoInstances = map[*gorm.DB]*ProductRepository{}
)

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetProductRepository returns a shared instance per DB handle.
func GetProductRepository(db *gorm.DB) *ProductRepository {
	productRepoMu.Lock()
	defer productRepoMu.Unlock()
	if r, ok := productRepoInstances[db]; ok {
		return r
	}
	r := NewProductRepository(db)
	productRepoInstances[db] = r
	return r
}

// FindBySKU looks a product up by SKU. Absence is a normal result, not
// an error: ok is false when no row exists.
func (r *ProductRepository) FindBySKU(sku string) (*catalogEntity.Product, bool, error) {
	var p catalogEntity.Product
	err := r.db.Where("sku = ?", sku).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &p, true, nil
}

// Save persists a product, creating or updating depending on EntityID.
// Uniqueness violations come back as ErrConflict.
func (r *ProductRepository) Save(p *catalogEntity.Product) error {
	if err := r.db.Save(p).Error; err != nil {
		return translateConflict(err)
	}
	return nil
}

// UpsertStock writes the stock row for a product.
func (r *ProductRepository) UpsertStock(productID uint, qty float64, inStock bool) error {
	item := catalogEntity.StockItem{
		ProductID: productID,
		StockID:   1,
		Qty:       qty,
	}
	if inStock {
		item.IsInStock = 1
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "stock_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"qty", "is_in_stock"}),
	}).Create(&item).Error
}

// ReplaceLinks points the configurable association of parentID at exactly
// the given child ids.
func (r *ProductRepository) ReplaceLinks(parentID uint, childIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", parentID).Delete(&catalogEntity.ProductLink{}).Error; err != nil {
			return err
		}
		links := make([]catalogEntity.ProductLink, 0, len(childIDs))
		for _, id := range childIDs {
			links = append(links, catalogEntity.ProductLink{ParentID: parentID, ProductID: id})
		}
		if len(links) == 0 {
			return nil
		}
		return tx.Create(&links).Error
	})
}

// LinkedChildren returns the child product ids of a configurable parent.
func (r *ProductRepository) LinkedChildren(parentID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&catalogEntity.ProductLink{}).
		Where("parent_id = ?", parentID).
		Order("product_id").
		Pluck("product_id", &ids).Error
	return ids, err
}

// AssignCategory adds a product to a category, tolerating re-assignment.
func (r *ProductRepository) AssignCategory(productID, categoryID uint) error {
	row := catalogEntity.CategoryProduct{CategoryID: categoryID, ProductID: productID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

// SetAttributeValues upserts attribute values for an entity, keyed by
// attribute id, for the given store scope.
func (r *ProductRepository) SetAttributeValues(entityID uint, storeID uint16, values map[uint16]string) error {
	if len(values) == 0 {
		return nil
	}
	rows := make([]catalogEntity.ProductAttributeValue, 0, len(values))
	for attrID, v := range values {
		rows = append(rows, catalogEntity.ProductAttributeValue{
			AttributeID: attrID,
			StoreID:     storeID,
			EntityID:    entityID,
			Value:       v,
		})
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entity_id"}, {Name: "attribute_id"}, {Name: "store_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&rows).Error
}

// AttributeValues reads back the attribute id -> value map for an entity.
func (r *ProductRepository) AttributeValues(entityID uint, storeID uint16) (map[uint16]string, error) {
	var rows []catalogEntity.ProductAttributeValue
	err := r.db.Where("entity_id = ? AND store_id = ?", entityID, storeID).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint16]string, len(rows))
	for _, row := range rows {
		out[row.AttributeID] = row.Value
	}
	return out, nil
}

// Count returns the number of product rows.
func (r *ProductRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&catalogEntity.Product{}).Count(&n).Error
	return n, err
}

// translateConflict maps driver-level uniqueness errors onto ErrConflict.
// gorm's TranslateError covers mysql and sqlite; the string checks catch
// drivers running without it.
func translateConflict(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint") || strings.Contains(msg, "Duplicate entry") {
		return ErrConflict
	}
	return err
}
