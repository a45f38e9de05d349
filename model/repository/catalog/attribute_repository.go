package catalog

import (
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	catalogEntity "magiccards.GO/model/entity/catalog"
)

type AttributeRepository struct {
	db *gorm.DB
}

var (
	attributeRepoMu        sync.Mutex
	attributeRepoInstances = map[*gorm.DB]*AttributeRepository{}
)

func NewAttributeRepository(db *gorm.DB) *AttributeRepository {
	return &AttributeRepository{db: db}
}

// GetAttributeRepository returns a shared instance per DB handle.
func GetAttributeRepository(db *gorm.DB) *AttributeRepository {
	attributeRepoMu.Lock()
	defer attributeRepoMu.Unlock()
	if r, ok := attributeRepoInstances[db]; ok {
		return r
	}
	r := NewAttributeRepository(db)
	attributeRepoInstances[db] = r
	return r
}

// ByCode looks an attribute up by code.
func (r *AttributeRepository) ByCode(code string) (*catalogEntity.EavAttribute, bool, error) {
	var a catalogEntity.EavAttribute
	err := r.db.Where("attribute_code = ?", code).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &a, true, nil
}

// IDsByCode resolves a batch of attribute codes to their ids. Missing
// codes are an error: the dictionary must be installed before importing.
func (r *AttributeRepository) IDsByCode(codes []string) (map[string]uint16, error) {
	var attrs []catalogEntity.EavAttribute
	if err := r.db.Where("attribute_code IN ?", codes).Find(&attrs).Error; err != nil {
		return nil, err
	}
	out := make(map[string]uint16, len(attrs))
	for _, a := range attrs {
		out[a.AttributeCode] = a.AttributeID
	}
	for _, code := range codes {
		if _, ok := out[code]; !ok {
			return nil, fmt.Errorf("attribute %q not installed (run magic:setup)", code)
		}
	}
	return out, nil
}

// Options lists the select options of an attribute, in sort order.
func (r *AttributeRepository) Options(code string) ([]catalogEntity.EavAttributeOption, error) {
	attr, ok, err := r.ByCode(code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("attribute %q not installed", code)
	}
	var opts []catalogEntity.EavAttributeOption
	err = r.db.Where("attribute_id = ?", attr.AttributeID).
		Order("sort_order, option_id").Find(&opts).Error
	return opts, err
}

// ResolveOption finds or creates the option with the given label under an
// attribute. Idempotent.
func (r *AttributeRepository) ResolveOption(code, label string) (*catalogEntity.EavAttributeOption, error) {
	attr, ok, err := r.ByCode(code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("attribute %q not installed", code)
	}
	opt := catalogEntity.EavAttributeOption{AttributeID: attr.AttributeID, Label: label}
	err = r.db.Where("attribute_id = ? AND label = ?", attr.AttributeID, label).
		FirstOrCreate(&opt).Error
	if err != nil {
		return nil, err
	}
	return &opt, nil
}

// Ensure installs an attribute row if it does not exist yet.
func (r *AttributeRepository) Ensure(code, label, backendType string) (*catalogEntity.EavAttribute, error) {
	a := catalogEntity.EavAttribute{
		EntityTypeID:  4,
		AttributeCode: code,
		BackendType:   backendType,
		FrontendLabel: label,
	}
	err := r.db.Where("attribute_code = ?", code).FirstOrCreate(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}
