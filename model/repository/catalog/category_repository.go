package catalog

import (
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	catalogEntity "magiccards.GO/model/entity/catalog"
)

type CategoryRepository struct {
	db *gorm.DB
}

var (
	categoryRepoMu        sync.Mutex
	categoryRepoInstances = map[*gorm.DB]*CategoryRepository{}
)

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetCategoryRepository returns a shared instance per DB handle.
func GetCategoryRepository(db *gorm.DB) *CategoryRepository {
	categoryRepoMu.Lock()
	defer categoryRepoMu.Unlock()
	if r, ok := categoryRepoInstances[db]; ok {
		return r
	}
	r := NewCategoryRepository(db)
	categoryRepoInstances[db] = r
	return r
}

// Get loads one category by id.
func (r *CategoryRepository) Get(id uint) (*catalogEntity.Category, bool, error) {
	var c catalogEntity.Category
	err := r.db.First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &c, true, nil
}

// FindByName looks a category up by exact name. When parentID is nonzero
// the match is scoped to that parent; zero searches the whole tree.
func (r *CategoryRepository) FindByName(name string, parentID uint) (*catalogEntity.Category, bool, error) {
	q := r.db.Where("name = ?", name)
	if parentID != 0 {
		q = q.Where("parent_id = ?", parentID)
	}
	var c catalogEntity.Category
	err := q.Order("entity_id").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &c, true, nil
}

// CreateUnder persists a new category below parent. The path can only be
// completed once the id is assigned, so the row is written twice.
func (r *CategoryRepository) CreateUnder(name string, parent *catalogEntity.Category) (*catalogEntity.Category, error) {
	c := catalogEntity.Category{
		ParentID: parent.EntityID,
		Name:     name,
		Level:    parent.Level + 1,
		IsActive: 1,
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&c).Error; err != nil {
			return err
		}
		c.Path = fmt.Sprintf("%s/%d", parent.Path, c.EntityID)
		return tx.Model(&c).Update("path", c.Path).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// EnsureRoot makes sure the store root category row exists, creating a
// bare one when the store was never seeded. Used by setup and tests.
func (r *CategoryRepository) EnsureRoot(id uint, name string) (*catalogEntity.Category, error) {
	root, ok, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if ok {
		return root, nil
	}
	c := catalogEntity.Category{
		EntityID: id,
		ParentID: 1,
		Name:     name,
		Level:    1,
		IsActive: 1,
		Path:     fmt.Sprintf("1/%d", id),
	}
	if err := r.db.Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
