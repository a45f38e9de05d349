package catalog

import "time"

// Category represents catalog_category_entity with the name flattened
// onto the row. Path is "<parent path>/<entity id>" once persisted.
type Category struct {
	EntityID  uint      `gorm:"column:entity_id;primaryKey;autoIncrement" json:"entity_id,omitempty"`
	ParentID  uint      `gorm:"column:parent_id;not null;default:0;index:idx_category_parent" json:"parent_id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Path      string    `gorm:"column:path;type:varchar(255)" json:"path"`
	Level     int32     `gorm:"column:level;not null;default:0" json:"level"`
	Position  int32     `gorm:"column:position;not null;default:0" json:"position"`
	IsActive  uint8     `gorm:"column:is_active;not null;default:1" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Category) TableName() string {
	return "catalog_category_entity"
}

// IsSentinel reports whether this is the zero-value node returned when
// category resolution failed. Callers must check before using EntityID.
func (c *Category) IsSentinel() bool {
	return c == nil || c.EntityID == 0
}

// CategoryProduct represents catalog_category_product.
type CategoryProduct struct {
	CategoryID uint  `gorm:"column:category_id;primaryKey;autoIncrement:false" json:"category_id"`
	ProductID  uint  `gorm:"column:product_id;primaryKey;autoIncrement:false" json:"product_id"`
	Position   int32 `gorm:"column:position;not null;default:0" json:"position"`
}

func (CategoryProduct) TableName() string {
	return "catalog_category_product"
}
