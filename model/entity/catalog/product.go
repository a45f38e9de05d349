package catalog

import "time"

// Product status / visibility values matching Magento's constants.
const (
	StatusEnabled  uint8 = 1
	StatusDisabled uint8 = 2

	VisibilityNotVisible uint8 = 1
	VisibilityBoth       uint8 = 4

	TypeConfigurable = "configurable"
	TypeVirtual      = "virtual"
)

// Product represents catalog_product_entity with the attributes the
// importer works with flattened onto the row. Card-specific attributes
// live in ProductAttributeValue.
type Product struct {
	EntityID       uint      `gorm:"column:entity_id;primaryKey;autoIncrement" json:"entity_id,omitempty"`
	AttributeSetID uint16    `gorm:"column:attribute_set_id;not null;default:4" json:"attribute_set_id"`
	TypeID         string    `gorm:"column:type_id;type:varchar(32);not null;default:simple" json:"type_id"`
	SKU            string    `gorm:"column:sku;type:varchar(64);not null;uniqueIndex:idx_product_sku" json:"sku"`
	Name           string    `gorm:"column:name;type:varchar(255)" json:"name"`
	Price          float64   `gorm:"column:price;type:decimal(12,4);not null;default:0" json:"price"`
	Status         uint8     `gorm:"column:status;type:smallint unsigned;not null;default:1" json:"status"`
	Visibility     uint8     `gorm:"column:visibility;type:smallint unsigned;not null;default:4" json:"visibility"`
	URLKey         string    `gorm:"column:url_key;type:varchar(255);uniqueIndex:idx_product_url_key" json:"url_key"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Product) TableName() string {
	return "catalog_product_entity"
}

// ProductLink represents catalog_product_super_link: the association
// between a configurable parent and its simple/virtual children.
type ProductLink struct {
	LinkID    uint `gorm:"column:link_id;primaryKey;autoIncrement" json:"link_id,omitempty"`
	ProductID uint `gorm:"column:product_id;not null;uniqueIndex:idx_super_link_unq" json:"product_id"`
	ParentID  uint `gorm:"column:parent_id;not null;uniqueIndex:idx_super_link_unq" json:"parent_id"`
}

func (ProductLink) TableName() string {
	return "catalog_product_super_link"
}

// StockItem represents cataloginventory_stock_item.
type StockItem struct {
	ItemID    uint    `gorm:"column:item_id;primaryKey;autoIncrement" json:"item_id,omitempty"`
	ProductID uint    `gorm:"column:product_id;not null;uniqueIndex:idx_stock_unq" json:"product_id"`
	StockID   uint16  `gorm:"column:stock_id;not null;default:1;uniqueIndex:idx_stock_unq" json:"stock_id"`
	Qty       float64 `gorm:"column:qty;type:decimal(12,4);not null;default:0" json:"qty"`
	IsInStock uint16  `gorm:"column:is_in_stock;not null;default:0" json:"is_in_stock"`
}

func (StockItem) TableName() string {
	return "cataloginventory_stock_item"
}
