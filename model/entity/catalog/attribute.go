package catalog

// EavAttribute represents eav_attribute rows for the product entity type.
type EavAttribute struct {
	AttributeID   uint16 `gorm:"column:attribute_id;primaryKey;autoIncrement" json:"attribute_id,omitempty"`
	EntityTypeID  uint16 `gorm:"column:entity_type_id;not null;default:4" json:"entity_type_id"`
	AttributeCode string `gorm:"column:attribute_code;type:varchar(255);not null;uniqueIndex:idx_eav_attribute_code" json:"attribute_code"`
	BackendType   string `gorm:"column:backend_type;type:varchar(8);not null;default:varchar" json:"backend_type"`
	FrontendLabel string `gorm:"column:frontend_label;type:varchar(255)" json:"frontend_label"`
}

func (EavAttribute) TableName() string {
	return "eav_attribute"
}

// EavAttributeOption is a select option under an attribute
// (eav_attribute_option with its admin-store value flattened in).
type EavAttributeOption struct {
	OptionID    uint   `gorm:"column:option_id;primaryKey;autoIncrement" json:"option_id,omitempty"`
	AttributeID uint16 `gorm:"column:attribute_id;not null;uniqueIndex:idx_eav_option_unq" json:"attribute_id"`
	Label       string `gorm:"column:label;type:varchar(255);not null;uniqueIndex:idx_eav_option_unq" json:"label"`
	SortOrder   int32  `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
}

func (EavAttributeOption) TableName() string {
	return "eav_attribute_option"
}

// ProductAttributeValue represents catalog_product_entity_varchar, the
// backing store for the card attributes (card_set, mana_cost, ...).
type ProductAttributeValue struct {
	ValueID     uint   `gorm:"column:value_id;primaryKey;autoIncrement" json:"value_id,omitempty"`
	AttributeID uint16 `gorm:"column:attribute_id;not null;uniqueIndex:idx_product_value_unq" json:"attribute_id"`
	StoreID     uint16 `gorm:"column:store_id;not null;default:0;uniqueIndex:idx_product_value_unq" json:"store_id"`
	EntityID    uint   `gorm:"column:entity_id;not null;uniqueIndex:idx_product_value_unq" json:"entity_id"`
	Value       string `gorm:"column:value;type:varchar(255)" json:"value"`
}

func (ProductAttributeValue) TableName() string {
	return "catalog_product_entity_varchar"
}
