package model

const (
	ProductStatusActive  = "active"
	ProductStatusDeleted = "deleted"
)

type Product struct {
	BaseModel
	BusinessID    string         `db:"business_id" json:"business_id"`
	CategoryID    *string        `db:"category_id" json:"category_id"` // Nullable
	SKU           string         `db:"sku" json:"sku"`
	Name          string         `db:"name" json:"name"`
	NameAr        *string        `db:"name_ar" json:"name_ar"`
	Description   *string        `db:"description" json:"description"`
	BasePrice     float64        `db:"base_price" json:"base_price"`
	ImageURL      *string        `db:"image_url" json:"image_url"`
	Available     bool           `db:"available" json:"available"`
	Status        string         `db:"status" json:"status"` // active | deleted
	VariantGroups []VariantGroup `db:"-" json:"variant_groups"`
	Modifiers     []Modifier     `db:"-" json:"modifiers"`
	CategoryName  *string        `db:"-" json:"category_name,omitempty"` // Joined data
}

type VariantGroup struct {
	BaseModel
	ProductID string          `db:"product_id" json:"product_id"`
	Name      string          `db:"name" json:"name"`
	NameAr    *string         `db:"name_ar" json:"name_ar"`
	Required  bool            `db:"required" json:"required"`
	SortOrder int             `db:"sort_order" json:"sort_order"`
	Options   []VariantOption `db:"-" json:"options"`
}

type VariantOption struct {
	BaseModel
	GroupID         string  `db:"group_id" json:"group_id"`
	Name            string  `db:"name" json:"name"`
	NameAr          *string `db:"name_ar" json:"name_ar"`
	PriceAdjustment float64 `db:"price_adjustment" json:"price_adjustment"`
	SortOrder       int     `db:"sort_order" json:"sort_order"`
}

type Modifier struct {
	BaseModel
	ProductID  string  `db:"product_id" json:"product_id"`
	Name       string  `db:"name" json:"name"`
	NameAr     *string `db:"name_ar" json:"name_ar"`
	Removable  bool    `db:"removable" json:"removable"`
	Addable    bool    `db:"addable" json:"addable"`
	ExtraPrice float64 `db:"extra_price" json:"extra_price"`
	SortOrder  int     `db:"sort_order" json:"sort_order"`
}
