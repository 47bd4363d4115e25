package dto

type VariantOptionInput struct {
	Name            string  `json:"name"`
	NameAr          *string `json:"name_ar"`
	PriceAdjustment float64 `json:"price_adjustment"`
}

type VariantGroupInput struct {
	Name     string               `json:"name"`
	NameAr   *string              `json:"name_ar"`
	Required bool                 `json:"required"`
	Options  []VariantOptionInput `json:"options"`
}

type ModifierInput struct {
	Name       string  `json:"name"`
	NameAr     *string `json:"name_ar"`
	Removable  bool    `json:"removable"`
	Addable    bool    `json:"addable"`
	ExtraPrice float64 `json:"extra_price"`
}

type CreateProductInput struct {
	BusinessID    string // from the verified token, never the body
	Name          string
	NameAr        *string
	Description   *string
	CategoryID    *string
	BasePrice     float64
	ImageURL      *string
	VariantGroups []VariantGroupInput
	Modifiers     []ModifierInput
}

// UpdateProductInput is a true partial update: nil scalar fields are left
// untouched. VariantGroups / Modifiers are replace-or-preserve keyed on
// presence: nil preserves the existing collection, non-nil (including an
// empty slice) replaces it wholesale.
type UpdateProductInput struct {
	ID            string
	BusinessID    string
	Name          *string
	NameAr        *string
	Description   *string
	CategoryID    *string
	BasePrice     *float64
	ImageURL      *string
	Available     *bool
	VariantGroups *[]VariantGroupInput
	Modifiers     *[]ModifierInput
}
