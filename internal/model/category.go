package model

type Category struct {
	BaseModel
	BusinessID string  `db:"business_id" json:"business_id"`
	Name       string  `db:"name" json:"name"`
	NameAr     *string `db:"name_ar" json:"name_ar"`
	SortOrder  int     `db:"sort_order" json:"sort_order"`
}
