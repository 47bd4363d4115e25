package dto

type ProductFilters struct {
	BusinessID  string
	SearchQuery string // For name, sku, description search
}
