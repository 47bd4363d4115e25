package dto

type InventoryFilters struct {
	BusinessID string
	ProductID  string
	LowStock   bool // available stock at or below reorder_point
}

type MovementFilters struct {
	BusinessID   string
	ProductID    string
	MovementType string
}
