package dto

type AdjustInventoryInput struct {
	BusinessID      string
	ProductID       string
	VariantOptionID *string
	QuantityChange  float64
	MovementType    string // adjustment, sale, return; defaults to adjustment
	Reason          string
	ReferenceID     string
	ReferenceType   string
	UserID          string
}
