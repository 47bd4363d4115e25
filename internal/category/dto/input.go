package dto

type CreateCategoryInput struct {
	BusinessID string
	Name       string
	NameAr     *string
	SortOrder  int
}

// UpdateCategoryInput is a partial update: nil fields are left untouched.
type UpdateCategoryInput struct {
	ID         string
	BusinessID string
	Name       *string
	NameAr     *string
	SortOrder  *int
}
