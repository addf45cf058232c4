package models

// RecipeFilter narrows a recipe listing. A recipe matches when it has any tag in
// TagIDs (if set) and any ingredient in IngredientIDs (if set).
type RecipeFilter struct {
	TagIDs        []int64
	IngredientIDs []int64
}

// NamedFilter narrows a tag or ingredient listing.
type NamedFilter struct {
	AssignedOnly bool
}
