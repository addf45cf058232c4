package models

// Recipe event operations.
const (
	RecipeCreated       = "recipe.created"
	RecipeUpdated       = "recipe.updated"
	RecipeDeleted       = "recipe.deleted"
	RecipeImageUploaded = "recipe.image_uploaded"
)

// RecipeEvent is published after a recipe write has been committed.
type RecipeEvent struct {
	EventID   string `json:"event_id"`  // EventID is a unique identifier for the event.
	Timestamp int64  `json:"timestamp"` // Timestamp is the Unix time (seconds) of the write.
	UserID    int64  `json:"user_id"`   // UserID is the owner of the recipe.
	RecipeID  int64  `json:"recipe_id"` // RecipeID is the affected recipe.
	Operation string `json:"operation"` // Operation is one of the Recipe* constants.
}
