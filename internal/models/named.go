package models

// NamedDB is a tag or an ingredient: a free-text name owned by a user.
type NamedDB struct {
	ID     int64  `json:"id" db:"id"`
	UserID int64  `json:"-" db:"user_id"`
	Name   string `json:"name" db:"name"`
}

// TagDB is a recipe tag.
type TagDB = NamedDB

// IngredientDB is a recipe ingredient.
type IngredientDB = NamedDB

// NamedInput is a submitted tag or ingredient payload.
type NamedInput struct {
	Name string
}

// NamedKind selects tags or ingredients.
type NamedKind string

const (
	KindTag        NamedKind = "tags"
	KindIngredient NamedKind = "ingredients"
)
