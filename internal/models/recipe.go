package models

import (
	"time"
)

// RecipeDB represents a recipe row in the database
type RecipeDB struct {
	ID          int64     `db:"id"`           // Primary key
	UserID      int64     `db:"user_id"`      // Owner
	Title       string    `db:"title"`        // Title, required
	Description string    `db:"description"`  // Optional long text
	TimeMinutes int       `db:"time_minutes"` // Preparation time
	Price       Price     `db:"price"`        // NUMERIC(5,2)
	Link        string    `db:"link"`         // Optional external link
	Image       string    `db:"image"`        // Storage reference, empty when not uploaded
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Recipe is a recipe row together with its association sets.
type Recipe struct {
	RecipeDB
	Tags        []NamedDB
	Ingredients []NamedDB
}

// RecipeInput carries writable recipe fields.
//
// Scalar nil pointers mean "not submitted". For Tags and Ingredients a nil
// pointer means the key was absent, while a pointer to an empty slice means the
// caller asked to detach everything.
type RecipeInput struct {
	Title       *string
	Description *string
	TimeMinutes *int
	Price       *Price
	Link        *string
	Tags        *[]NamedInput
	Ingredients *[]NamedInput
}

// Apply copies submitted scalar fields onto the row.
func (in RecipeInput) Apply(r *RecipeDB) {
	if in.Title != nil {
		r.Title = *in.Title
	}
	if in.Description != nil {
		r.Description = *in.Description
	}
	if in.TimeMinutes != nil {
		r.TimeMinutes = *in.TimeMinutes
	}
	if in.Price != nil {
		r.Price = *in.Price
	}
	if in.Link != nil {
		r.Link = *in.Link
	}
}
