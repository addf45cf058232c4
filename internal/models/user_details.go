package models

// UserDetailsDB is the one-to-one profile row of a user.
type UserDetailsDB struct {
	ID           int64  `json:"id" db:"id"`
	UserID       int64  `json:"-" db:"user_id"`
	Age          int    `json:"age" db:"age"`
	Country      string `json:"country" db:"country"`
	City         string `json:"city" db:"city"`
	FavoriteFood string `json:"favorite_food" db:"favorite_food"`
}

// UserDetailsInput carries submitted details fields. On upsert missing fields
// fall back to zero values; on patch they are left untouched.
type UserDetailsInput struct {
	Age          *int
	Country      *string
	City         *string
	FavoriteFood *string
}

// Apply copies submitted fields onto the row.
func (in UserDetailsInput) Apply(d *UserDetailsDB) {
	if in.Age != nil {
		d.Age = *in.Age
	}
	if in.Country != nil {
		d.Country = *in.Country
	}
	if in.City != nil {
		d.City = *in.City
	}
	if in.FavoriteFood != nil {
		d.FavoriteFood = *in.FavoriteFood
	}
}
