package models

// Dessert is a single row of the desserts table.
type Dessert struct {
	ID          string  `json:"id"`
	Name        string  `json:"dessert_name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}
