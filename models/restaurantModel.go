package models

// Dish is a single menu entry. Once a dish has been snapshotted into an
// order item it is never mutated through the order; menu edits only touch
// the restaurant document.
type Dish struct {
	Dish_id          string   `bson:"dish_id" json:"dish_id"`
	Name             string   `bson:"name" json:"name" validate:"required,min=1,max=100"`
	Description      string   `bson:"description" json:"description"`
	Price            float64  `bson:"price" json:"price" validate:"min=0"`
	Category         string   `bson:"category" json:"category"`
	Has_spicy_option bool     `bson:"has_spicy_option" json:"has_spicy_option"`
	Rating           *float64 `bson:"rating,omitempty" json:"rating,omitempty"`
	Rating_count     *int     `bson:"rating_count,omitempty" json:"rating_count,omitempty"`
}

type Restaurant struct {
	ID           string   `bson:"_id" json:"id"`
	Name         string   `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Description  string   `bson:"description" json:"description"`
	Image        string   `bson:"image" json:"image" validate:"omitempty,url"`
	Menu         []Dish   `bson:"menu" json:"menu"`
	Category     []string `bson:"category" json:"category"`
	Phone_number *string  `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	// Advertised fee, copied onto a group order once at creation. Settlement
	// always reads the order's own delivery_fee, never this field.
	Delivery_fee float64  `bson:"delivery_fee" json:"delivery_fee" validate:"min=0"`
	Rating       *float64 `bson:"rating,omitempty" json:"rating,omitempty"`
	Rating_count *int     `bson:"rating_count,omitempty" json:"rating_count,omitempty"`
}
