package models

import "time"

const (
	StatusActive    = "active"
	StatusFinalized = "finalized"
	StatusCancelled = "cancelled"
)

const (
	PreferenceSpicy   = "spicy"
	PreferenceRegular = "regular"
)

// OrderItem holds a snapshot of the dish at the time it was added, so a
// later menu edit never reprices an existing order.
type OrderItem struct {
	Dish       Dish    `bson:"dish" json:"dish"`
	Quantity   int     `bson:"quantity" json:"quantity" validate:"min=1"`
	Preference *string `bson:"preference,omitempty" json:"preference,omitempty" validate:"omitempty,eq=spicy|eq=regular"`
}

// Participant names are unique per order, compared case-insensitively. The
// casing of the first occurrence is what gets stored.
type Participant struct {
	Participant_id string      `bson:"participant_id" json:"participant_id"`
	Name           string      `bson:"name" json:"name" validate:"required,min=1,max=100"`
	Items          []OrderItem `bson:"items" json:"items"`
}

// Rating is one user's scores for an order: one restaurant score plus one
// score per dish they chose to rate. At most one Rating per user per order.
type Rating struct {
	User_id           string         `bson:"user_id" json:"user_id" validate:"required"`
	Restaurant_rating int            `bson:"restaurant_rating" json:"restaurant_rating" validate:"min=1,max=5"`
	Dish_ratings      map[string]int `bson:"dish_ratings,omitempty" json:"dish_ratings,omitempty"`
}

type GroupOrder struct {
	ID           string            `bson:"_id" json:"id"`
	Restaurant   Restaurant        `bson:"restaurant" json:"restaurant"`
	Participants []Participant     `bson:"participants" json:"participants"`
	Created_at   time.Time         `bson:"created_at" json:"created_at"`
	Status       string            `bson:"status" json:"status" validate:"required,eq=active|eq=finalized|eq=cancelled"`
	Order_code   string            `bson:"order_code" json:"order_code"`
	Ratings      map[string]Rating `bson:"ratings,omitempty" json:"ratings,omitempty"`
	// Authoritative fee for settlement, snapshotted from the restaurant when
	// the order is created.
	Delivery_fee float64 `bson:"delivery_fee" json:"delivery_fee" validate:"min=0"`
}
