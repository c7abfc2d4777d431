package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Categories is the fixed set of trip categories a listing can belong to.
var Categories = []string{
	"Trending",
	"Rooms",
	"Iconic Cities",
	"Castles",
	"Amazing Pools",
	"Mountains",
	"Camping",
	"Farms",
	"Arctic",
	"Domes",
	"Boats",
}

// Image is the metadata kept for an uploaded listing photo. The bytes
// themselves live in the external object store.
type Image struct {
	URL      string `bson:"url" json:"url"`
	Filename string `bson:"filename" json:"filename"`
}

// GeoPoint is a GeoJSON Point, coordinates ordered [lng, lat].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

type Listing struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description" json:"description"`
	Image       Image                `bson:"image" json:"image"`
	Price       float64              `bson:"price" json:"price"`
	Location    string               `bson:"location" json:"location"`
	Country     string               `bson:"country" json:"country"`
	Category    string               `bson:"category" json:"category"`
	Geometry    GeoPoint             `bson:"geometry" json:"geometry"`
	Owner       primitive.ObjectID   `bson:"owner" json:"owner"`
	Reviews     []primitive.ObjectID `bson:"reviews" json:"reviews"`
	CreatedAt   time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updated_at"`
}

// ListingForm is the request body for creating a listing.
type ListingForm struct {
	Title       string  `json:"title" form:"title" validate:"required"`
	Description string  `json:"description" form:"description"`
	Price       float64 `json:"price" form:"price" validate:"gte=0"`
	Location    string  `json:"location" form:"location" validate:"required"`
	Country     string  `json:"country" form:"country"`
	Category    string  `json:"category" form:"category" validate:"required,oneof=Trending Rooms 'Iconic Cities' Castles 'Amazing Pools' Mountains Camping Farms Arctic Domes Boats"`
}

// ListingUpdateForm is the request body for a partial update. Only
// non-nil fields are applied.
type ListingUpdateForm struct {
	Title       *string  `json:"title" form:"title" validate:"omitempty,min=1"`
	Description *string  `json:"description" form:"description"`
	Price       *float64 `json:"price" form:"price" validate:"omitempty,gte=0"`
	Location    *string  `json:"location" form:"location" validate:"omitempty,min=1"`
	Country     *string  `json:"country" form:"country"`
	Category    *string  `json:"category" form:"category" validate:"omitempty,oneof=Trending Rooms 'Iconic Cities' Castles 'Amazing Pools' Mountains Camping Farms Arctic Domes Boats"`
}
