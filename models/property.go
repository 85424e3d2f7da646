package models

import "time"

// Property is a rental listing owned by a host.
type Property struct {
	ID            string    `bson:"id" json:"id"`
	HostID        string    `bson:"hostId" json:"hostId"`
	Title         string    `bson:"title" json:"title"`
	Description   string    `bson:"description" json:"description"`
	Address       string    `bson:"address" json:"address"`
	City          string    `bson:"city" json:"city"`
	Latitude      float64   `bson:"latitude" json:"latitude"`
	Longitude     float64   `bson:"longitude" json:"longitude"`
	PricePerNight Money     `bson:"pricePerNight" json:"pricePerNight"`
	MaxGuests     int       `bson:"maxGuests" json:"maxGuests"`
	Bedrooms      int       `bson:"bedrooms" json:"bedrooms"`
	Beds          int       `bson:"beds" json:"beds"`
	Bathrooms     int       `bson:"bathrooms" json:"bathrooms"`
	MainImage     string    `bson:"mainImage,omitempty" json:"mainImage,omitempty"`
	Images        []string  `bson:"images" json:"images"`
	AmenityIDs    []string  `bson:"amenityIds" json:"amenityIds"`
	IsActive      bool      `bson:"isActive" json:"isActive"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PropertyCard is the browse and search projection of a listing.
type PropertyCard struct {
	ID            string  `bson:"id" json:"id"`
	Title         string  `bson:"title" json:"title"`
	City          string  `bson:"city" json:"city"`
	PricePerNight Money   `bson:"pricePerNight" json:"pricePerNight"`
	MaxGuests     int     `bson:"maxGuests" json:"maxGuests"`
	MainImage     string  `bson:"mainImage,omitempty" json:"mainImage,omitempty"`
	AverageRating float64 `bson:"averageRating" json:"averageRating"`
	ReviewCount   int     `bson:"reviewCount" json:"reviewCount"`
}

// PropertyDetail is a listing with its amenities and rating summary.
type PropertyDetail struct {
	Property
	Amenities []Amenity     `json:"amenities"`
	Rating    RatingSummary `json:"rating"`
}

// PropertyInput carries the host editable fields of a listing.
type PropertyInput struct {
	Title         string   `json:"title" validate:"required,max=120"`
	Description   string   `json:"description" validate:"max=5000"`
	Address       string   `json:"address" validate:"required"`
	City          string   `json:"city" validate:"required"`
	Latitude      float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude     float64  `json:"longitude" validate:"gte=-180,lte=180"`
	PricePerNight string   `json:"pricePerNight" validate:"required,numeric"`
	MaxGuests     int      `json:"maxGuests" validate:"gte=1"`
	Bedrooms      int      `json:"bedrooms" validate:"gte=0"`
	Beds          int      `json:"beds" validate:"gte=0"`
	Bathrooms     int      `json:"bathrooms" validate:"gte=0"`
	AmenityIDs    []string `json:"amenityIds"`
	IsActive      *bool    `json:"isActive,omitempty"`
}
