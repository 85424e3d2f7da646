package models

import "time"

type Review struct {
	ID         string    `bson:"id" json:"id"`
	PropertyID string    `bson:"propertyId" json:"propertyId"`
	GuestID    string    `bson:"guestId" json:"guestId"`
	GuestName  string    `bson:"guestName,omitempty" json:"guestName,omitempty"`
	Rating     int       `bson:"rating" json:"rating"`
	Comment    string    `bson:"comment" json:"comment"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// RatingSummary is recomputed from the reviews collection on every read.
type RatingSummary struct {
	Average float64 `bson:"average" json:"average"`
	Count   int     `bson:"count" json:"count"`
}
