package models

import "time"

type Favorite struct {
	ID         string    `bson:"id" json:"id"`
	PropertyID string    `bson:"propertyId" json:"propertyId"`
	ProfileID  string    `bson:"profileId" json:"profileId"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
