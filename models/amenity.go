package models

type Amenity struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	IconName string `bson:"iconName" json:"iconName"`
}
