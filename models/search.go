package models

type SortOrder string

const (
	SortDefault   SortOrder = "default"
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
	SortRating    SortOrder = "rating"
)

// SearchFilters is the raw filter set a client sends. Empty values mean
// "no constraint".
type SearchFilters struct {
	Location   string    `form:"location" json:"location"`
	Guests     int       `form:"guests" json:"guests" validate:"gte=0"`
	StartDate  string    `form:"startDate" json:"startDate"`
	EndDate    string    `form:"endDate" json:"endDate"`
	AmenityIDs []string  `form:"amenities" json:"amenities"`
	Sort       SortOrder `form:"sort" json:"sort" validate:"omitempty,oneof=default price-asc price-desc rating"`
}
