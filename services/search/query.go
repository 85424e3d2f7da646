package search

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	propertyRepo "havenstay/database/repository/property"
	"havenstay/models"
	"havenstay/services/availability"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Query is a normalized filter set. Nil and empty fields mean "no constraint".
type Query struct {
	Location   string
	Guests     int
	Range      *availability.DateRange
	AmenityIDs []string
	Sort       models.SortOrder
}

// Normalize null-coalesces raw filters. A single date without its partner is
// dropped rather than rejected, and guests defaults to one.
func Normalize(f models.SearchFilters) (Query, error) {
	q := Query{
		Location: strings.TrimSpace(f.Location),
		Guests:   f.Guests,
		Sort:     f.Sort,
	}
	if q.Guests < 1 {
		q.Guests = 1
	}
	if q.Sort == "" {
		q.Sort = models.SortDefault
	}

	r, err := availability.ParseDateRange(strings.TrimSpace(f.StartDate), strings.TrimSpace(f.EndDate))
	if err != nil {
		return Query{}, err
	}
	if r != nil && !r.Valid() {
		return Query{}, &availability.InvalidRangeError{Range: *r}
	}
	q.Range = r

	seen := make(map[string]struct{}, len(f.AmenityIDs))
	for _, raw := range f.AmenityIDs {
		for _, id := range strings.Split(raw, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			q.AmenityIDs = append(q.AmenityIDs, id)
		}
	}
	sort.Strings(q.AmenityIDs)
	return q, nil
}

// CacheKey is stable for equal queries.
func (q Query) CacheKey() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(q.Location))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(q.Guests))
	b.WriteByte('|')
	if q.Range != nil {
		b.WriteString(q.Range.Start.Format(availability.DateLayout))
		b.WriteByte('/')
		b.WriteString(q.Range.End.Format(availability.DateLayout))
	}
	b.WriteByte('|')
	b.WriteString(strings.Join(q.AmenityIDs, ","))
	b.WriteByte('|')
	b.WriteString(string(q.Sort))
	return b.String()
}

// Pipeline builds the single aggregation that answers q against the
// properties collection.
func (q Query) Pipeline() mongo.Pipeline {
	match := bson.D{
		{Key: "isActive", Value: true},
		{Key: "maxGuests", Value: bson.D{{Key: "$gte", Value: q.Guests}}},
	}
	if q.Location != "" {
		match = append(match, bson.E{Key: "city", Value: primitive.Regex{
			Pattern: regexp.QuoteMeta(q.Location),
			Options: "i",
		}})
	}
	if len(q.AmenityIDs) > 0 {
		match = append(match, bson.E{Key: "amenityIds", Value: bson.D{{Key: "$all", Value: q.AmenityIDs}}})
	}

	pipeline := mongo.Pipeline{{{Key: "$match", Value: match}}}

	if q.Range != nil {
		pipeline = append(pipeline,
			bson.D{{Key: "$lookup", Value: bson.D{
				{Key: "from", Value: "bookings"},
				{Key: "let", Value: bson.D{{Key: "pid", Value: "$id"}}},
				{Key: "pipeline", Value: bson.A{
					bson.D{{Key: "$match", Value: bson.D{
						{Key: "$expr", Value: bson.D{{Key: "$eq", Value: bson.A{"$propertyId", "$$pid"}}}},
						{Key: "status", Value: bson.D{{Key: "$in", Value: models.BlockingStatuses}}},
						{Key: "checkIn", Value: bson.D{{Key: "$lt", Value: q.Range.End}}},
						{Key: "checkOut", Value: bson.D{{Key: "$gt", Value: q.Range.Start}}},
					}}},
					bson.D{{Key: "$limit", Value: 1}},
				}},
				{Key: "as", Value: "conflicts"},
			}}},
			bson.D{{Key: "$match", Value: bson.D{{Key: "conflicts", Value: bson.D{{Key: "$size", Value: 0}}}}}},
		)
	}

	pipeline = append(pipeline, propertyRepo.RatingStages()...)

	switch q.Sort {
	case models.SortPriceAsc:
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "pricePerNight", Value: 1}, {Key: "id", Value: 1}}}})
	case models.SortPriceDesc:
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "pricePerNight", Value: -1}, {Key: "id", Value: 1}}}})
	case models.SortRating:
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "averageRating", Value: -1}, {Key: "reviewCount", Value: -1}, {Key: "id", Value: 1}}}})
	default:
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "id", Value: 1}}}})
	}
	return pipeline
}
