package models

// BrandRating is one row of the brand ranking aggregation. ID holds the
// grouped brand value, which may be missing or non-string on free-form
// products. AvgRating is nil when no product of the brand has a numeric rating.
type BrandRating struct {
	ID        interface{} `bson:"_id" json:"_id"`
	AvgRating *float64    `bson:"avgRating" json:"avgRating"`
}
