// Package filters turns loosely typed listing parameters into store queries.
package filters

import (
	"go.mongodb.org/mongo-driver/bson"
)

// Params holds query parameters keyed by name. Each value is either a
// string or a []string, depending on how the parameter was sent.
type Params map[string]any

// BuildProductFilter builds the catalog query for the products listing.
//
// Clauses are added only for parameters that are present:
//
//	brand               brand equals the raw value, or $in when more than one brand was sent
//	minPrice, maxPrice  price range, $gte only, or exact equality when only maxPrice is set
//	minRating           rating $gte
//
// A one-element brand list is compared as a list, not as its single element.
// Numeric values that do not parse are passed through as NaN.
func BuildProductFilter(params Params) bson.M {
	filter := bson.M{}

	if brand, ok := params.present("brand"); ok {
		if list, isList := brand.([]string); isList && len(list) > 1 {
			filter["brand"] = bson.M{"$in": list}
		} else {
			filter["brand"] = brand
		}
	}

	minPrice, hasMin := params.present("minPrice")
	maxPrice, hasMax := params.present("maxPrice")
	switch {
	case hasMin && hasMax:
		filter["price"] = bson.M{
			"$gte": ToNumber(minPrice),
			"$lte": ToNumber(maxPrice),
		}
	case hasMin:
		filter["price"] = bson.M{"$gte": ToNumber(minPrice)}
	case hasMax:
		filter["price"] = ToNumber(maxPrice)
	}

	if minRating, ok := params.present("minRating"); ok {
		filter["rating"] = bson.M{"$gte": ToNumber(minRating)}
	}

	return filter
}

// present reports whether key carries a truthy value: a non-empty string or
// any list, even an empty one.
func (p Params) present(key string) (any, bool) {
	v, ok := p[key]
	if !ok || v == nil {
		return nil, false
	}
	if s, isString := v.(string); isString && s == "" {
		return nil, false
	}
	return v, true
}
