package utils

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ParsePagination reads ?page= and converts it to a skip/limit pair for
// a fixed page size. Page numbering starts at 1; anything unparsable
// falls back to the first page.
func ParsePagination(r *http.Request, pageSize int64) (skip, limit int64) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize, pageSize
}

// ParseSort maps a caller-supplied sort field to a bson sort document.
// Fields listed in descFields always sort descending regardless of what
// the caller asked for; an empty field returns the fallback.
func ParseSort(field string, fallback bson.D, descFields map[string]bool) bson.D {
	field = strings.TrimSpace(field)
	if field == "" {
		return fallback
	}
	order := 1
	if descFields[field] {
		order = -1
	}
	return bson.D{{Key: field, Value: order}}
}

// SearchFilter builds a case-insensitive substring OR-match across the
// given fields. An empty searchKey matches everything.
func SearchFilter(searchKey string, fields ...string) bson.M {
	if strings.TrimSpace(searchKey) == "" {
		return bson.M{}
	}
	ors := make([]bson.M, 0, len(fields))
	for _, f := range fields {
		ors = append(ors, bson.M{f: bson.M{"$regex": searchKey, "$options": "i"}})
	}
	return bson.M{"$or": ors}
}

// And combines filters, skipping empty ones so the result stays a plain
// match document whenever possible.
func And(filters ...bson.M) bson.M {
	nonEmpty := make([]bson.M, 0, len(filters))
	for _, f := range filters {
		if len(f) > 0 {
			nonEmpty = append(nonEmpty, f)
		}
	}
	switch len(nonEmpty) {
	case 0:
		return bson.M{}
	case 1:
		return nonEmpty[0]
	default:
		return bson.M{"$and": nonEmpty}
	}
}

func FindAndDecode[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
