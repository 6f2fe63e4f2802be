package api

import (
	"net/url"
	"strconv"
)

// queryBuilder accumulates query parameters, omitting any key whose value is
// unset: empty strings, nil pointers and zero page/limit numbers never reach
// the wire. Listing endpoints treat a missing key and an unset filter the
// same way, so sending "" would change server behavior.
type queryBuilder struct {
	values url.Values
}

func newQuery() *queryBuilder {
	return &queryBuilder{values: url.Values{}}
}

func (q *queryBuilder) Str(key, value string) *queryBuilder {
	if value != "" {
		q.values.Set(key, value)
	}
	return q
}

func (q *queryBuilder) StrPtr(key string, value *string) *queryBuilder {
	if value != nil && *value != "" {
		q.values.Set(key, *value)
	}
	return q
}

func (q *queryBuilder) Int(key string, value int) *queryBuilder {
	if value > 0 {
		q.values.Set(key, strconv.Itoa(value))
	}
	return q
}

func (q *queryBuilder) Float(key string, value float64) *queryBuilder {
	if value != 0 {
		q.values.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
	}
	return q
}

// BoolPtr distinguishes "filter off" (nil) from an explicit true/false.
func (q *queryBuilder) BoolPtr(key string, value *bool) *queryBuilder {
	if value != nil {
		q.values.Set(key, strconv.FormatBool(*value))
	}
	return q
}

func (q *queryBuilder) Values() url.Values {
	return q.values
}
