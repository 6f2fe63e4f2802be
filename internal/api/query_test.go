package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryBuilder_OmitsUnsetValues(t *testing.T) {
	t.Parallel()

	active := true
	empty := ""
	q := newQuery().
		Str("search", "mug").
		Str("category", "").
		StrPtr("status", &empty).
		StrPtr("sort", nil).
		Int("page", 2).
		Int("limit", 0).
		Int("rating", -1).
		Float("minPrice", 9.99).
		Float("maxPrice", 0).
		BoolPtr("isActive", &active).
		BoolPtr("featured", nil).
		Values()

	assert.Equal(t, "mug", q.Get("search"))
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "9.99", q.Get("minPrice"))
	assert.Equal(t, "true", q.Get("isActive"))

	for _, absent := range []string{"category", "status", "sort", "limit", "rating", "maxPrice", "featured"} {
		assert.NotContains(t, q, absent)
	}
	assert.Len(t, q, 4)
}

func TestQueryBuilder_BoolPtrSendsExplicitFalse(t *testing.T) {
	t.Parallel()

	inactive := false
	q := newQuery().BoolPtr("isActive", &inactive).Values()
	assert.Equal(t, "false", q.Get("isActive"))
}
