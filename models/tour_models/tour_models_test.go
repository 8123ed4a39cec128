package tour_models

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		f := ParseFilter(url.Values{})
		assert.Equal(t, 1, f.Page)
		assert.Equal(t, 10, f.Limit)
		assert.Empty(t, f.Destination)
		assert.Empty(t, f.Category)
		assert.Nil(t, f.MinPrice)
		assert.Nil(t, f.MaxPrice)
		assert.Nil(t, f.Duration)
	})

	t.Run("AllParameters", func(t *testing.T) {
		f := ParseFilter(url.Values{
			"destination": {"Kerala"},
			"category":    {"beach"},
			"minPrice":    {"10000"},
			"maxPrice":    {"40000"},
			"duration":    {"7"},
			"sortBy":      {"price_low"},
			"page":        {"3"},
			"limit":       {"5"},
		})

		assert.Equal(t, "Kerala", f.Destination)
		assert.Equal(t, "beach", f.Category)
		require.NotNil(t, f.MinPrice)
		assert.Equal(t, 10000.0, *f.MinPrice)
		require.NotNil(t, f.MaxPrice)
		assert.Equal(t, 40000.0, *f.MaxPrice)
		require.NotNil(t, f.Duration)
		assert.Equal(t, 7, *f.Duration)
		assert.Equal(t, "price_low", f.SortBy)
		assert.Equal(t, 3, f.Page)
		assert.Equal(t, 5, f.Limit)
	})

	t.Run("MalformedNumericsIgnored", func(t *testing.T) {
		f := ParseFilter(url.Values{
			"minPrice": {"cheap"},
			"maxPrice": {"40k"},
			"duration": {"one week"},
			"page":     {"-2"},
			"limit":    {"abc"},
		})

		assert.Nil(t, f.MinPrice)
		assert.Nil(t, f.MaxPrice)
		assert.Nil(t, f.Duration)
		assert.Equal(t, 1, f.Page)
		assert.Equal(t, 10, f.Limit)
	})
}

func TestWhereClause(t *testing.T) {
	t.Run("AlwaysActive", func(t *testing.T) {
		where, args := Filter{}.WhereClause()
		assert.Equal(t, "is_active = TRUE", where)
		assert.Empty(t, args)
	})

	t.Run("FullFilter", func(t *testing.T) {
		min, max, dur := 10000.0, 40000.0, 7
		f := Filter{
			Destination: "Kerala",
			Category:    "beach",
			MinPrice:    &min,
			MaxPrice:    &max,
			Duration:    &dur,
		}

		where, args := f.WhereClause()
		assert.Contains(t, where, "is_active = TRUE")
		assert.Contains(t, where, "destination ILIKE $1")
		assert.Contains(t, where, "category = $2")
		assert.Contains(t, where, "price >= $3")
		assert.Contains(t, where, "price <= $4")
		assert.Contains(t, where, "duration_days = $5")
		assert.Equal(t, []any{"%Kerala%", "beach", 10000.0, 40000.0, 7}, args)
	})
}

func TestOrderClause(t *testing.T) {
	cases := map[string]string{
		"price_low":  "price ASC",
		"price_high": "price DESC",
		"rating":     "rating DESC",
		"duration":   "duration_days ASC",
		"":           "created_at DESC",
		"bogus":      "created_at DESC",
	}

	for sortBy, want := range cases {
		assert.Equal(t, want, Filter{SortBy: sortBy}.OrderClause(), "sortBy=%q", sortBy)
	}
}

func TestPages(t *testing.T) {
	cases := []struct {
		total, limit, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{5, 0, 0},
		{-3, 10, 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Pages(tc.total, tc.limit), "total=%d limit=%d", tc.total, tc.limit)
	}
}
