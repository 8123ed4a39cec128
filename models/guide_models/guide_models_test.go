package guide_models

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		f := ParseFilter(url.Values{})
		assert.Empty(t, f.Location)
		assert.Empty(t, f.Language)
		assert.Nil(t, f.MinRating)
		assert.Nil(t, f.MaxPrice)
	})

	t.Run("AllParameters", func(t *testing.T) {
		f := ParseFilter(url.Values{
			"location":  {"Jaipur"},
			"language":  {"hindi"},
			"minRating": {"4.5"},
			"maxPrice":  {"3000"},
			"sortBy":    {"experience"},
		})

		assert.Equal(t, "Jaipur", f.Location)
		assert.Equal(t, "hindi", f.Language)
		require.NotNil(t, f.MinRating)
		assert.Equal(t, 4.5, *f.MinRating)
		require.NotNil(t, f.MaxPrice)
		assert.Equal(t, 3000.0, *f.MaxPrice)
		assert.Equal(t, "experience", f.SortBy)
	})

	t.Run("MalformedNumericsIgnored", func(t *testing.T) {
		f := ParseFilter(url.Values{
			"minRating": {"high"},
			"maxPrice":  {"3k"},
		})
		assert.Nil(t, f.MinRating)
		assert.Nil(t, f.MaxPrice)
	})
}

func TestWhereClause(t *testing.T) {
	t.Run("AlwaysAvailable", func(t *testing.T) {
		where, args := Filter{}.WhereClause()
		assert.Equal(t, "is_available = TRUE", where)
		assert.Empty(t, args)
	})

	t.Run("LanguageMembership", func(t *testing.T) {
		f := Filter{Language: "hindi"}
		where, args := f.WhereClause()
		assert.Contains(t, where, "unnest(languages)")
		assert.Contains(t, where, "ILIKE $1")
		assert.Equal(t, []any{"%hindi%"}, args)
	})

	t.Run("FullFilter", func(t *testing.T) {
		minRating, maxPrice := 4.5, 3000.0
		f := Filter{
			Location:  "Jaipur",
			Language:  "english",
			MinRating: &minRating,
			MaxPrice:  &maxPrice,
		}

		where, args := f.WhereClause()
		assert.Contains(t, where, "is_available = TRUE")
		assert.Contains(t, where, "location ILIKE $1")
		assert.Contains(t, where, "rating >= $3")
		assert.Contains(t, where, "price_per_day <= $4")
		assert.Equal(t, []any{"%Jaipur%", "%english%", 4.5, 3000.0}, args)
	})
}

func TestOrderClause(t *testing.T) {
	cases := map[string]string{
		"rating":     "rating DESC",
		"price_low":  "price_per_day ASC",
		"price_high": "price_per_day DESC",
		"experience": "experience DESC",
		"":           "rating DESC",
		"bogus":      "rating DESC",
	}

	for sortBy, want := range cases {
		assert.Equal(t, want, Filter{SortBy: sortBy}.OrderClause(), "sortBy=%q", sortBy)
	}
}
