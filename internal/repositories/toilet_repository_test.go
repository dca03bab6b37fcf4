package repositories

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toiletBack/internal/geo"
	"toiletBack/internal/models"
)

func strp(s string) *string     { return &s }
func intp(n int) *int           { return &n }
func boolp(b bool) *bool        { return &b }
func floatp(f float64) *float64 { return &f }

func TestBuildToiletPredicatesAll(t *testing.T) {
	box := geo.BoundingBox(36.75, 3.05, 25)
	q := ToiletSearchQuery{
		Center:       &models.SearchCenter{Lat: 36.75, Lng: 3.05, RadiusKm: 25},
		Box:          &box,
		Status:       strp(models.StatusActive),
		IsFree:       boolp(true),
		AccessMethod: strp("staff"),
		PricingModel: strp("flat"),
		MinRating:    floatp(3.5),
		Amenities:    []string{"soap", "paper"},
	}

	p := buildToiletPredicates(q)
	where := p.whereClause()

	assert.Contains(t, where, "t.status = ?")
	assert.Contains(t, where, "t.lat BETWEEN ? AND ?")
	assert.Contains(t, where, "t.lng BETWEEN ? AND ?")
	assert.Contains(t, where, "t.is_free = ?")
	assert.Contains(t, where, "t.access_method = ?")
	assert.Contains(t, where, "t.pricing_model = ?")
	assert.Contains(t, where, "t.avg_rating >= ?")
	assert.Equal(t, 2, strings.Count(where, "JSON_CONTAINS(t.amenities, ?)"))
	assert.Contains(t, where, "ASIN")

	// status, 4 box bounds, is_free, access, pricing, min_rating,
	// 2 amenities, then lat/lat/lng/radius for the distance filter.
	require.Len(t, p.params, 14)
	assert.Equal(t, `"soap"`, p.params[9])
	assert.Equal(t, `"paper"`, p.params[10])
	assert.Equal(t, 25, p.params[13])
}

func TestBuildToiletPredicatesEmpty(t *testing.T) {
	p := buildToiletPredicates(ToiletSearchQuery{})
	assert.Empty(t, p.whereClause())
	assert.Empty(t, p.params)
	assert.Empty(t, p.joins)
}

func TestBuildToiletPredicatesFavoritesJoin(t *testing.T) {
	p := buildToiletPredicates(ToiletSearchQuery{FavoritesOf: intp(9)})
	require.Len(t, p.joins, 1)
	assert.Contains(t, p.joins[0], "INNER JOIN favorites")
	assert.Equal(t, []interface{}{9}, p.params)
}

func TestOrderClause(t *testing.T) {
	cases := []struct {
		sort, order string
		want        string
	}{
		{"distance", "asc", " ORDER BY distance_km ASC, t.id ASC"},
		{"avg_rating", "desc", " ORDER BY t.avg_rating DESC, t.id ASC"},
		{"reviews_count", "DESC", " ORDER BY t.reviews_count DESC, t.id ASC"},
		{"favorited_at", "desc", " ORDER BY fav.created_at DESC, t.id ASC"},
		{"id", "desc", " ORDER BY t.id DESC"},
		{"", "", " ORDER BY t.created_at ASC, t.id ASC"},
		{"bogus", "desc", " ORDER BY t.created_at DESC, t.id ASC"},
	}
	for _, c := range cases {
		got := orderClause(ToiletSearchQuery{Sort: c.sort, Order: c.order})
		assert.Equal(t, c.want, got, "sort=%q order=%q", c.sort, c.order)
	}
}

func TestDecodeStringList(t *testing.T) {
	assert.Equal(t, []string{"a"}, decodeStringList([]byte(`["a"]`)))
	assert.Equal(t, []string{}, decodeStringList(nil))
	assert.Equal(t, []string{}, decodeStringList([]byte(`{"not":"array"}`)))
	assert.Equal(t, []string{}, decodeStringList([]byte(`null`)))
}

func TestInPlaceholders(t *testing.T) {
	assert.Equal(t, "?", inPlaceholders(1))
	assert.Equal(t, "?,?,?", inPlaceholders(3))
}

func TestGetToiletsByIDsEmptyInput(t *testing.T) {
	// No ids means no query, so a nil DB is never touched.
	repo := &ToiletRepository{}
	toilets, err := repo.GetToiletsByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, toilets)
}
