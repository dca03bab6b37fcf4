package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toiletBack/internal/models"
)

func TestFavoriteQueryRestrictsToActive(t *testing.T) {
	q := favoriteQuery(7, models.ToiletSearchRequest{}, nil, nil)

	require.NotNil(t, q.Status)
	assert.Equal(t, models.StatusActive, *q.Status)
	require.NotNil(t, q.FavoritesOf)
	assert.Equal(t, 7, *q.FavoritesOf)
	assert.Equal(t, "favorited_at", q.Sort)
	assert.Equal(t, "desc", q.Order)
}

func TestFavoriteQueryCarriesFilters(t *testing.T) {
	req := models.ToiletSearchRequest{
		IsFree:       boolPtr(true),
		AccessMethod: sp("staff"),
		PricingModel: sp("flat"),
		MinRating:    fp(4),
		Amenities:    []string{"soap"},
		UseBbox:      true,
	}
	center := &models.SearchCenter{Lat: 36.7538, Lng: 3.0588, RadiusKm: 25}

	q := favoriteQuery(7, req, center, algiers())

	require.NotNil(t, q.IsFree)
	assert.True(t, *q.IsFree)
	assert.Equal(t, "staff", *q.AccessMethod)
	assert.Equal(t, "flat", *q.PricingModel)
	assert.Equal(t, 4.0, *q.MinRating)
	assert.Equal(t, []string{"soap"}, q.Amenities)

	// Center and bbox flow through exactly like the index query.
	require.NotNil(t, q.Center)
	require.NotNil(t, q.Box)
	assert.Equal(t, 36.5, q.Box.MinLat)
	assert.Equal(t, "distance", q.Sort)
	assert.Equal(t, "asc", q.Order)
}

func boolPtr(b bool) *bool { return &b }
