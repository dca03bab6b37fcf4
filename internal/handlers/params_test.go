package handlers

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSearchRequest(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/toilets?wilaya_id=16&lat=36.75&lng=3.05&radius_km=10&is_free=1&access_method=staff"+
			"&min_rating=3.5&amenities=soap,paper&include=category,photos&page=2&per_page=50"+
			"&sort=distance&order=asc&use_bbox=true", nil)

	req := parseSearchRequest(r)

	require.NotNil(t, req.WilayaID)
	assert.Equal(t, 16, *req.WilayaID)
	require.NotNil(t, req.Lat)
	assert.Equal(t, 36.75, *req.Lat)
	require.NotNil(t, req.IsFree)
	assert.True(t, *req.IsFree)
	assert.Equal(t, []string{"soap", "paper"}, req.Amenities)
	assert.Equal(t, []string{"category", "photos"}, req.Include)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, 50, req.PerPage)
	assert.Equal(t, "distance", req.Sort)
	assert.True(t, req.UseBbox)
	assert.True(t, req.WithDistance)
}

func TestParseSearchRequestDropsUnparseable(t *testing.T) {
	r := httptest.NewRequest("GET", "/toilets?lat=abc&radius_km=ten&is_free=maybe", nil)
	req := parseSearchRequest(r)

	assert.Nil(t, req.Lat)
	assert.Nil(t, req.RadiusKm)
	assert.Nil(t, req.IsFree)
}

func TestParseSearchRequestAbsentVsEmpty(t *testing.T) {
	r := httptest.NewRequest("GET", "/toilets", nil)
	assert.Nil(t, parseSearchRequest(r).Include)

	r = httptest.NewRequest("GET", "/toilets?include=", nil)
	assert.Equal(t, []string{}, parseSearchRequest(r).Include)
}

func TestParseSearchRequestProjectionParams(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/toilets?include=id,name&groups=coords,pricing&exclude=description"+
			"&drop_nulls=1&drop_empty_arrays=true&lang=en", nil)
	req := parseSearchRequest(r)

	assert.Equal(t, []string{"id", "name"}, req.Include)
	assert.Equal(t, []string{"coords", "pricing"}, req.Groups)
	assert.Equal(t, []string{"description"}, req.Exclude)
	assert.True(t, req.DropNulls)
	assert.True(t, req.DropEmptyArrays)
	assert.Equal(t, "en", req.Lang)
}

func TestParseSearchRequestBboxDefault(t *testing.T) {
	// The bbox prefilter is on unless the caller opts out.
	r := httptest.NewRequest("GET", "/toilets", nil)
	assert.True(t, parseSearchRequest(r).UseBbox)

	r = httptest.NewRequest("GET", "/toilets?use_bbox=0", nil)
	assert.False(t, parseSearchRequest(r).UseBbox)
}

func TestWithDistanceToggle(t *testing.T) {
	r := httptest.NewRequest("GET", "/toilets-markers?with_distance=false", nil)
	assert.False(t, parseSearchRequest(r).WithDistance)
}

func TestIdentityFromContext(t *testing.T) {
	r := httptest.NewRequest("GET", "/me", nil)
	assert.Nil(t, identityFromContext(r))

	ctx := context.WithValue(r.Context(), "user_id", 7)
	ctx = context.WithValue(ctx, "role", "host")
	claims := identityFromContext(r.WithContext(ctx))
	require.NotNil(t, claims)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "host", claims.Role)
}

func TestLangParam(t *testing.T) {
	assert.Equal(t, "en", langParam(httptest.NewRequest("GET", "/taxonomy?lang=en", nil)))
	assert.Equal(t, "fr", langParam(httptest.NewRequest("GET", "/taxonomy?lang=de", nil)))
	assert.Equal(t, "fr", langParam(httptest.NewRequest("GET", "/taxonomy", nil)))
}
