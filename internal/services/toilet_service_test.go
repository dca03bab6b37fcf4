package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toiletBack/internal/models"
)

func fp(f float64) *float64 { return &f }
func ip(n int) *int         { return &n }
func sp(s string) *string   { return &s }

func algiers() *models.Wilaya {
	return &models.Wilaya{
		ID: 16, Code: "DZ-16", Number: 16,
		CenterLat: fp(36.7538), CenterLng: fp(3.0588), DefaultRadiusKm: fp(30),
		MinLat: fp(36.5), MaxLat: fp(37.0), MinLng: fp(2.7), MaxLng: fp(3.4),
	}
}

func TestMergeCenterExplicitCoordinates(t *testing.T) {
	c := mergeCenter(models.ToiletSearchRequest{Lat: fp(35.0), Lng: fp(1.0), RadiusKm: ip(10)}, nil)
	require.NotNil(t, c)
	assert.Equal(t, 35.0, c.Lat)
	assert.Equal(t, 1.0, c.Lng)
	assert.Equal(t, 10, c.RadiusKm)
}

func TestMergeCenterWilayaDefaults(t *testing.T) {
	c := mergeCenter(models.ToiletSearchRequest{}, algiers())
	require.NotNil(t, c)
	assert.Equal(t, 36.7538, c.Lat)
	assert.Equal(t, 30, c.RadiusKm)
}

func TestMergeCenterExplicitWinsPerField(t *testing.T) {
	// Explicit lat combines with the wilaya's lng; explicit radius wins
	// over the wilaya default.
	c := mergeCenter(models.ToiletSearchRequest{Lat: fp(36.9), RadiusKm: ip(5)}, algiers())
	require.NotNil(t, c)
	assert.Equal(t, 36.9, c.Lat)
	assert.Equal(t, 3.0588, c.Lng)
	assert.Equal(t, 5, c.RadiusKm)
}

func TestMergeCenterNoOrigin(t *testing.T) {
	assert.Nil(t, mergeCenter(models.ToiletSearchRequest{}, nil))
	assert.Nil(t, mergeCenter(models.ToiletSearchRequest{Lat: fp(36.0)}, nil))
}

func TestMergeCenterDefaultRadius(t *testing.T) {
	c := mergeCenter(models.ToiletSearchRequest{Lat: fp(36.0), Lng: fp(3.0)}, nil)
	require.NotNil(t, c)
	assert.Equal(t, 25, c.RadiusKm)
}

func TestResolveBoxPrefersWilayaBBox(t *testing.T) {
	req := models.ToiletSearchRequest{UseBbox: true}
	center := &models.SearchCenter{Lat: 36.7538, Lng: 3.0588, RadiusKm: 25}

	box := resolveBox(req, center, algiers())
	require.NotNil(t, box)
	assert.Equal(t, 36.5, box.MinLat)
	assert.Equal(t, 3.4, box.MaxLng)

	// Without the opt-in the synthesized box is used.
	box = resolveBox(models.ToiletSearchRequest{}, center, algiers())
	require.NotNil(t, box)
	assert.InDelta(t, 36.7538-25.0/111.0, box.MinLat, 1e-9)

	assert.Nil(t, resolveBox(models.ToiletSearchRequest{}, nil, nil))
}

func TestResolveSort(t *testing.T) {
	sort, order := resolveSort("", "", true, "created_at")
	assert.Equal(t, "distance", sort)
	assert.Equal(t, "asc", order)

	sort, order = resolveSort("", "", false, "created_at")
	assert.Equal(t, "created_at", sort)
	assert.Equal(t, "desc", order)

	// distance without a center falls back instead of erroring.
	sort, _ = resolveSort("distance", "asc", false, "created_at")
	assert.Equal(t, "created_at", sort)

	sort, order = resolveSort("AVG_RATING", "DESC", false, "created_at")
	assert.Equal(t, "avg_rating", sort)
	assert.Equal(t, "desc", order)

	sort, _ = resolveSort("drop table", "asc", true, "created_at")
	assert.Equal(t, "created_at", sort)

	sort, order = resolveSort("", "", false, "favorited_at")
	assert.Equal(t, "favorited_at", sort)
	assert.Equal(t, "desc", order)
}

func TestResolveSortExtraColumnsPerEndpoint(t *testing.T) {
	// favorited_at only exists on the favorites query; everywhere else
	// the request falls back instead of producing a bad column.
	sort, _ := resolveSort("favorited_at", "desc", true, "created_at")
	assert.Equal(t, "created_at", sort)

	sort, _ = resolveSort("favorited_at", "desc", false, "created_at")
	assert.Equal(t, "created_at", sort)

	sort, order := resolveSort("favorited_at", "asc", false, "favorited_at", "favorited_at")
	assert.Equal(t, "favorited_at", sort)
	assert.Equal(t, "asc", order)
}

func TestProjectionOptionsDefaultsToFullFieldSet(t *testing.T) {
	opts := projectionOptions(models.ToiletSearchRequest{})
	assert.True(t, opts.All)
	assert.Empty(t, opts.Include)

	// A list row projected without include params keeps its scalars.
	toilet := &models.Toilet{ID: 4, Name: "Gare", Lat: 36.75, Lng: 3.05, Status: models.StatusActive}
	out := projectToilet(toilet, opts, false)
	for _, key := range []string{"id", "name", "lat", "lng", "is_free"} {
		_, ok := out.Get(key)
		assert.True(t, ok, "missing %s", key)
	}
}

func TestProjectionOptionsExplicitInclude(t *testing.T) {
	opts := projectionOptions(models.ToiletSearchRequest{
		Include: []string{"id", "name"},
		Groups:  []string{"coords"},
		Exclude: []string{"name"},
	})
	assert.False(t, opts.All)
	assert.Equal(t, []string{"id", "name", "coords"}, opts.Include)

	toilet := &models.Toilet{ID: 4, Name: "Gare", Lat: 36.75, Lng: 3.05}
	out := projectToilet(toilet, opts, false)
	_, ok := out.Get("lat")
	assert.True(t, ok)
	_, ok = out.Get("name")
	assert.False(t, ok)
	_, ok = out.Get("is_free")
	assert.False(t, ok)
}

func TestSearchRelations(t *testing.T) {
	set := searchRelations(models.ToiletSearchRequest{})
	for _, rel := range []string{"category", "wilaya", "owner", "photos", "open_hours"} {
		assert.True(t, set[rel])
	}

	set = searchRelations(models.ToiletSearchRequest{Include: []string{"id", "category"}})
	assert.True(t, set["category"])
	assert.False(t, set["photos"])

	set = searchRelations(models.ToiletSearchRequest{Groups: []string{"relations"}})
	assert.True(t, set["open_hours"])
}

func TestValidateSearchRequestCollectsAllErrors(t *testing.T) {
	req := models.ToiletSearchRequest{
		Lat:          fp(123),
		Lng:          fp(-300),
		RadiusKm:     ip(0),
		MinRating:    fp(9),
		AccessMethod: sp("teleport"),
		PricingModel: sp("per-century"),
	}

	err := validateSearchRequest(req, 100)
	require.Error(t, err)

	v, ok := err.(*models.ValidationError)
	require.True(t, ok)
	for _, field := range []string{"lat", "lng", "radius_km", "min_rating", "access_method", "pricing_model"} {
		assert.Contains(t, v.Fields, field)
	}
}

func TestValidateSearchRequestAcceptsValid(t *testing.T) {
	req := models.ToiletSearchRequest{
		Lat: fp(36.75), Lng: fp(3.05), RadiusKm: ip(25),
		MinRating: fp(3.5), AccessMethod: sp("staff"), PricingModel: sp("flat"),
		Page: 2, PerPage: 50,
	}
	assert.NoError(t, validateSearchRequest(req, 100))
}

func TestRelationLoadSet(t *testing.T) {
	set := relationLoadSet([]string{"category", "coords", "photos"})
	assert.True(t, set["category"])
	assert.True(t, set["photos"])
	assert.False(t, set["wilaya"])

	set = relationLoadSet([]string{"all"})
	for _, rel := range []string{"category", "wilaya", "owner", "photos", "open_hours"} {
		assert.True(t, set[rel])
	}

	set = relationLoadSet([]string{"relations"})
	assert.True(t, set["open_hours"])

	assert.Empty(t, relationLoadSet([]string{"id", "name"}))
}

func TestPageWindow(t *testing.T) {
	limit, offset := pageWindow(0, 0, 20)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)

	limit, offset = pageWindow(3, 50, 20)
	assert.Equal(t, 50, limit)
	assert.Equal(t, 100, offset)
}

func TestCanManageToilet(t *testing.T) {
	owner := ip(7)
	toilet := &models.Toilet{OwnerID: owner}

	assert.False(t, canManageToilet(nil, toilet))
	assert.True(t, canManageToilet(&models.Claims{UserID: 7, Role: "host"}, toilet))
	assert.False(t, canManageToilet(&models.Claims{UserID: 8, Role: "host"}, toilet))
	assert.True(t, canManageToilet(&models.Claims{UserID: 8, Role: "admin"}, toilet))
	assert.False(t, canManageToilet(&models.Claims{UserID: 7, Role: "host"}, &models.Toilet{}))
}
