package formatter

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRow() Row {
	desc := "Clean and bright"
	return Row{
		"id":                 7,
		"owner_id":           3,
		"toilet_category_id": 2,
		"name":               "Café Central",
		"description":        desc,
		"phone_numbers":      `["0550123456"]`,
		"lat":                36.7538,
		"lng":                3.0588,
		"address_line":       "12 Rue Didouche Mourad",
		"wilaya_id":          16,
		"place_hint":         nil,
		"access_method":      "staff",
		"capacity":           2,
		"is_unisex":          1,
		"amenities":          `["soap","paper"]`,
		"rules":              []string{"for_customers_only"},
		"is_free":            "0",
		"price_cents":        5000,
		"pricing_model":      "per-visit",
		"status":             "active",
		"avg_rating":         4.25,
		"reviews_count":      12,
		"photos_count":       2,
		"created_at":         time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		"updated_at":         nil,
	}
}

func TestToiletFullProjection(t *testing.T) {
	out := Toilet(sampleRow(), Options{All: true})

	get := func(k string) interface{} {
		v, ok := out.Get(k)
		require.True(t, ok, "missing %s", k)
		return v
	}

	assert.Equal(t, 7, get("id"))
	assert.Equal(t, 3, get("owner_id"))
	assert.Equal(t, []string{"0550123456"}, get("phone_numbers"))
	assert.Equal(t, false, get("is_free"))
	assert.Equal(t, true, get("is_unisex"))
	assert.Equal(t, 4.25, get("avg_rating"))
	assert.Nil(t, get("place_hint"))
	assert.Equal(t, "2025-03-01T10:00:00Z", get("created_at"))
	assert.Nil(t, get("updated_at"))

	// Relations were not loaded, so their keys must be absent.
	_, ok := out.Get("photos")
	assert.False(t, ok)
	_, ok = out.Get("category")
	assert.False(t, ok)
	_, ok = out.Get("is_favorite")
	assert.False(t, ok)
}

func TestToiletFieldOrderStable(t *testing.T) {
	out := Toilet(sampleRow(), Options{All: true})
	keys := out.Keys()
	require.NotEmpty(t, keys)
	assert.Equal(t, "id", keys[0])
	idx := map[string]int{}
	for i, k := range keys {
		idx[k] = i
	}
	assert.Less(t, idx["owner_id"], idx["name"])
	assert.Less(t, idx["lat"], idx["lng"])
	assert.Less(t, idx["created_at"], idx["cover_photo"])
}

func TestIncludeNamesAndGroups(t *testing.T) {
	out := Toilet(sampleRow(), Options{Include: []string{"id", "coords", "pricing"}})

	for _, want := range []string{"id", "lat", "lng", "is_free", "price_cents", "pricing_model"} {
		_, ok := out.Get(want)
		assert.True(t, ok, "expected %s", want)
	}
	for _, skip := range []string{"name", "amenities", "avg_rating"} {
		_, ok := out.Get(skip)
		assert.False(t, ok, "did not expect %s", skip)
	}
}

func TestIncludeAllTokens(t *testing.T) {
	for _, token := range []string{"all", "*", "everything"} {
		out := Toilet(sampleRow(), Options{Include: []string{token}})
		_, ok := out.Get("avg_rating")
		assert.True(t, ok, "token %q should select everything", token)
	}
}

func TestEmptyResolvedIncludeMeansEverything(t *testing.T) {
	out := Toilet(sampleRow(), Options{Include: []string{"", ""}})
	_, ok := out.Get("name")
	assert.True(t, ok)
}

func TestExcludeAlwaysWins(t *testing.T) {
	out := Toilet(sampleRow(), Options{All: true, Exclude: []string{"lat", "lng"}})
	_, ok := out.Get("lat")
	assert.False(t, ok)

	out = Toilet(sampleRow(), Options{Include: []string{"coords"}, Exclude: []string{"lng"}})
	_, ok = out.Get("lat")
	assert.True(t, ok)
	_, ok = out.Get("lng")
	assert.False(t, ok)
}

func TestCoverPhotoPrecedence(t *testing.T) {
	row := sampleRow()
	row["photos"] = []Row{
		{"id": 1, "url": "https://cdn.example/a.jpg", "is_cover": false},
		{"id": 2, "url": "https://cdn.example/b.jpg", "is_cover": true},
	}

	out := Toilet(row, Options{All: true})
	v, _ := out.Get("cover_photo")
	assert.Equal(t, "https://cdn.example/b.jpg", v)

	// Explicit column beats the loaded collection.
	row["cover_photo_url"] = "https://cdn.example/explicit.jpg"
	out = Toilet(row, Options{All: true})
	v, _ = out.Get("cover_photo")
	assert.Equal(t, "https://cdn.example/explicit.jpg", v)

	// No flagged photo falls back to the first one.
	delete(row, "cover_photo_url")
	row["photos"] = []Row{{"id": 1, "url": "https://cdn.example/a.jpg", "is_cover": false}}
	out = Toilet(row, Options{All: true})
	v, _ = out.Get("cover_photo")
	assert.Equal(t, "https://cdn.example/a.jpg", v)

	// Nothing loaded at all means null.
	delete(row, "photos")
	out = Toilet(row, Options{All: true})
	v, _ = out.Get("cover_photo")
	assert.Nil(t, v)
}

func TestAmenitiesMetaLabels(t *testing.T) {
	row := sampleRow()
	row["amenities"] = []string{"soap", "secret_lounge", "soap"}

	out := Toilet(row, Options{All: true, Lang: "en"})
	v, _ := out.Get("amenities_meta")
	metas := v.([]*Map)
	require.Len(t, metas, 3)

	label0, _ := metas[0].Get("label")
	assert.Equal(t, "Soap", label0)
	label1, _ := metas[1].Get("label")
	assert.Equal(t, "Secret lounge", label1)
	// Duplicates and input order preserved.
	code2, _ := metas[2].Get("code")
	assert.Equal(t, "soap", code2)
}

func TestCapacityAndAggregateDefaults(t *testing.T) {
	row := Row{"id": 1}
	out := Toilet(row, Options{All: true})

	v, _ := out.Get("capacity")
	assert.Equal(t, 1, v)
	v, _ = out.Get("avg_rating")
	assert.Equal(t, 0.0, v)
	v, _ = out.Get("reviews_count")
	assert.Equal(t, 0, v)
	v, _ = out.Get("amenities")
	assert.Equal(t, []string{}, v)
}

func TestDropNullsAndEmptyArrays(t *testing.T) {
	row := Row{"id": 1, "description": nil, "amenities": "[]", "name": "X"}
	out := Toilet(row, Options{All: true, DropNulls: true, DropEmptyArrays: true})

	_, ok := out.Get("description")
	assert.False(t, ok)
	_, ok = out.Get("amenities")
	assert.False(t, ok)
	_, ok = out.Get("name")
	assert.True(t, ok)
}

func TestJSONEncodingKeepsOrder(t *testing.T) {
	out := Toilet(sampleRow(), Options{Include: []string{"id", "name", "coords"}})
	raw, err := json.Marshal(out)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "id")
	assert.Contains(t, decoded, "lat")

	// id must appear before name, name before lat in the raw bytes.
	s := string(raw)
	assert.Less(t, indexOf(s, `"id"`), indexOf(s, `"name"`))
	assert.Less(t, indexOf(s, `"name"`), indexOf(s, `"lat"`))
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func TestCoercions(t *testing.T) {
	assert.True(t, ToBool("YES"))
	assert.True(t, ToBool(1))
	assert.False(t, ToBool("nope"))
	assert.False(t, ToBool(nil))

	n, ok := ToIntOrNil("42")
	assert.True(t, ok)
	assert.Equal(t, 42, n)
	_, ok = ToIntOrNil("forty")
	assert.False(t, ok)

	assert.Nil(t, NullableString(""))
	assert.Equal(t, "x", NullableString("x"))

	assert.Equal(t, []string{}, ToStringList("not json"))
	assert.Equal(t, []string{"a", "b"}, ToStringList(`["a","b"]`))
}
