package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmenityLabelLanguages(t *testing.T) {
	assert.Equal(t, "Soap", AmenityLabel("soap", "en"))
	assert.Equal(t, "Savon", AmenityLabel("soap", "fr"))
	assert.Equal(t, "صابون", AmenityLabel("soap", "ar"))
}

func TestAmenityLabelFallsBackToFrench(t *testing.T) {
	// Unknown language falls through to fr first.
	assert.Equal(t, "Savon", AmenityLabel("soap", "de"))
	assert.Equal(t, "Savon", AmenityLabel("soap", ""))
}

func TestLabelUnknownCodeTitleized(t *testing.T) {
	assert.Equal(t, "Secret lounge", AmenityLabel("secret_lounge", "en"))
	assert.Equal(t, "Mystery", RuleLabel("mystery", "fr"))
}

func TestAccessMethodLabel(t *testing.T) {
	assert.Equal(t, "Door code", AccessMethodLabel("code", "en"))
	assert.Equal(t, "اسأل الموظفين", AccessMethodLabel("staff", "ar"))
}

func TestTitleize(t *testing.T) {
	assert.Equal(t, "Baby change", Titleize("baby_change"))
	assert.Equal(t, "Wifi", Titleize("wifi"))
	assert.Equal(t, "", Titleize(""))
}

func TestCatalogCodesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range Amenities {
		assert.False(t, seen[e.Code], "duplicate amenity %s", e.Code)
		seen[e.Code] = true
	}
}
