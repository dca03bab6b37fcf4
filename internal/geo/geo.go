package geo

import "math"

const earthRadiusKm = 6371.0

// Box is an axis-aligned lat/lng rectangle used to prefilter candidates
// before the exact great-circle check.
type Box struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// BoundingBox synthesizes a box around a center that is guaranteed to
// contain every point within radiusKm. One degree of latitude is close to
// 111 km everywhere; a degree of longitude shrinks with cos(lat), clamped
// so the box stays finite near the poles.
func BoundingBox(lat, lng float64, radiusKm float64) Box {
	latDelta := radiusKm / 111.0
	cosLat := math.Cos(lat * math.Pi / 180.0)
	if cosLat < 1e-6 {
		cosLat = 1e-6
	}
	lngDelta := radiusKm / (111.0 * cosLat)
	return Box{
		MinLat: lat - latDelta,
		MaxLat: lat + latDelta,
		MinLng: lng - lngDelta,
		MaxLng: lng + lngDelta,
	}
}

// Contains reports whether the point lies inside the box, borders included.
func (b Box) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// HaversineKm returns the great-circle distance between two points in
// kilometers.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	rLat1 := lat1 * math.Pi / 180.0
	rLat2 := lat2 * math.Pi / 180.0
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLng := (lng2 - lng1) * math.Pi / 180.0

	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Pow(math.Sin(dLng/2), 2)

	return earthRadiusKm * 2 * math.Asin(math.Sqrt(a))
}
