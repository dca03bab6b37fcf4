package models

import (
	"time"
)

// Wilaya is an administrative province used as the geographic fallback for
// searches: when the caller gives a wilaya instead of coordinates, its
// center, default radius and precomputed bounding box drive the query.
type Wilaya struct {
	ID              int        `json:"id"`
	Code            string     `json:"code"`
	Number          int        `json:"number"`
	En              *string    `json:"en"`
	Fr              *string    `json:"fr"`
	Ar              *string    `json:"ar"`
	CenterLat       *float64   `json:"center_lat"`
	CenterLng       *float64   `json:"center_lng"`
	DefaultRadiusKm *float64   `json:"default_radius_km"`
	MinLat          *float64   `json:"min_lat"`
	MaxLat          *float64   `json:"max_lat"`
	MinLng          *float64   `json:"min_lng"`
	MaxLng          *float64   `json:"max_lng"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`

	ToiletsCount *int `json:"toilets_count,omitempty"`
}

// HasBBox reports whether all four bounding box columns are present.
func (w *Wilaya) HasBBox() bool {
	return w.MinLat != nil && w.MaxLat != nil && w.MinLng != nil && w.MaxLng != nil
}
