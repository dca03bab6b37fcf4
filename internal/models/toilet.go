package models

import (
	"time"

	"toiletBack/internal/formatter"
)

// Listing statuses.
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

var ToiletStatuses = []string{StatusPending, StatusActive, StatusSuspended}

var AccessMethods = []string{"public", "code", "staff", "key", "app"}

var PricingModels = []string{"flat", "per-visit", "per-30-min", "per-60-min"}

var ReportReasons = []string{"closed", "fake", "unsafe", "harassment", "other"}

type Toilet struct {
	ID           int        `json:"id"`
	OwnerID      *int       `json:"owner_id"`
	CategoryID   int        `json:"toilet_category_id"`
	WilayaID     *int       `json:"wilaya_id"`
	Name         string     `json:"name"`
	Description  *string    `json:"description"`
	PhoneNumbers []string   `json:"phone_numbers"`
	Lat          float64    `json:"lat"`
	Lng          float64    `json:"lng"`
	AddressLine  string     `json:"address_line"`
	PlaceHint    *string    `json:"place_hint"`
	AccessMethod string     `json:"access_method"`
	Capacity     int        `json:"capacity"`
	IsUnisex     bool       `json:"is_unisex"`
	Amenities    []string   `json:"amenities"`
	Rules        []string   `json:"rules"`
	IsFree       bool       `json:"is_free"`
	PriceCents   *int       `json:"price_cents"`
	PricingModel *string    `json:"pricing_model"`
	Status       string     `json:"status"`
	AvgRating    float64    `json:"avg_rating"`
	ReviewsCount int        `json:"reviews_count"`
	PhotosCount  int        `json:"photos_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`

	// Relations, populated only when eager-loaded by the repository.
	Category  *ToiletCategory  `json:"category,omitempty"`
	Wilaya    *Wilaya          `json:"wilaya,omitempty"`
	Owner     *OwnerRef        `json:"owner,omitempty"`
	Photos    []ToiletPhoto    `json:"photos,omitempty"`
	OpenHours []ToiletOpenHour `json:"open_hours,omitempty"`

	// Query-local columns bolted on by list queries; never persisted.
	DistanceKm     *float64   `json:"distance_km,omitempty"`
	CoverPhotoURL  *string    `json:"-"`
	IsFavoriteFlag *bool      `json:"-"`
	FavoritedAt    *time.Time `json:"-"`
}

// OwnerRef is the trimmed owner payload exposed on listings.
type OwnerRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Row flattens the listing into the loosely-typed record the projection
// layer consumes. Keys are only set for data that is actually present, so
// the formatter's has/hasn't distinction keeps working: unloaded relations
// stay absent, NULL columns are present with a nil value.
func (t *Toilet) Row() formatter.Row {
	row := formatter.Row{
		"id":                 t.ID,
		"toilet_category_id": t.CategoryID,
		"name":               t.Name,
		"lat":                t.Lat,
		"lng":                t.Lng,
		"address_line":       t.AddressLine,
		"access_method":      t.AccessMethod,
		"capacity":           t.Capacity,
		"is_unisex":          t.IsUnisex,
		"is_free":            t.IsFree,
		"status":             t.Status,
		"avg_rating":         t.AvgRating,
		"reviews_count":      t.ReviewsCount,
		"photos_count":       t.PhotosCount,
		"created_at":         t.CreatedAt,
		"phone_numbers":      t.PhoneNumbers,
		"amenities":          t.Amenities,
		"rules":              t.Rules,
	}

	row["owner_id"] = intPtrValue(t.OwnerID)
	if t.WilayaID != nil {
		row["wilaya_id"] = *t.WilayaID
	}
	row["description"] = strPtrValue(t.Description)
	row["place_hint"] = strPtrValue(t.PlaceHint)
	row["price_cents"] = intPtrValue(t.PriceCents)
	row["pricing_model"] = strPtrValue(t.PricingModel)
	if t.UpdatedAt != nil {
		row["updated_at"] = *t.UpdatedAt
	} else {
		row["updated_at"] = nil
	}

	if t.CoverPhotoURL != nil {
		row["cover_photo_url"] = *t.CoverPhotoURL
	}
	if t.IsFavoriteFlag != nil {
		row["is_favorite"] = *t.IsFavoriteFlag
	}

	if t.Category != nil {
		row["category"] = t.Category.Row()
	}
	if t.Wilaya != nil {
		row["wilaya"] = t.Wilaya.Row()
	}
	if t.Owner != nil {
		row["owner"] = formatter.Row{"id": t.Owner.ID, "name": t.Owner.Name}
	}
	if t.Photos != nil {
		photos := make([]formatter.Row, 0, len(t.Photos))
		for i := range t.Photos {
			photos = append(photos, t.Photos[i].Row())
		}
		row["photos"] = photos
	}
	if t.OpenHours != nil {
		hours := make([]formatter.Row, 0, len(t.OpenHours))
		for i := range t.OpenHours {
			hours = append(hours, t.OpenHours[i].Row())
		}
		row["open_hours"] = hours
	}

	return row
}

func (c *ToiletCategory) Row() formatter.Row {
	return formatter.Row{
		"id":         c.ID,
		"code":       c.Code,
		"icon":       strPtrValue(c.Icon),
		"en":         strPtrValue(c.En),
		"fr":         strPtrValue(c.Fr),
		"ar":         strPtrValue(c.Ar),
		"created_at": c.CreatedAt,
		"updated_at": timePtrValue(c.UpdatedAt),
	}
}

func (w *Wilaya) Row() formatter.Row {
	row := formatter.Row{
		"id":         w.ID,
		"code":       w.Code,
		"number":     w.Number,
		"en":         strPtrValue(w.En),
		"fr":         strPtrValue(w.Fr),
		"ar":         strPtrValue(w.Ar),
		"created_at": w.CreatedAt,
		"updated_at": timePtrValue(w.UpdatedAt),
	}
	if w.CenterLat != nil {
		row["center_lat"] = *w.CenterLat
	}
	if w.CenterLng != nil {
		row["center_lng"] = *w.CenterLng
	}
	if w.DefaultRadiusKm != nil {
		row["default_radius_km"] = *w.DefaultRadiusKm
	}
	if w.MinLat != nil {
		row["min_lat"] = *w.MinLat
	}
	if w.MaxLat != nil {
		row["max_lat"] = *w.MaxLat
	}
	if w.MinLng != nil {
		row["min_lng"] = *w.MinLng
	}
	if w.MaxLng != nil {
		row["max_lng"] = *w.MaxLng
	}
	return row
}

func intPtrValue(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func strPtrValue(p *string) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func timePtrValue(p *time.Time) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

// ToiletMarker is the lightweight row returned by the map-pin endpoint.
type ToiletMarker struct {
	ID         int      `json:"id"`
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	IsFree     bool     `json:"is_free"`
	DistanceKm *float64 `json:"distance_km"`
}

// SearchCenter is a fully resolved search origin.
type SearchCenter struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	RadiusKm int     `json:"radius_km"`
}

// ToiletSearchRequest holds the normalized query parameters of a listing
// search. Optional filters are pointers so "absent" and "explicit zero
// value" stay distinct through center resolution.
type ToiletSearchRequest struct {
	WilayaID     *int
	Lat          *float64
	Lng          *float64
	RadiusKm     *int
	UseBbox      bool
	IsFree       *bool
	AccessMethod *string
	PricingModel *string
	MinRating    *float64
	Amenities    []string
	Page         int
	PerPage      int
	Sort         string
	Order        string
	WithDistance bool

	// Projection controls, passed through to the formatter. Include
	// doubles as the relation eager-load list; absent means the full
	// field set with the default relations.
	Include         []string
	Groups          []string
	Exclude         []string
	DropNulls       bool
	DropEmptyArrays bool
	Lang            string
}

type ToiletMutateRequest struct {
	CategoryID   *int      `json:"toilet_category_id"`
	Name         *string   `json:"name"`
	Description  *string   `json:"description"`
	PhoneNumbers []string  `json:"phone_numbers"`
	Lat          *float64  `json:"lat"`
	Lng          *float64  `json:"lng"`
	AddressLine  *string   `json:"address_line"`
	WilayaID     *int      `json:"wilaya_id"`
	PlaceHint    *string   `json:"place_hint"`
	AccessMethod *string   `json:"access_method"`
	Capacity     *int      `json:"capacity"`
	IsUnisex     *bool     `json:"is_unisex"`
	Amenities    []string  `json:"amenities"`
	Rules        []string  `json:"rules"`
	IsFree       *bool     `json:"is_free"`
	PriceCents   *int      `json:"price_cents"`
	PricingModel *string   `json:"pricing_model"`
}

type SearchMeta struct {
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
	Total   int `json:"total"`
}
