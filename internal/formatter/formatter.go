package formatter

import (
	"reflect"

	"toiletBack/internal/catalog"
)

// Toilet projects a listing row into an ordered payload. Fields are
// only computed when the include resolution wants them, relations only
// when the row actually carries them, and the drop options run last over
// the assembled map.
func Toilet(row Row, opts Options) *Map {
	inc := resolveIncludes(opts)
	out := NewMap()

	put := func(field string, value func() interface{}) {
		if inc.want(field) {
			out.Set(field, value())
		}
	}
	putLoaded := func(field string, value func() interface{}) {
		if row.Has(field) && inc.want(field) {
			out.Set(field, value())
		}
	}

	put("id", func() interface{} { return ToInt(row.Get("id"), 0) })
	put("owner_id", func() interface{} {
		if n, ok := ToIntOrNil(row.Get("owner_id")); ok {
			return n
		}
		return nil
	})
	put("toilet_category_id", func() interface{} { return ToInt(row.Get("toilet_category_id"), 0) })
	put("name", func() interface{} { return NullableString(row.Get("name")) })
	put("description", func() interface{} { return NullableString(row.Get("description")) })
	put("phone_numbers", func() interface{} { return ToStringList(row.Get("phone_numbers")) })
	put("lat", func() interface{} { return ToFloat(row.Get("lat"), 0) })
	put("lng", func() interface{} { return ToFloat(row.Get("lng"), 0) })
	put("address_line", func() interface{} { return NullableString(row.Get("address_line")) })
	put("wilaya_id", func() interface{} {
		if n, ok := ToIntOrNil(row.Get("wilaya_id")); ok {
			return n
		}
		return nil
	})
	put("place_hint", func() interface{} { return NullableString(row.Get("place_hint")) })
	put("access_method", func() interface{} { return NullableString(row.Get("access_method")) })
	put("capacity", func() interface{} { return ToInt(row.Get("capacity"), 1) })
	put("is_unisex", func() interface{} { return ToBool(row.Get("is_unisex")) })
	put("amenities", func() interface{} { return ToStringList(row.Get("amenities")) })
	put("amenities_meta", func() interface{} {
		return amenityMeta(ToStringList(row.Get("amenities")), opts.Lang)
	})
	put("rules", func() interface{} { return ToStringList(row.Get("rules")) })
	put("rules_meta", func() interface{} {
		return ruleMeta(ToStringList(row.Get("rules")), opts.Lang)
	})
	put("is_free", func() interface{} { return ToBool(row.Get("is_free")) })
	put("price_cents", func() interface{} {
		if n, ok := ToIntOrNil(row.Get("price_cents")); ok {
			return n
		}
		return nil
	})
	put("pricing_model", func() interface{} { return NullableString(row.Get("pricing_model")) })
	put("status", func() interface{} { return NullableString(row.Get("status")) })
	put("avg_rating", func() interface{} { return roundedFloat(ToFloat(row.Get("avg_rating"), 0)) })
	put("reviews_count", func() interface{} { return ToInt(row.Get("reviews_count"), 0) })
	put("photos_count", func() interface{} { return ToInt(row.Get("photos_count"), 0) })
	put("created_at", func() interface{} { return isoTime(row.Get("created_at")) })
	put("updated_at", func() interface{} { return isoTime(row.Get("updated_at")) })
	put("cover_photo", func() interface{} { return coverPhoto(row) })

	putLoaded("category", func() interface{} { return Category(asRow(row.Get("category"))) })
	putLoaded("wilaya", func() interface{} { return Wilaya(asRow(row.Get("wilaya"))) })
	putLoaded("owner", func() interface{} { return UserRef(asRow(row.Get("owner"))) })
	putLoaded("photos", func() interface{} {
		rows := asRows(row.Get("photos"))
		out := make([]*Map, 0, len(rows))
		for _, p := range rows {
			out = append(out, Photo(p))
		}
		return out
	})
	putLoaded("open_hours", func() interface{} {
		rows := asRows(row.Get("open_hours"))
		out := make([]*Map, 0, len(rows))
		for _, h := range rows {
			out = append(out, OpenHour(h))
		}
		return out
	})
	putLoaded("is_favorite", func() interface{} { return ToBool(row.Get("is_favorite")) })

	finalize(out, opts)
	return out
}

// coverPhoto resolves the thumbnail: an explicit cover column wins, then
// the cover-flagged photo in the loaded collection, then the first loaded
// photo, then null.
func coverPhoto(row Row) interface{} {
	if row.Has("cover_photo") {
		return NullableString(row.Get("cover_photo"))
	}
	if row.Has("cover_photo_url") {
		return NullableString(row.Get("cover_photo_url"))
	}
	if !row.Has("photos") {
		return nil
	}
	photos := asRows(row.Get("photos"))
	for _, p := range photos {
		if ToBool(p.Get("is_cover")) {
			return NullableString(p.Get("url"))
		}
	}
	if len(photos) > 0 {
		return NullableString(photos[0].Get("url"))
	}
	return nil
}

func amenityMeta(codes []string, lang string) []*Map {
	out := make([]*Map, 0, len(codes))
	for _, code := range codes {
		m := NewMap()
		m.Set("code", code)
		if e, ok := catalog.AmenityEntry(code); ok && e.Icon != nil {
			m.Set("icon", *e.Icon)
		} else {
			m.Set("icon", nil)
		}
		m.Set("label", catalog.AmenityLabel(code, lang))
		out = append(out, m)
	}
	return out
}

func ruleMeta(codes []string, lang string) []*Map {
	out := make([]*Map, 0, len(codes))
	for _, code := range codes {
		m := NewMap()
		m.Set("code", code)
		m.Set("label", catalog.RuleLabel(code, lang))
		out = append(out, m)
	}
	return out
}

// Category renders a category row in full.
func Category(row Row) *Map {
	out := NewMap()
	out.Set("id", ToInt(row.Get("id"), 0))
	out.Set("code", NullableString(row.Get("code")))
	out.Set("icon", NullableString(row.Get("icon")))
	out.Set("en", NullableString(row.Get("en")))
	out.Set("fr", NullableString(row.Get("fr")))
	out.Set("ar", NullableString(row.Get("ar")))
	out.Set("created_at", isoTime(row.Get("created_at")))
	out.Set("updated_at", isoTime(row.Get("updated_at")))
	return out
}

func Wilaya(row Row) *Map {
	out := NewMap()
	out.Set("id", ToInt(row.Get("id"), 0))
	out.Set("code", NullableString(row.Get("code")))
	out.Set("number", ToInt(row.Get("number"), 0))
	out.Set("en", NullableString(row.Get("en")))
	out.Set("fr", NullableString(row.Get("fr")))
	out.Set("ar", NullableString(row.Get("ar")))
	for _, key := range []string{"center_lat", "center_lng", "default_radius_km", "min_lat", "max_lat", "min_lng", "max_lng", "toilets_count"} {
		if row.Has(key) {
			out.Set(key, row.Get(key))
		}
	}
	out.Set("created_at", isoTime(row.Get("created_at")))
	out.Set("updated_at", isoTime(row.Get("updated_at")))
	return out
}

// UserRef renders the trimmed author/owner reference.
func UserRef(row Row) *Map {
	out := NewMap()
	out.Set("id", ToInt(row.Get("id"), 0))
	out.Set("name", NullableString(row.Get("name")))
	return out
}

func Photo(row Row) *Map {
	out := NewMap()
	out.Set("id", ToInt(row.Get("id"), 0))
	out.Set("toilet_id", ToInt(row.Get("toilet_id"), 0))
	out.Set("url", NullableString(row.Get("url")))
	out.Set("is_cover", ToBool(row.Get("is_cover")))
	out.Set("created_at", isoTime(row.Get("created_at")))
	return out
}

func OpenHour(row Row) *Map {
	out := NewMap()
	out.Set("id", ToInt(row.Get("id"), 0))
	out.Set("toilet_id", ToInt(row.Get("toilet_id"), 0))
	out.Set("day_of_week", ToInt(row.Get("day_of_week"), 0))
	out.Set("sequence", ToInt(row.Get("sequence"), 0))
	out.Set("opens_at", NullableString(row.Get("opens_at")))
	out.Set("closes_at", NullableString(row.Get("closes_at")))
	out.Set("is_closed", ToBool(row.Get("is_closed")))
	return out
}

func ReviewMap(row Row) *Map {
	out := NewMap()
	out.Set("id", ToInt(row.Get("id"), 0))
	out.Set("toilet_id", ToInt(row.Get("toilet_id"), 0))
	out.Set("user_id", ToInt(row.Get("user_id"), 0))
	out.Set("rating", ToInt(row.Get("rating"), 0))
	out.Set("text", NullableString(row.Get("text")))
	for _, key := range []string{"cleanliness", "smell", "stock"} {
		if n, ok := ToIntOrNil(row.Get(key)); ok {
			out.Set(key, n)
		} else {
			out.Set(key, nil)
		}
	}
	out.Set("created_at", isoTime(row.Get("created_at")))
	out.Set("updated_at", isoTime(row.Get("updated_at")))
	if row.Has("author_name") {
		out.Set("author_name", NullableString(row.Get("author_name")))
	}
	if row.Has("user") {
		out.Set("user", UserRef(asRow(row.Get("user"))))
	}
	return out
}

func ReportMap(row Row) *Map {
	out := NewMap()
	out.Set("id", ToInt(row.Get("id"), 0))
	out.Set("toilet_id", ToInt(row.Get("toilet_id"), 0))
	if n, ok := ToIntOrNil(row.Get("user_id")); ok {
		out.Set("user_id", n)
	} else {
		out.Set("user_id", nil)
	}
	out.Set("reason", NullableString(row.Get("reason")))
	out.Set("details", NullableString(row.Get("details")))
	out.Set("status", NullableString(row.Get("status")))
	out.Set("resolved_at", isoTime(row.Get("resolved_at")))
	out.Set("created_at", isoTime(row.Get("created_at")))
	return out
}

func SessionMap(row Row, opts Options) *Map {
	out := NewMap()
	out.Set("id", ToInt(row.Get("id"), 0))
	out.Set("toilet_id", ToInt(row.Get("toilet_id"), 0))
	out.Set("user_id", ToInt(row.Get("user_id"), 0))
	out.Set("started_at", isoTime(row.Get("started_at")))
	out.Set("ended_at", isoTime(row.Get("ended_at")))
	out.Set("start_method", NullableString(row.Get("start_method")))
	out.Set("end_method", NullableString(row.Get("end_method")))
	if n, ok := ToIntOrNil(row.Get("charge_cents")); ok {
		out.Set("charge_cents", n)
	} else {
		out.Set("charge_cents", nil)
	}
	out.Set("created_at", isoTime(row.Get("created_at")))
	if row.Has("toilet") {
		out.Set("toilet", Toilet(asRow(row.Get("toilet")), opts))
	}
	return out
}

func asRow(v interface{}) Row {
	switch r := v.(type) {
	case Row:
		return r
	case map[string]interface{}:
		return Row(r)
	}
	return Row{}
}

func asRows(v interface{}) []Row {
	switch list := v.(type) {
	case []Row:
		return list
	case []interface{}:
		out := make([]Row, 0, len(list))
		for _, item := range list {
			out = append(out, asRow(item))
		}
		return out
	}
	return nil
}

func finalize(out *Map, opts Options) {
	if !opts.DropNulls && !opts.DropEmptyArrays {
		return
	}
	for _, key := range out.Keys() {
		v, _ := out.Get(key)
		if opts.DropNulls && v == nil {
			out.Delete(key)
			continue
		}
		if opts.DropEmptyArrays && isEmptyList(v) {
			out.Delete(key)
		}
	}
}

func isEmptyList(v interface{}) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Slice && rv.Len() == 0
}
