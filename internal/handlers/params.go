package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"toiletBack/internal/models"
)

// Query parameter coercion is deliberately permissive: a filter that
// fails to parse is treated as absent instead of failing the request.
// Range and enum checks happen later in the service layer.

func qString(r *http.Request, name string) *string {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	return &raw
}

func qInt(r *http.Request, name string) *int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func qFloat(r *http.Request, name string) *float64 {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

func qBool(r *http.Request, name string) *bool {
	raw := strings.ToLower(strings.TrimSpace(r.URL.Query().Get(name)))
	if raw == "" {
		return nil
	}
	var v bool
	switch raw {
	case "1", "true", "yes", "on":
		v = true
	case "0", "false", "no", "off":
		v = false
	default:
		return nil
	}
	return &v
}

// qCSV splits a comma list, dropping empty items. Returns nil when the
// parameter is absent so callers can distinguish "not given" from "[]".
func qCSV(r *http.Request, name string) []string {
	if !r.URL.Query().Has(name) {
		return nil
	}
	var out []string
	for _, item := range strings.Split(r.URL.Query().Get(name), ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// formInt reads a positive integer from a parsed form body.
func formInt(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(r.FormValue(name)))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func pathInt(r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(":" + name)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// parseSearchRequest maps the listing search query string onto the
// request struct shared by the index, markers and favorites endpoints.
func parseSearchRequest(r *http.Request) models.ToiletSearchRequest {
	req := models.ToiletSearchRequest{
		WilayaID:     qInt(r, "wilaya_id"),
		Lat:          qFloat(r, "lat"),
		Lng:          qFloat(r, "lng"),
		RadiusKm:     qInt(r, "radius_km"),
		IsFree:       qBool(r, "is_free"),
		AccessMethod: qString(r, "access_method"),
		PricingModel: qString(r, "pricing_model"),
		MinRating:    qFloat(r, "min_rating"),
		Amenities:    qCSV(r, "amenities"),
		Include:      qCSV(r, "include"),
		Groups:       qCSV(r, "groups"),
		Exclude:      qCSV(r, "exclude"),
		Page:         intValue(qInt(r, "page")),
		PerPage:      intValue(qInt(r, "per_page")),
		UseBbox:      true,
		WithDistance: true,
		Lang:         langParam(r),
	}
	if v := qString(r, "sort"); v != nil {
		req.Sort = *v
	}
	if v := qString(r, "order"); v != nil {
		req.Order = *v
	}
	if v := qBool(r, "use_bbox"); v != nil {
		req.UseBbox = *v
	}
	if v := qBool(r, "with_distance"); v != nil {
		req.WithDistance = *v
	}
	if v := qBool(r, "drop_nulls"); v != nil {
		req.DropNulls = *v
	}
	if v := qBool(r, "drop_empty_arrays"); v != nil {
		req.DropEmptyArrays = *v
	}
	return req
}

// identityFromContext reads the claims the JWT middleware stored. The
// optional-auth chain leaves them unset for anonymous callers.
func identityFromContext(r *http.Request) *models.Claims {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		return nil
	}
	role, _ := r.Context().Value("role").(string)
	return &models.Claims{UserID: userID, Role: role}
}

func viewerID(r *http.Request) *int {
	if claims := identityFromContext(r); claims != nil {
		return &claims.UserID
	}
	return nil
}

func langParam(r *http.Request) string {
	if v := qString(r, "lang"); v != nil {
		switch *v {
		case "en", "fr", "ar":
			return *v
		}
	}
	return "fr"
}
