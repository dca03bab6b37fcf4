package handlers

import (
	"net/http"

	"toiletBack/internal/formatter"
	"toiletBack/internal/services"
)

type ToiletHandler struct {
	Service       *services.ToiletService
	ReviewService *services.ReviewService
}

// SearchToilets handles GET /toilets.
func (h *ToiletHandler) SearchToilets(w http.ResponseWriter, r *http.Request) {
	req := parseSearchRequest(r)

	result, err := h.Service.SearchToilets(r.Context(), req, viewerID(r))
	if err != nil {
		writeError(w, "SearchToilets", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":   result.Data,
		"meta":   result.Meta,
		"center": result.Center,
	})
}

// SearchMarkers handles GET /toilets-markers.
func (h *ToiletHandler) SearchMarkers(w http.ResponseWriter, r *http.Request) {
	req := parseSearchRequest(r)

	markers, meta, center, err := h.Service.SearchMarkers(r.Context(), req)
	if err != nil {
		writeError(w, "SearchMarkers", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":   markers,
		"meta":   meta,
		"center": center,
	})
}

// GetToiletByID handles GET /toilets/:id. The full field set with nulls
// and empty lists dropped by default; the projection params override.
func (h *ToiletHandler) GetToiletByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeBadRequest(w, "invalid toilet id")
		return
	}

	opts := formatter.Options{
		All:             true,
		Exclude:         qCSV(r, "exclude"),
		DropNulls:       true,
		DropEmptyArrays: true,
		Lang:            langParam(r),
	}
	if v := qBool(r, "drop_nulls"); v != nil {
		opts.DropNulls = *v
	}
	if v := qBool(r, "drop_empty_arrays"); v != nil {
		opts.DropEmptyArrays = *v
	}
	if include := append(append([]string{}, qCSV(r, "include")...), qCSV(r, "groups")...); len(include) > 0 {
		opts.All = false
		opts.Include = include
	}

	toilet, err := h.Service.GetToilet(r.Context(), id, identityFromContext(r), opts)
	if err != nil {
		writeError(w, "GetToiletByID", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": toilet})
}

// ListReviews handles GET /toilets/:id/reviews.
func (h *ToiletHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeBadRequest(w, "invalid toilet id")
		return
	}

	reviews, meta, err := h.ReviewService.ListReviews(r.Context(), id,
		intValue(qInt(r, "page")), intValue(qInt(r, "per_page")))
	if err != nil {
		writeError(w, "ListReviews", err)
		return
	}

	data := make([]interface{}, 0, len(reviews))
	for i := range reviews {
		data = append(data, formatter.ReviewMap(reviews[i].Row()))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": data, "meta": meta})
}
