package handlers

import (
	"net/http"
	"strings"

	"toiletBack/internal/services"
)

type TaxonomyHandler struct {
	Service *services.TaxonomyService
}

// GetTaxonomy handles GET /taxonomy. The type parameter is mandatory;
// without it the client gets the list of valid options back.
func (h *TaxonomyHandler) GetTaxonomy(w http.ResponseWriter, r *http.Request) {
	typ := qString(r, "type")
	if typ == nil {
		writeBadRequest(w, "type is required; options: "+strings.Join(services.TaxonomyTypes, ", "))
		return
	}

	req := services.TaxonomyRequest{
		Type: *typ,
		Lang: langParam(r),
	}
	if v := qString(r, "q"); v != nil {
		req.Query = *v
	}
	if v := qBool(r, "with_counts"); v != nil {
		req.WithCounts = *v
	}

	out, err := h.Service.GetTaxonomy(r.Context(), req)
	if err != nil {
		writeError(w, "GetTaxonomy", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": out})
}
