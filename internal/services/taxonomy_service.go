package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"toiletBack/internal/catalog"
	"toiletBack/internal/models"
	"toiletBack/internal/repositories"
)

// TaxonomyService serves the reference data the clients render filters
// from: wilayas, categories and the fixed catalogs. Responses can be
// cached in redis when a client is wired in; with no client every call
// goes straight to the source.
type TaxonomyService struct {
	WilayaRepo   *repositories.WilayaRepository
	CategoryRepo *repositories.CategoryRepository
	Cache        *redis.Client
	CacheTTL     time.Duration
}

var TaxonomyTypes = []string{"wilayas", "categories", "access_methods", "amenities", "rules", "all"}

type TaxonomyRequest struct {
	Type       string
	Query      string
	WithCounts bool
	Lang       string
}

// GetTaxonomy assembles the requested slice of reference data.
func (s *TaxonomyService) GetTaxonomy(ctx context.Context, req TaxonomyRequest) (map[string]interface{}, error) {
	if !contains(TaxonomyTypes, req.Type) {
		v := models.NewValidationError()
		v.Add("type", "must be one of: "+strings.Join(TaxonomyTypes, ", "))
		return nil, v
	}

	cacheKey := fmt.Sprintf("taxonomy:%s:%s:%t:%s", req.Type, req.Query, req.WithCounts, req.Lang)
	if cached, ok := s.cacheGet(ctx, cacheKey); ok {
		return cached, nil
	}

	out := map[string]interface{}{}

	if req.Type == "wilayas" || req.Type == "all" {
		wilayas, err := s.WilayaRepo.ListWilayas(ctx, req.Query, req.WithCounts)
		if err != nil {
			return nil, err
		}
		if wilayas == nil {
			wilayas = []models.Wilaya{}
		}
		out["wilayas"] = wilayas
	}
	if req.Type == "categories" || req.Type == "all" {
		categories, err := s.CategoryRepo.GetAllCategories(ctx)
		if err != nil {
			return nil, err
		}
		if categories == nil {
			categories = []models.ToiletCategory{}
		}
		out["categories"] = categories
	}
	if req.Type == "access_methods" || req.Type == "all" {
		out["access_methods"] = labeledEntries(catalog.AccessMethodEntries, req.Lang, catalog.AccessMethodLabel)
	}
	if req.Type == "amenities" || req.Type == "all" {
		out["amenities"] = labeledEntries(catalog.Amenities, req.Lang, catalog.AmenityLabel)
	}
	if req.Type == "rules" || req.Type == "all" {
		out["rules"] = labeledEntries(catalog.Rules, req.Lang, catalog.RuleLabel)
	}

	s.cacheSet(ctx, cacheKey, out)
	return out, nil
}

func labeledEntries(entries []catalog.Entry, lang string, label func(code, lang string) string) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		item := map[string]interface{}{
			"code":  e.Code,
			"icon":  e.Icon,
			"label": label(e.Code, lang),
			"en":    e.En,
			"fr":    e.Fr,
			"ar":    e.Ar,
		}
		out = append(out, item)
	}
	return out
}

func (s *TaxonomyService) cacheGet(ctx context.Context, key string) (map[string]interface{}, bool) {
	if s.Cache == nil {
		return nil, false
	}
	raw, err := s.Cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return out, true
}

func (s *TaxonomyService) cacheSet(ctx context.Context, key string, value map[string]interface{}) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	s.Cache.Set(ctx, key, raw, ttl)
}
