package services

import (
	"context"
	"strconv"
	"strings"

	"toiletBack/internal/formatter"
	"toiletBack/internal/geo"
	"toiletBack/internal/models"
	"toiletBack/internal/repositories"
)

type ToiletService struct {
	ToiletRepo *repositories.ToiletRepository
	WilayaRepo *repositories.WilayaRepository
}

// defaultRelations is what a search response eager-loads when the
// caller does not ask for anything specific.
var defaultRelations = []string{"category", "wilaya", "owner", "photos", "open_hours"}

var searchSorts = map[string]bool{
	"distance":      true,
	"avg_rating":    true,
	"reviews_count": true,
	"created_at":    true,
}

type ToiletSearchResult struct {
	Data   []*formatter.Map
	Meta   models.SearchMeta
	Center *models.SearchCenter
}

// SearchToilets is the public listing search: validate, resolve the
// center, query, then project each row.
func (s *ToiletService) SearchToilets(ctx context.Context, req models.ToiletSearchRequest, viewerID *int) (ToiletSearchResult, error) {
	if err := validateSearchRequest(req, 100); err != nil {
		return ToiletSearchResult{}, err
	}

	center, wilaya, err := resolveCenter(ctx, s.WilayaRepo, req)
	if err != nil {
		return ToiletSearchResult{}, err
	}

	status := models.StatusActive
	query := repositories.ToiletSearchQuery{
		Center:       center,
		Box:          resolveBox(req, center, wilaya),
		Status:       &status,
		IsFree:       req.IsFree,
		AccessMethod: req.AccessMethod,
		PricingModel: req.PricingModel,
		MinRating:    req.MinRating,
		Amenities:    req.Amenities,
		ViewerID:     viewerID,
	}
	query.Sort, query.Order = resolveSort(req.Sort, req.Order, center != nil, "created_at")
	query.Limit, query.Offset = pageWindow(req.Page, req.PerPage, 20)

	toilets, total, err := s.ToiletRepo.SearchToilets(ctx, query)
	if err != nil {
		return ToiletSearchResult{}, err
	}
	if err := s.ToiletRepo.LoadToiletRelations(ctx, toilets, searchRelations(req)); err != nil {
		return ToiletSearchResult{}, err
	}

	opts := projectionOptions(req)
	data := make([]*formatter.Map, 0, len(toilets))
	for i := range toilets {
		data = append(data, projectToilet(&toilets[i], opts, center != nil))
	}

	return ToiletSearchResult{
		Data:   data,
		Meta:   models.SearchMeta{Page: pageOf(req.Page), PerPage: perPageOf(req.PerPage, 20, 100), Total: total},
		Center: center,
	}, nil
}

// SearchMarkers is the map-pin variant: bigger pages, no projection.
func (s *ToiletService) SearchMarkers(ctx context.Context, req models.ToiletSearchRequest) ([]models.ToiletMarker, models.SearchMeta, *models.SearchCenter, error) {
	if err := validateSearchRequest(req, 1000); err != nil {
		return nil, models.SearchMeta{}, nil, err
	}

	center, wilaya, err := resolveCenter(ctx, s.WilayaRepo, req)
	if err != nil {
		return nil, models.SearchMeta{}, nil, err
	}

	queryCenter := center
	if !req.WithDistance {
		queryCenter = nil
	}

	status := models.StatusActive
	query := repositories.ToiletSearchQuery{
		Center:       queryCenter,
		Box:          resolveBox(req, center, wilaya),
		Status:       &status,
		IsFree:       req.IsFree,
		AccessMethod: req.AccessMethod,
		PricingModel: req.PricingModel,
		MinRating:    req.MinRating,
		Amenities:    req.Amenities,
	}
	query.Sort, query.Order = resolveSort(req.Sort, req.Order, queryCenter != nil, "created_at")
	query.Limit, query.Offset = pageWindow(req.Page, req.PerPage, 500)

	markers, total, err := s.ToiletRepo.SearchMarkers(ctx, query)
	if err != nil {
		return nil, models.SearchMeta{}, nil, err
	}
	if markers == nil {
		markers = []models.ToiletMarker{}
	}

	meta := models.SearchMeta{Page: pageOf(req.Page), PerPage: perPageOf(req.PerPage, 500, 1000), Total: total}
	return markers, meta, center, nil
}

// GetToilet returns one listing fully projected. Listings that are not
// active stay hidden from everyone but their owner and admins.
func (s *ToiletService) GetToilet(ctx context.Context, id int, viewer *models.Claims, opts formatter.Options) (*formatter.Map, error) {
	var viewerID *int
	if viewer != nil {
		viewerID = &viewer.UserID
	}

	toilet, err := s.ToiletRepo.GetToiletByID(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	if toilet.Status != models.StatusActive && !canManageToilet(viewer, &toilet) {
		return nil, models.ErrForbidden
	}

	batch := []models.Toilet{toilet}
	if err := s.ToiletRepo.LoadToiletRelations(ctx, batch, relationLoadSet([]string{"all"})); err != nil {
		return nil, err
	}
	return projectToilet(&batch[0], opts, false), nil
}

// projectionOptions builds the per-row projection from the request. An
// absent include list means the full field set; an explicit one is the
// caller's field selection, with group tokens expanding inside the
// formatter.
func projectionOptions(req models.ToiletSearchRequest) formatter.Options {
	opts := formatter.Options{
		Exclude:         req.Exclude,
		DropNulls:       req.DropNulls,
		DropEmptyArrays: req.DropEmptyArrays,
		Lang:            req.Lang,
	}
	include := append(append([]string{}, req.Include...), req.Groups...)
	if len(include) == 0 {
		opts.All = true
	} else {
		opts.Include = include
	}
	return opts
}

// searchRelations picks the eager loads: the caller's include tokens
// when given, the default relation set otherwise.
func searchRelations(req models.ToiletSearchRequest) map[string]bool {
	if req.Include == nil && req.Groups == nil {
		return relationLoadSet(defaultRelations)
	}
	return relationLoadSet(append(append([]string{}, req.Include...), req.Groups...))
}

// projectToilet runs the projection and then overlays the query-local
// columns on top, so they can never be filtered away by an include list.
func projectToilet(t *models.Toilet, opts formatter.Options, withDistance bool) *formatter.Map {
	out := formatter.Toilet(t.Row(), opts)

	if withDistance {
		if t.DistanceKm != nil {
			out.Set("distance_km", *t.DistanceKm)
		} else {
			out.Set("distance_km", nil)
		}
	}
	if t.FavoritedAt != nil {
		out.Set("favorited_at", t.FavoritedAt.UTC().Format("2006-01-02T15:04:05Z07:00"))
	}
	return out
}

// resolveCenter turns the request into a concrete search origin.
// Explicit coordinates win field by field over the wilaya's defaults; a
// missing wilaya is a hard error, a request with no origin at all just
// yields no center. Shared by the index and the favorites endpoint.
func resolveCenter(ctx context.Context, wilayas *repositories.WilayaRepository, req models.ToiletSearchRequest) (*models.SearchCenter, *models.Wilaya, error) {
	var wilaya *models.Wilaya
	if req.WilayaID != nil {
		w, err := wilayas.GetWilayaByID(ctx, *req.WilayaID)
		if err != nil {
			return nil, nil, err
		}
		wilaya = &w
	}
	return mergeCenter(req, wilaya), wilaya, nil
}

func mergeCenter(req models.ToiletSearchRequest, wilaya *models.Wilaya) *models.SearchCenter {
	lat := req.Lat
	lng := req.Lng
	if wilaya != nil {
		if lat == nil {
			lat = wilaya.CenterLat
		}
		if lng == nil {
			lng = wilaya.CenterLng
		}
	}
	if lat == nil || lng == nil {
		return nil
	}

	radius := 25
	if req.RadiusKm != nil {
		radius = *req.RadiusKm
	} else if wilaya != nil && wilaya.DefaultRadiusKm != nil {
		radius = int(*wilaya.DefaultRadiusKm)
	}

	return &models.SearchCenter{Lat: *lat, Lng: *lng, RadiusKm: radius}
}

// resolveBox picks the bbox prefilter: the wilaya's stored box when the
// caller opted in and it exists, otherwise a box synthesized around the
// center.
func resolveBox(req models.ToiletSearchRequest, center *models.SearchCenter, wilaya *models.Wilaya) *geo.Box {
	if req.UseBbox && wilaya != nil && wilaya.HasBBox() {
		return &geo.Box{
			MinLat: *wilaya.MinLat, MaxLat: *wilaya.MaxLat,
			MinLng: *wilaya.MinLng, MaxLng: *wilaya.MaxLng,
		}
	}
	if center != nil {
		box := geo.BoundingBox(center.Lat, center.Lng, float64(center.RadiusKm))
		return &box
	}
	return nil
}

// resolveSort applies the endpoint's allow-list. A sort the endpoint
// does not know, or distance without a center, silently falls back
// rather than failing the request. extra admits endpoint-specific sorts
// like the favorites listing's favorited_at.
func resolveSort(sort, order string, hasCenter bool, fallback string, extra ...string) (string, string) {
	sort = strings.ToLower(strings.TrimSpace(sort))
	order = strings.ToLower(strings.TrimSpace(order))

	if sort == "" {
		if hasCenter {
			sort = "distance"
		} else {
			sort = fallback
		}
	}
	if !searchSorts[sort] && !contains(extra, sort) {
		sort = fallback
	}
	if sort == "distance" && !hasCenter {
		sort = fallback
	}

	if order != "asc" && order != "desc" {
		switch sort {
		case "distance":
			order = "asc"
		default:
			order = "desc"
		}
	}
	return sort, order
}

func validateSearchRequest(req models.ToiletSearchRequest, maxPerPage int) error {
	v := models.NewValidationError()

	if req.Lat != nil && (*req.Lat < -90 || *req.Lat > 90) {
		v.Add("lat", "must be between -90 and 90")
	}
	if req.Lng != nil && (*req.Lng < -180 || *req.Lng > 180) {
		v.Add("lng", "must be between -180 and 180")
	}
	if req.RadiusKm != nil && (*req.RadiusKm < 1 || *req.RadiusKm > 200) {
		v.Add("radius_km", "must be between 1 and 200")
	}
	if req.MinRating != nil && (*req.MinRating < 0 || *req.MinRating > 5) {
		v.Add("min_rating", "must be between 0 and 5")
	}
	if req.AccessMethod != nil && !contains(models.AccessMethods, *req.AccessMethod) {
		v.Add("access_method", "must be one of: "+strings.Join(models.AccessMethods, ", "))
	}
	if req.PricingModel != nil && !contains(models.PricingModels, *req.PricingModel) {
		v.Add("pricing_model", "must be one of: "+strings.Join(models.PricingModels, ", "))
	}
	if req.Page < 0 {
		v.Add("page", "must be a positive integer")
	}
	if req.PerPage < 0 || req.PerPage > maxPerPage {
		v.Add("per_page", "must be between 1 and "+strconv.Itoa(maxPerPage))
	}

	if v.HasErrors() {
		return v
	}
	return nil
}

// relationLoadSet decides which relations to fetch for an include list.
// Group and wildcard tokens expand the same way the projection resolves
// them, so nothing gets loaded that will not be emitted.
func relationLoadSet(include []string) map[string]bool {
	relations := []string{"category", "wilaya", "owner", "photos", "open_hours"}
	out := map[string]bool{}
	for _, token := range include {
		switch token {
		case "all", "*", "everything", "relations":
			for _, rel := range relations {
				out[rel] = true
			}
			return out
		}
		for _, rel := range relations {
			if token == rel {
				out[rel] = true
			}
		}
	}
	return out
}

func pageWindow(page, perPage, defaultPerPage int) (limit, offset int) {
	p := pageOf(page)
	pp := perPageOf(perPage, defaultPerPage, 0)
	return pp, (p - 1) * pp
}

func pageOf(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func perPageOf(perPage, fallback, max int) int {
	if perPage < 1 {
		return fallback
	}
	if max > 0 && perPage > max {
		return max
	}
	return perPage
}

func canManageToilet(viewer *models.Claims, t *models.Toilet) bool {
	if viewer == nil {
		return false
	}
	if viewer.Role == "admin" {
		return true
	}
	return t.OwnerID != nil && *t.OwnerID == viewer.UserID
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

