package services

import (
	"context"
	"strconv"
	"strings"

	"toiletBack/internal/formatter"
	"toiletBack/internal/models"
	"toiletBack/internal/repositories"
)

// HostService covers the owner-side listing management.
type HostService struct {
	ToiletRepo   *repositories.ToiletRepository
	CategoryRepo *repositories.CategoryRepository
	WilayaRepo   *repositories.WilayaRepository
	PhotoRepo    *repositories.PhotoRepository
	UserRepo     *repositories.UserRepository
}

// Me returns the host's profile with a per-status count of their
// listings for the dashboard header.
func (s *HostService) Me(ctx context.Context, userID int) (models.User, map[string]int, error) {
	user, err := s.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, nil, err
	}
	counts, err := s.ToiletRepo.CountOwnToiletsByStatus(ctx, userID)
	if err != nil {
		return models.User{}, nil, err
	}
	return user, counts, nil
}

// ListOwnToilets returns every listing of the host regardless of status,
// newest first.
func (s *HostService) ListOwnToilets(ctx context.Context, ownerID, page, perPage int) (ToiletSearchResult, error) {
	query := repositories.ToiletSearchQuery{OwnerID: &ownerID}
	query.Sort, query.Order = "id", "desc"
	query.Limit, query.Offset = pageWindow(page, perPage, 20)

	toilets, total, err := s.ToiletRepo.SearchToilets(ctx, query)
	if err != nil {
		return ToiletSearchResult{}, err
	}
	if err := s.ToiletRepo.LoadToiletRelations(ctx, toilets, relationLoadSet(defaultRelations)); err != nil {
		return ToiletSearchResult{}, err
	}

	opts := formatter.Options{All: true}
	data := make([]*formatter.Map, 0, len(toilets))
	for i := range toilets {
		data = append(data, projectToilet(&toilets[i], opts, false))
	}
	return ToiletSearchResult{
		Data: data,
		Meta: models.SearchMeta{Page: pageOf(page), PerPage: perPageOf(perPage, 20, 100), Total: total},
	}, nil
}

// GetOwnToilet returns one of the host's listings fully loaded,
// whatever its status.
func (s *HostService) GetOwnToilet(ctx context.Context, actor models.Claims, id int, lang string) (*formatter.Map, error) {
	toilet, err := s.ToiletRepo.GetToiletByID(ctx, id, nil)
	if err != nil {
		return nil, err
	}
	if !canManageToilet(&actor, &toilet) {
		return nil, models.ErrForbidden
	}

	batch := []models.Toilet{toilet}
	if err := s.ToiletRepo.LoadToiletRelations(ctx, batch, relationLoadSet([]string{"all"})); err != nil {
		return nil, err
	}

	opts := formatter.Options{All: true, DropNulls: true, DropEmptyArrays: true, Lang: lang}
	return projectToilet(&batch[0], opts, false), nil
}

// CreateToilet validates and stores a new listing; it always starts in
// pending until an admin activates it.
func (s *HostService) CreateToilet(ctx context.Context, ownerID int, req models.ToiletMutateRequest) (models.Toilet, error) {
	if err := s.validateMutation(ctx, req, true); err != nil {
		return models.Toilet{}, err
	}

	t := models.Toilet{
		OwnerID:      &ownerID,
		CategoryID:   *req.CategoryID,
		WilayaID:     req.WilayaID,
		Name:         strings.TrimSpace(*req.Name),
		Description:  req.Description,
		PhoneNumbers: req.PhoneNumbers,
		Lat:          *req.Lat,
		Lng:          *req.Lng,
		AddressLine:  strings.TrimSpace(*req.AddressLine),
		PlaceHint:    req.PlaceHint,
		AccessMethod: *req.AccessMethod,
		Capacity:     1,
		Amenities:    req.Amenities,
		Rules:        req.Rules,
		Status:       models.StatusPending,
	}
	if req.Capacity != nil {
		t.Capacity = *req.Capacity
	}
	if req.IsUnisex != nil {
		t.IsUnisex = *req.IsUnisex
	}
	if req.IsFree != nil {
		t.IsFree = *req.IsFree
	}
	if !t.IsFree {
		t.PriceCents = req.PriceCents
		t.PricingModel = req.PricingModel
	}

	id, err := s.ToiletRepo.CreateToilet(ctx, t)
	if err != nil {
		return models.Toilet{}, err
	}
	return s.ToiletRepo.GetToiletByID(ctx, id, nil)
}

// UpdateToilet applies a partial update to an owned listing.
func (s *HostService) UpdateToilet(ctx context.Context, actor models.Claims, id int, req models.ToiletMutateRequest) (models.Toilet, error) {
	current, err := s.ToiletRepo.GetToiletByID(ctx, id, nil)
	if err != nil {
		return models.Toilet{}, err
	}
	if !canManageToilet(&actor, &current) {
		return models.Toilet{}, models.ErrForbidden
	}
	if err := s.validateMutation(ctx, req, false); err != nil {
		return models.Toilet{}, err
	}

	applyMutation(&current, req)
	if err := s.ToiletRepo.UpdateToilet(ctx, current); err != nil {
		return models.Toilet{}, err
	}
	return s.ToiletRepo.GetToiletByID(ctx, id, nil)
}

func (s *HostService) UpdateStatus(ctx context.Context, actor models.Claims, id int, status string) (models.Toilet, error) {
	if !contains(models.ToiletStatuses, status) {
		v := models.NewValidationError()
		v.Add("status", "must be one of: "+strings.Join(models.ToiletStatuses, ", "))
		return models.Toilet{}, v
	}

	current, err := s.ToiletRepo.GetToiletByID(ctx, id, nil)
	if err != nil {
		return models.Toilet{}, err
	}
	// Owners can only pause and resume; activating a pending listing is
	// an admin call.
	if actor.Role != "admin" {
		if !canManageToilet(&actor, &current) {
			return models.Toilet{}, models.ErrForbidden
		}
		if current.Status == models.StatusPending {
			return models.Toilet{}, models.ErrForbidden
		}
		if status == models.StatusActive && current.Status != models.StatusSuspended {
			return models.Toilet{}, models.ErrForbidden
		}
	}

	if err := s.ToiletRepo.UpdateToiletStatus(ctx, id, status); err != nil {
		return models.Toilet{}, err
	}
	return s.ToiletRepo.GetToiletByID(ctx, id, nil)
}

func (s *HostService) DeleteToilet(ctx context.Context, actor models.Claims, id int) error {
	current, err := s.ToiletRepo.GetToiletByID(ctx, id, nil)
	if err != nil {
		return err
	}
	if !canManageToilet(&actor, &current) {
		return models.ErrForbidden
	}
	return s.ToiletRepo.DeleteToilet(ctx, id)
}

// AddPhoto attaches an already uploaded image to an owned listing.
func (s *HostService) AddPhoto(ctx context.Context, actor models.Claims, toiletID int, url string, isCover bool) (models.ToiletPhoto, error) {
	current, err := s.ToiletRepo.GetToiletByID(ctx, toiletID, nil)
	if err != nil {
		return models.ToiletPhoto{}, err
	}
	if !canManageToilet(&actor, &current) {
		return models.ToiletPhoto{}, models.ErrForbidden
	}
	if strings.TrimSpace(url) == "" {
		v := models.NewValidationError()
		v.Add("url", "is required")
		return models.ToiletPhoto{}, v
	}

	photo := models.ToiletPhoto{ToiletID: toiletID, URL: url, IsCover: isCover}
	id, err := s.PhotoRepo.AddPhoto(ctx, photo)
	if err != nil {
		return models.ToiletPhoto{}, err
	}
	photo.ID = id
	return photo, nil
}

// ReplaceOpenHours swaps the whole weekly schedule in one write.
func (s *HostService) ReplaceOpenHours(ctx context.Context, actor models.Claims, toiletID int, hours []models.ToiletOpenHour) error {
	current, err := s.ToiletRepo.GetToiletByID(ctx, toiletID, nil)
	if err != nil {
		return err
	}
	if !canManageToilet(&actor, &current) {
		return models.ErrForbidden
	}

	v := models.NewValidationError()
	for i, h := range hours {
		if h.DayOfWeek < 0 || h.DayOfWeek > 6 {
			v.Add("open_hours", "day_of_week out of range at index "+strconv.Itoa(i))
		}
		if !h.IsClosed && (h.OpensAt == nil || h.ClosesAt == nil) {
			v.Add("open_hours", "opens_at and closes_at required at index "+strconv.Itoa(i))
		}
	}
	if v.HasErrors() {
		return v
	}
	return s.ToiletRepo.ReplaceOpenHours(ctx, toiletID, hours)
}

// RemovePhoto deletes a photo from an owned listing.
func (s *HostService) RemovePhoto(ctx context.Context, actor models.Claims, toiletID, photoID int) error {
	current, err := s.ToiletRepo.GetToiletByID(ctx, toiletID, nil)
	if err != nil {
		return err
	}
	if !canManageToilet(&actor, &current) {
		return models.ErrForbidden
	}
	return s.PhotoRepo.DeletePhoto(ctx, toiletID, photoID)
}

func applyMutation(t *models.Toilet, req models.ToiletMutateRequest) {
	if req.CategoryID != nil {
		t.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		t.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		t.Description = req.Description
	}
	if req.PhoneNumbers != nil {
		t.PhoneNumbers = req.PhoneNumbers
	}
	if req.Lat != nil {
		t.Lat = *req.Lat
	}
	if req.Lng != nil {
		t.Lng = *req.Lng
	}
	if req.AddressLine != nil {
		t.AddressLine = strings.TrimSpace(*req.AddressLine)
	}
	if req.WilayaID != nil {
		t.WilayaID = req.WilayaID
	}
	if req.PlaceHint != nil {
		t.PlaceHint = req.PlaceHint
	}
	if req.AccessMethod != nil {
		t.AccessMethod = *req.AccessMethod
	}
	if req.Capacity != nil {
		t.Capacity = *req.Capacity
	}
	if req.IsUnisex != nil {
		t.IsUnisex = *req.IsUnisex
	}
	if req.Amenities != nil {
		t.Amenities = req.Amenities
	}
	if req.Rules != nil {
		t.Rules = req.Rules
	}
	if req.IsFree != nil {
		t.IsFree = *req.IsFree
	}
	if req.PriceCents != nil {
		t.PriceCents = req.PriceCents
	}
	if req.PricingModel != nil {
		t.PricingModel = req.PricingModel
	}
	if t.IsFree {
		t.PriceCents = nil
		t.PricingModel = nil
	}
}

// validateMutation collects every field error. On create the required
// fields must be present; on update only the provided ones are checked.
func (s *HostService) validateMutation(ctx context.Context, req models.ToiletMutateRequest, create bool) error {
	v := models.NewValidationError()

	if create {
		if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
			v.Add("name", "is required")
		}
		if req.CategoryID == nil {
			v.Add("toilet_category_id", "is required")
		}
		if req.Lat == nil {
			v.Add("lat", "is required")
		}
		if req.Lng == nil {
			v.Add("lng", "is required")
		}
		if req.AddressLine == nil || strings.TrimSpace(*req.AddressLine) == "" {
			v.Add("address_line", "is required")
		}
		if req.AccessMethod == nil {
			v.Add("access_method", "is required")
		}
	} else if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		v.Add("name", "must not be empty")
	}

	if req.Lat != nil && (*req.Lat < -90 || *req.Lat > 90) {
		v.Add("lat", "must be between -90 and 90")
	}
	if req.Lng != nil && (*req.Lng < -180 || *req.Lng > 180) {
		v.Add("lng", "must be between -180 and 180")
	}
	if req.AccessMethod != nil && !contains(models.AccessMethods, *req.AccessMethod) {
		v.Add("access_method", "must be one of: "+strings.Join(models.AccessMethods, ", "))
	}
	if req.PricingModel != nil && !contains(models.PricingModels, *req.PricingModel) {
		v.Add("pricing_model", "must be one of: "+strings.Join(models.PricingModels, ", "))
	}
	if req.Capacity != nil && *req.Capacity < 1 {
		v.Add("capacity", "must be at least 1")
	}
	if req.PriceCents != nil && *req.PriceCents < 0 {
		v.Add("price_cents", "must not be negative")
	}
	if req.IsFree != nil && !*req.IsFree && req.PriceCents == nil && create {
		v.Add("price_cents", "is required for paid listings")
	}

	if req.CategoryID != nil {
		exists, err := s.CategoryRepo.CategoryExists(ctx, *req.CategoryID)
		if err != nil {
			return err
		}
		if !exists {
			v.Add("toilet_category_id", "unknown category")
		}
	}
	if req.WilayaID != nil {
		if _, err := s.WilayaRepo.GetWilayaByID(ctx, *req.WilayaID); err != nil {
			if err == models.ErrWilayaNotFound {
				v.Add("wilaya_id", "unknown wilaya")
			} else {
				return err
			}
		}
	}

	if v.HasErrors() {
		return v
	}
	return nil
}
