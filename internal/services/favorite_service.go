package services

import (
	"context"

	"toiletBack/internal/formatter"
	"toiletBack/internal/models"
	"toiletBack/internal/repositories"
)

type FavoriteService struct {
	FavoriteRepo *repositories.FavoriteRepository
	ToiletRepo   *repositories.ToiletRepository
	WilayaRepo   *repositories.WilayaRepository
}

// AddFavorite saves a listing for the user; saving twice is fine.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID, toiletID int) error {
	if _, err := s.ToiletRepo.GetToiletByID(ctx, toiletID, nil); err != nil {
		return err
	}
	return s.FavoriteRepo.AddFavorite(ctx, userID, toiletID)
}

func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, toiletID int) error {
	if _, err := s.ToiletRepo.GetToiletByID(ctx, toiletID, nil); err != nil {
		return err
	}
	return s.FavoriteRepo.RemoveFavorite(ctx, userID, toiletID)
}

// ListFavorites runs the full search machinery pre-filtered to the
// user's favorited set: same center resolution, bbox prefilter, filter
// predicates and projection as the index, defaulting to newest save
// first. Every row carries is_favorite=true and its favorited_at.
func (s *FavoriteService) ListFavorites(ctx context.Context, userID int, req models.ToiletSearchRequest) (ToiletSearchResult, error) {
	if err := validateSearchRequest(req, 100); err != nil {
		return ToiletSearchResult{}, err
	}

	center, wilaya, err := resolveCenter(ctx, s.WilayaRepo, req)
	if err != nil {
		return ToiletSearchResult{}, err
	}

	query := favoriteQuery(userID, req, center, wilaya)
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
		isFav := true
		toilets[i].IsFavoriteFlag = &isFav
		data = append(data, projectToilet(&toilets[i], opts, center != nil))
	}

	return ToiletSearchResult{
		Data:   data,
		Meta:   models.SearchMeta{Page: pageOf(req.Page), PerPage: perPageOf(req.PerPage, 20, 100), Total: total},
		Center: center,
	}, nil
}

// favoriteQuery assembles the favorites listing query: the index's
// predicate set, restricted to active listings and joined to the user's
// favorites.
func favoriteQuery(userID int, req models.ToiletSearchRequest, center *models.SearchCenter, wilaya *models.Wilaya) repositories.ToiletSearchQuery {
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
		FavoritesOf:  &userID,
	}
	query.Sort, query.Order = resolveSort(req.Sort, req.Order, center != nil, "favorited_at", "favorited_at")
	return query
}
