package services

import (
	"context"
	"strings"

	"toiletBack/internal/models"
	"toiletBack/internal/repositories"
)

type ReviewService struct {
	ReviewRepo *repositories.ReviewRepository
	ToiletRepo *repositories.ToiletRepository
}

// SubmitReview creates or replaces the caller's review for a listing and
// rebuilds the listing's rating aggregates afterwards.
func (s *ReviewService) SubmitReview(ctx context.Context, userID, toiletID int, req models.ReviewRequest) (models.Review, error) {
	if _, err := s.ToiletRepo.GetToiletByID(ctx, toiletID, nil); err != nil {
		return models.Review{}, err
	}
	review, err := validateReview(req)
	if err != nil {
		return models.Review{}, err
	}
	review.ToiletID = toiletID
	review.UserID = userID

	saved, err := s.ReviewRepo.UpsertReview(ctx, review)
	if err != nil {
		return models.Review{}, err
	}
	if err := s.ReviewRepo.RecalcToiletRating(ctx, toiletID); err != nil {
		return models.Review{}, err
	}
	return saved, nil
}

// UpdateMyReview rewrites the caller's existing review. Unlike
// SubmitReview it never creates one: no review means not found.
func (s *ReviewService) UpdateMyReview(ctx context.Context, userID, toiletID int, req models.ReviewRequest) (models.Review, error) {
	if _, err := s.ToiletRepo.GetToiletByID(ctx, toiletID, nil); err != nil {
		return models.Review{}, err
	}
	if _, err := s.ReviewRepo.GetReviewByToiletAndUser(ctx, toiletID, userID); err != nil {
		return models.Review{}, err
	}
	review, err := validateReview(req)
	if err != nil {
		return models.Review{}, err
	}
	review.ToiletID = toiletID
	review.UserID = userID

	saved, err := s.ReviewRepo.UpsertReview(ctx, review)
	if err != nil {
		return models.Review{}, err
	}
	if err := s.ReviewRepo.RecalcToiletRating(ctx, toiletID); err != nil {
		return models.Review{}, err
	}
	return saved, nil
}

// DeleteMyReview removes the caller's review and rebuilds the aggregates.
func (s *ReviewService) DeleteMyReview(ctx context.Context, userID, toiletID int) error {
	if _, err := s.ToiletRepo.GetToiletByID(ctx, toiletID, nil); err != nil {
		return err
	}
	if err := s.ReviewRepo.DeleteReview(ctx, toiletID, userID); err != nil {
		return err
	}
	return s.ReviewRepo.RecalcToiletRating(ctx, toiletID)
}

func validateReview(req models.ReviewRequest) (models.Review, error) {
	v := models.NewValidationError()
	if req.Rating == nil {
		v.Add("rating", "is required")
	} else if *req.Rating < 1 || *req.Rating > 5 {
		v.Add("rating", "must be between 1 and 5")
	}
	if req.Text != nil && len(*req.Text) > 2000 {
		v.Add("text", "must be at most 2000 characters")
	}
	for field, value := range map[string]*int{
		"cleanliness": req.Cleanliness,
		"smell":       req.Smell,
		"stock":       req.Stock,
	} {
		if value != nil && (*value < 1 || *value > 5) {
			v.Add(field, "must be between 1 and 5")
		}
	}
	if v.HasErrors() {
		return models.Review{}, v
	}

	text := req.Text
	if text != nil && strings.TrimSpace(*text) == "" {
		text = nil
	}
	return models.Review{
		Rating:      *req.Rating,
		Text:        text,
		Cleanliness: req.Cleanliness,
		Smell:       req.Smell,
		Stock:       req.Stock,
	}, nil
}

// ListReviews pages through a listing's reviews, newest first.
func (s *ReviewService) ListReviews(ctx context.Context, toiletID, page, perPage int) ([]models.Review, models.SearchMeta, error) {
	if _, err := s.ToiletRepo.GetToiletByID(ctx, toiletID, nil); err != nil {
		return nil, models.SearchMeta{}, err
	}

	limit, offset := pageWindow(page, perPage, 20)
	reviews, total, err := s.ReviewRepo.ListReviewsByToilet(ctx, toiletID, limit, offset)
	if err != nil {
		return nil, models.SearchMeta{}, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	meta := models.SearchMeta{Page: pageOf(page), PerPage: perPageOf(perPage, 20, 100), Total: total}
	return reviews, meta, nil
}
