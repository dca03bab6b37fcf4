package repositories

import (
	"context"
	"database/sql"

	"toiletBack/internal/models"
)

type ReviewRepository struct {
	DB *sql.DB
}

// UpsertReview writes one review per (toilet, user): a repeat submission
// replaces the rating and text instead of stacking a second row.
func (r *ReviewRepository) UpsertReview(ctx context.Context, review models.Review) (models.Review, error) {
	query := `INSERT INTO toilet_reviews (toilet_id, user_id, rating, text, cleanliness, smell, stock, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE rating = VALUES(rating), text = VALUES(text),
			cleanliness = VALUES(cleanliness), smell = VALUES(smell), stock = VALUES(stock),
			updated_at = NOW()`

	if _, err := r.DB.ExecContext(ctx, query,
		review.ToiletID, review.UserID, review.Rating, nullableStr(review.Text),
		nullableInt(review.Cleanliness), nullableInt(review.Smell), nullableInt(review.Stock)); err != nil {
		return models.Review{}, err
	}
	return r.GetReviewByToiletAndUser(ctx, review.ToiletID, review.UserID)
}

func (r *ReviewRepository) DeleteReview(ctx context.Context, toiletID, userID int) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM toilet_reviews WHERE toilet_id = ? AND user_id = ?`, toiletID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepository) GetReviewByToiletAndUser(ctx context.Context, toiletID, userID int) (models.Review, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT id, toilet_id, user_id, rating, text, cleanliness, smell, stock, created_at, updated_at
		 FROM toilet_reviews WHERE toilet_id = ? AND user_id = ?`, toiletID, userID)
	review, err := scanReview(row)
	if err == sql.ErrNoRows {
		return review, models.ErrReviewNotFound
	}
	return review, err
}

func scanReview(row rowScanner) (models.Review, error) {
	var review models.Review
	var text sqlNullString
	var cleanliness, smell, stock sql.NullInt64
	var updatedAt sql.NullTime
	if err := row.Scan(&review.ID, &review.ToiletID, &review.UserID,
		&review.Rating, &text, &cleanliness, &smell, &stock,
		&review.CreatedAt, &updatedAt); err != nil {
		return review, err
	}
	review.Text = text.ptr()
	review.Cleanliness = intPtr(cleanliness)
	review.Smell = intPtr(smell)
	review.Stock = intPtr(stock)
	review.UpdatedAt = timePtr(updatedAt)
	return review, nil
}

// ListReviewsByToilet returns a page of reviews, newest first, with the
// author's display name joined in.
func (r *ReviewRepository) ListReviewsByToilet(ctx context.Context, toiletID, limit, offset int) ([]models.Review, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM toilet_reviews WHERE toilet_id = ?`, toiletID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT r.id, r.toilet_id, r.user_id, r.rating, r.text, r.cleanliness, r.smell, r.stock,
			r.created_at, r.updated_at, u.name
		FROM toilet_reviews r
		INNER JOIN users u ON u.id = r.user_id
		WHERE r.toilet_id = ?
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT ? OFFSET ?`

	rows, err := r.DB.QueryContext(ctx, query, toiletID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		var text sqlNullString
		var cleanliness, smell, stock sql.NullInt64
		var updatedAt sql.NullTime
		var authorName string
		if err := rows.Scan(&review.ID, &review.ToiletID, &review.UserID,
			&review.Rating, &text, &cleanliness, &smell, &stock,
			&review.CreatedAt, &updatedAt, &authorName); err != nil {
			return nil, 0, err
		}
		review.Text = text.ptr()
		review.Cleanliness = intPtr(cleanliness)
		review.Smell = intPtr(smell)
		review.Stock = intPtr(stock)
		review.UpdatedAt = timePtr(updatedAt)
		review.User = &models.OwnerRef{ID: review.UserID, Name: authorName}
		reviews = append(reviews, review)
	}
	return reviews, total, rows.Err()
}

// RecalcToiletRating rebuilds the denormalized aggregates from the
// review rows after every write.
func (r *ReviewRepository) RecalcToiletRating(ctx context.Context, toiletID int) error {
	query := `UPDATE toilets SET
		reviews_count = (SELECT COUNT(*) FROM toilet_reviews WHERE toilet_id = ?),
		avg_rating = COALESCE((SELECT ROUND(AVG(rating), 2) FROM toilet_reviews WHERE toilet_id = ?), 0)
		WHERE id = ?`
	_, err := r.DB.ExecContext(ctx, query, toiletID, toiletID, toiletID)
	return err
}
