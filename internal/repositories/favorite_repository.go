package repositories

import (
	"context"
	"database/sql"
)

type FavoriteRepository struct {
	DB *sql.DB
}

// AddFavorite is idempotent: re-favoriting keeps the original timestamp.
func (r *FavoriteRepository) AddFavorite(ctx context.Context, userID, toiletID int) error {
	query := `INSERT INTO favorites (user_id, toilet_id, created_at)
		VALUES (?, ?, NOW())
		ON DUPLICATE KEY UPDATE user_id = user_id`
	_, err := r.DB.ExecContext(ctx, query, userID, toiletID)
	return err
}

// RemoveFavorite is a no-op when the pair does not exist.
func (r *FavoriteRepository) RemoveFavorite(ctx context.Context, userID, toiletID int) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND toilet_id = ?`, userID, toiletID)
	return err
}

func (r *FavoriteRepository) IsFavorite(ctx context.Context, userID, toiletID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = ? AND toilet_id = ?)`,
		userID, toiletID).Scan(&exists)
	return exists, err
}
