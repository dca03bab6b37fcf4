package repositories

import (
	"context"
	"database/sql"

	"toiletBack/internal/models"
)

type PhotoRepository struct {
	DB *sql.DB
}

// AddPhoto inserts a photo and refreshes the listing's photo counter. A
// photo marked as cover demotes any previous cover first.
func (r *PhotoRepository) AddPhoto(ctx context.Context, p models.ToiletPhoto) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if p.IsCover {
		if _, err := tx.ExecContext(ctx,
			`UPDATE toilet_photos SET is_cover = FALSE WHERE toilet_id = ?`, p.ToiletID); err != nil {
			return 0, err
		}
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO toilet_photos (toilet_id, url, is_cover, created_at) VALUES (?, ?, ?, NOW())`,
		p.ToiletID, p.URL, p.IsCover)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE toilets SET photos_count = (SELECT COUNT(*) FROM toilet_photos WHERE toilet_id = ?) WHERE id = ?`,
		p.ToiletID, p.ToiletID); err != nil {
		return 0, err
	}

	return int(id), tx.Commit()
}

func (r *PhotoRepository) DeletePhoto(ctx context.Context, toiletID, photoID int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM toilet_photos WHERE id = ? AND toilet_id = ?`, photoID, toiletID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrPhotoNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE toilets SET photos_count = (SELECT COUNT(*) FROM toilet_photos WHERE toilet_id = ?) WHERE id = ?`,
		toiletID, toiletID); err != nil {
		return err
	}
	return tx.Commit()
}
