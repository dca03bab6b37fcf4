package repositories

import (
	"context"
	"database/sql"

	"toiletBack/internal/models"
)

type CategoryRepository struct {
	DB *sql.DB
}

const categorySelect = `SELECT id, code, icon, en, fr, ar, created_at, updated_at FROM toilet_categories`

func scanCategory(row rowScanner) (models.ToiletCategory, error) {
	var c models.ToiletCategory
	var icon, en, fr, ar sqlNullString
	var updatedAt sql.NullTime
	if err := row.Scan(&c.ID, &c.Code, &icon, &en, &fr, &ar, &c.CreatedAt, &updatedAt); err != nil {
		return c, err
	}
	c.Icon = icon.ptr()
	c.En = en.ptr()
	c.Fr = fr.ptr()
	c.Ar = ar.ptr()
	c.UpdatedAt = timePtr(updatedAt)
	return c, nil
}

func (r *CategoryRepository) GetAllCategories(ctx context.Context) ([]models.ToiletCategory, error) {
	rows, err := r.DB.QueryContext(ctx, categorySelect+` ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.ToiletCategory
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) GetCategoryByID(ctx context.Context, id int) (models.ToiletCategory, error) {
	c, err := scanCategory(r.DB.QueryRowContext(ctx, categorySelect+` WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return c, models.ErrToiletNotFound
	}
	return c, err
}

func (r *CategoryRepository) CategoryExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM toilet_categories WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}
