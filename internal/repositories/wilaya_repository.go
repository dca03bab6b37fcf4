package repositories

import (
	"context"
	"database/sql"
	"strings"

	"toiletBack/internal/models"
)

type WilayaRepository struct {
	DB *sql.DB
}

const wilayaSelect = `SELECT id, code, number, en, fr, ar,
		center_lat, center_lng, default_radius_km,
		min_lat, max_lat, min_lng, max_lng,
		created_at, updated_at FROM wilayas`

func scanWilaya(row rowScanner) (models.Wilaya, error) {
	var w models.Wilaya
	var en, fr, ar sqlNullString
	var centerLat, centerLng, radius, minLat, maxLat, minLng, maxLng sql.NullFloat64
	var updatedAt sql.NullTime

	err := row.Scan(&w.ID, &w.Code, &w.Number, &en, &fr, &ar,
		&centerLat, &centerLng, &radius,
		&minLat, &maxLat, &minLng, &maxLng,
		&w.CreatedAt, &updatedAt)
	if err != nil {
		return w, err
	}

	w.En = en.ptr()
	w.Fr = fr.ptr()
	w.Ar = ar.ptr()
	w.CenterLat = floatPtr(centerLat)
	w.CenterLng = floatPtr(centerLng)
	w.DefaultRadiusKm = floatPtr(radius)
	w.MinLat = floatPtr(minLat)
	w.MaxLat = floatPtr(maxLat)
	w.MinLng = floatPtr(minLng)
	w.MaxLng = floatPtr(maxLng)
	w.UpdatedAt = timePtr(updatedAt)
	return w, nil
}

func (r *WilayaRepository) GetWilayaByID(ctx context.Context, id int) (models.Wilaya, error) {
	w, err := scanWilaya(r.DB.QueryRowContext(ctx, wilayaSelect+` WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return w, models.ErrWilayaNotFound
	}
	return w, err
}

// ListWilayas returns the catalog, optionally filtered by a name prefix
// in any language and optionally annotated with active listing counts.
func (r *WilayaRepository) ListWilayas(ctx context.Context, query string, withCounts bool) ([]models.Wilaya, error) {
	var (
		conditions []string
		params     []interface{}
	)
	if query != "" {
		like := strings.TrimSpace(query) + "%"
		conditions = append(conditions, "(en LIKE ? OR fr LIKE ? OR ar LIKE ? OR code LIKE ?)")
		params = append(params, like, like, like, like)
	}

	sqlQuery := wilayaSelect
	if len(conditions) > 0 {
		sqlQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	sqlQuery += " ORDER BY number ASC"

	rows, err := r.DB.QueryContext(ctx, sqlQuery, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wilayas []models.Wilaya
	for rows.Next() {
		w, err := scanWilaya(rows)
		if err != nil {
			return nil, err
		}
		wilayas = append(wilayas, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if withCounts {
		if err := r.attachToiletCounts(ctx, wilayas); err != nil {
			return nil, err
		}
	}
	return wilayas, nil
}

func (r *WilayaRepository) attachToiletCounts(ctx context.Context, wilayas []models.Wilaya) error {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT wilaya_id, COUNT(*) FROM toilets
		 WHERE status = ? AND wilaya_id IS NOT NULL GROUP BY wilaya_id`,
		models.StatusActive)
	if err != nil {
		return err
	}
	defer rows.Close()

	counts := map[int]int{}
	for rows.Next() {
		var id, n int
		if err := rows.Scan(&id, &n); err != nil {
			return err
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range wilayas {
		n := counts[wilayas[i].ID]
		wilayas[i].ToiletsCount = &n
	}
	return nil
}
