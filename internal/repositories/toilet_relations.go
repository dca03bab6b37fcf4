package repositories

import (
	"context"
	"fmt"
	"strings"

	"toiletBack/internal/models"
)

// LoadToiletRelations fills the requested relations on a batch of
// listings with one IN query per relation instead of a query per row.
func (r *ToiletRepository) LoadToiletRelations(ctx context.Context, toilets []models.Toilet, include map[string]bool) error {
	if len(toilets) == 0 {
		return nil
	}

	ids := make([]int, 0, len(toilets))
	byID := make(map[int]*models.Toilet, len(toilets))
	for i := range toilets {
		ids = append(ids, toilets[i].ID)
		byID[toilets[i].ID] = &toilets[i]
	}

	if include["photos"] {
		if err := r.loadPhotos(ctx, ids, byID); err != nil {
			return err
		}
	}
	if include["open_hours"] {
		if err := r.loadOpenHours(ctx, ids, byID); err != nil {
			return err
		}
	}
	if include["category"] {
		if err := r.loadCategories(ctx, toilets, byID); err != nil {
			return err
		}
	}
	if include["wilaya"] {
		if err := r.loadWilayas(ctx, toilets, byID); err != nil {
			return err
		}
	}
	if include["owner"] {
		if err := r.loadOwners(ctx, toilets, byID); err != nil {
			return err
		}
	}
	return nil
}

func inPlaceholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func intParams(ids []int) []interface{} {
	params := make([]interface{}, len(ids))
	for i, id := range ids {
		params[i] = id
	}
	return params
}

func (r *ToiletRepository) loadPhotos(ctx context.Context, ids []int, byID map[int]*models.Toilet) error {
	query := fmt.Sprintf(`SELECT id, toilet_id, url, is_cover, created_at
		FROM toilet_photos WHERE toilet_id IN (%s)
		ORDER BY is_cover DESC, id ASC`, inPlaceholders(len(ids)))

	rows, err := r.DB.QueryContext(ctx, query, intParams(ids)...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for id := range byID {
		byID[id].Photos = []models.ToiletPhoto{}
	}
	for rows.Next() {
		var p models.ToiletPhoto
		if err := rows.Scan(&p.ID, &p.ToiletID, &p.URL, &p.IsCover, &p.CreatedAt); err != nil {
			return err
		}
		if t, ok := byID[p.ToiletID]; ok {
			t.Photos = append(t.Photos, p)
		}
	}
	return rows.Err()
}

func (r *ToiletRepository) loadOpenHours(ctx context.Context, ids []int, byID map[int]*models.Toilet) error {
	query := fmt.Sprintf(`SELECT id, toilet_id, day_of_week, sequence, opens_at, closes_at, is_closed
		FROM toilet_open_hours WHERE toilet_id IN (%s)
		ORDER BY day_of_week ASC, sequence ASC`, inPlaceholders(len(ids)))

	rows, err := r.DB.QueryContext(ctx, query, intParams(ids)...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for id := range byID {
		byID[id].OpenHours = []models.ToiletOpenHour{}
	}
	for rows.Next() {
		var h models.ToiletOpenHour
		var opens, closes sqlNullString
		if err := rows.Scan(&h.ID, &h.ToiletID, &h.DayOfWeek, &h.Sequence, &opens, &closes, &h.IsClosed); err != nil {
			return err
		}
		h.OpensAt = opens.ptr()
		h.ClosesAt = closes.ptr()
		if t, ok := byID[h.ToiletID]; ok {
			t.OpenHours = append(t.OpenHours, h)
		}
	}
	return rows.Err()
}

func (r *ToiletRepository) loadCategories(ctx context.Context, toilets []models.Toilet, byID map[int]*models.Toilet) error {
	ids := uniqueInts(toilets, func(t models.Toilet) (int, bool) { return t.CategoryID, true })
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`SELECT id, code, icon, en, fr, ar, created_at, updated_at
		FROM toilet_categories WHERE id IN (%s)`, inPlaceholders(len(ids)))

	rows, err := r.DB.QueryContext(ctx, query, intParams(ids)...)
	if err != nil {
		return err
	}
	defer rows.Close()

	categories := map[int]models.ToiletCategory{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return err
		}
		categories[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for id := range byID {
		if c, ok := categories[byID[id].CategoryID]; ok {
			cc := c
			byID[id].Category = &cc
		}
	}
	return nil
}

func (r *ToiletRepository) loadWilayas(ctx context.Context, toilets []models.Toilet, byID map[int]*models.Toilet) error {
	ids := uniqueInts(toilets, func(t models.Toilet) (int, bool) {
		if t.WilayaID == nil {
			return 0, false
		}
		return *t.WilayaID, true
	})
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(wilayaSelect+` WHERE id IN (%s)`, inPlaceholders(len(ids)))
	rows, err := r.DB.QueryContext(ctx, query, intParams(ids)...)
	if err != nil {
		return err
	}
	defer rows.Close()

	wilayas := map[int]models.Wilaya{}
	for rows.Next() {
		w, err := scanWilaya(rows)
		if err != nil {
			return err
		}
		wilayas[w.ID] = w
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for id := range byID {
		if byID[id].WilayaID == nil {
			continue
		}
		if w, ok := wilayas[*byID[id].WilayaID]; ok {
			ww := w
			byID[id].Wilaya = &ww
		}
	}
	return nil
}

func (r *ToiletRepository) loadOwners(ctx context.Context, toilets []models.Toilet, byID map[int]*models.Toilet) error {
	ids := uniqueInts(toilets, func(t models.Toilet) (int, bool) {
		if t.OwnerID == nil {
			return 0, false
		}
		return *t.OwnerID, true
	})
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`SELECT id, name FROM users WHERE id IN (%s)`, inPlaceholders(len(ids)))
	rows, err := r.DB.QueryContext(ctx, query, intParams(ids)...)
	if err != nil {
		return err
	}
	defer rows.Close()

	owners := map[int]models.OwnerRef{}
	for rows.Next() {
		var o models.OwnerRef
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return err
		}
		owners[o.ID] = o
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for id := range byID {
		if byID[id].OwnerID == nil {
			continue
		}
		if o, ok := owners[*byID[id].OwnerID]; ok {
			oo := o
			byID[id].Owner = &oo
		}
	}
	return nil
}

// ReplaceOpenHours swaps the whole weekly schedule in one transaction.
func (r *ToiletRepository) ReplaceOpenHours(ctx context.Context, toiletID int, hours []models.ToiletOpenHour) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM toilet_open_hours WHERE toilet_id = ?`, toiletID); err != nil {
		return err
	}
	for _, h := range hours {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO toilet_open_hours (toilet_id, day_of_week, sequence, opens_at, closes_at, is_closed)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			toiletID, h.DayOfWeek, h.Sequence, nullableStr(h.OpensAt), nullableStr(h.ClosesAt), h.IsClosed); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func uniqueInts(toilets []models.Toilet, pick func(models.Toilet) (int, bool)) []int {
	seen := map[int]bool{}
	var out []int
	for _, t := range toilets {
		v, ok := pick(t)
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
