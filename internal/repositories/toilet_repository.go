package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"toiletBack/internal/geo"
	"toiletBack/internal/models"
)

type ToiletRepository struct {
	DB *sql.DB
}

// distanceExpr is the great-circle distance in kilometers between the
// bound center and a row. The same expression is used in SELECT and in
// WHERE so the filter and the returned value can never disagree.
// Placeholders bind as (lat, lat, lng).
const distanceExpr = `6371 * 2 * ASIN(SQRT(
		POWER(SIN(RADIANS(? - t.lat) / 2), 2) +
		COS(RADIANS(?)) * COS(RADIANS(t.lat)) *
		POWER(SIN(RADIANS(? - t.lng) / 2), 2)))`

const coverPhotoExpr = `(SELECT p.url FROM toilet_photos p
		WHERE p.toilet_id = t.id
		ORDER BY p.is_cover DESC, p.id ASC LIMIT 1)`

// ToiletSearchQuery is a fully resolved listing query: the service layer
// has already validated enums, resolved the center and chosen the sort.
type ToiletSearchQuery struct {
	Center *models.SearchCenter
	Box    *geo.Box

	Status       *string
	OwnerID      *int
	IsFree       *bool
	AccessMethod *string
	PricingModel *string
	MinRating    *float64
	Amenities    []string

	// FavoritesOf joins the favorites of that user and exposes
	// favorited_at; ViewerID adds an is_favorite flag per row.
	FavoritesOf *int
	ViewerID    *int

	Sort  string
	Order string

	Limit  int
	Offset int
}

type toiletPredicates struct {
	joins      []string
	conditions []string
	params     []interface{}
}

func buildToiletPredicates(q ToiletSearchQuery) toiletPredicates {
	var p toiletPredicates

	if q.FavoritesOf != nil {
		p.joins = append(p.joins, "INNER JOIN favorites fav ON fav.toilet_id = t.id AND fav.user_id = ?")
		p.params = append(p.params, *q.FavoritesOf)
	}

	if q.Status != nil {
		p.conditions = append(p.conditions, "t.status = ?")
		p.params = append(p.params, *q.Status)
	}
	if q.OwnerID != nil {
		p.conditions = append(p.conditions, "t.owner_id = ?")
		p.params = append(p.params, *q.OwnerID)
	}
	if q.Box != nil {
		p.conditions = append(p.conditions, "t.lat BETWEEN ? AND ?", "t.lng BETWEEN ? AND ?")
		p.params = append(p.params, q.Box.MinLat, q.Box.MaxLat, q.Box.MinLng, q.Box.MaxLng)
	}
	if q.IsFree != nil {
		p.conditions = append(p.conditions, "t.is_free = ?")
		p.params = append(p.params, *q.IsFree)
	}
	if q.AccessMethod != nil {
		p.conditions = append(p.conditions, "t.access_method = ?")
		p.params = append(p.params, *q.AccessMethod)
	}
	if q.PricingModel != nil {
		p.conditions = append(p.conditions, "t.pricing_model = ?")
		p.params = append(p.params, *q.PricingModel)
	}
	if q.MinRating != nil {
		p.conditions = append(p.conditions, "t.avg_rating >= ?")
		p.params = append(p.params, *q.MinRating)
	}
	for _, code := range q.Amenities {
		encoded, _ := json.Marshal(code)
		p.conditions = append(p.conditions, "JSON_CONTAINS(t.amenities, ?)")
		p.params = append(p.params, string(encoded))
	}
	if q.Center != nil {
		p.conditions = append(p.conditions, distanceExpr+" <= ?")
		p.params = append(p.params, q.Center.Lat, q.Center.Lat, q.Center.Lng, q.Center.RadiusKm)
	}

	return p
}

func (p toiletPredicates) whereClause() string {
	if len(p.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.conditions, " AND ")
}

func orderClause(q ToiletSearchQuery) string {
	dir := "ASC"
	if strings.EqualFold(q.Order, "desc") {
		dir = "DESC"
	}
	var col string
	switch q.Sort {
	case "distance":
		col = "distance_km"
	case "avg_rating":
		col = "t.avg_rating"
	case "reviews_count":
		col = "t.reviews_count"
	case "favorited_at":
		col = "fav.created_at"
	case "id":
		return fmt.Sprintf(" ORDER BY t.id %s", dir)
	default:
		col = "t.created_at"
	}
	return fmt.Sprintf(" ORDER BY %s %s, t.id ASC", col, dir)
}

const toiletColumns = `t.id, t.owner_id, t.toilet_category_id, t.wilaya_id, t.name, t.description,
		t.phone_numbers, t.lat, t.lng, t.address_line, t.place_hint, t.access_method,
		t.capacity, t.is_unisex, t.amenities, t.rules, t.is_free, t.price_cents,
		t.pricing_model, t.status, t.avg_rating, t.reviews_count, t.photos_count,
		t.created_at, t.updated_at`

// SearchToilets runs the listing query and the matching count in one
// call. The count reuses the exact predicate set, so totals always agree
// with the pages they describe.
func (r *ToiletRepository) SearchToilets(ctx context.Context, q ToiletSearchQuery) ([]models.Toilet, int, error) {
	pred := buildToiletPredicates(q)

	countQuery := "SELECT COUNT(*) FROM toilets t " + strings.Join(pred.joins, " ") + pred.whereClause()
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, pred.params...).Scan(&total); err != nil {
		return nil, 0, err
	}

	selects := []string{toiletColumns, coverPhotoExpr + " AS cover_photo_url"}
	var selectParams []interface{}
	if q.Center != nil {
		selects = append(selects, distanceExpr+" AS distance_km")
		selectParams = append(selectParams, q.Center.Lat, q.Center.Lat, q.Center.Lng)
	}
	if q.FavoritesOf != nil {
		selects = append(selects, "fav.created_at AS favorited_at")
	}
	if q.ViewerID != nil {
		selects = append(selects, "EXISTS(SELECT 1 FROM favorites vf WHERE vf.toilet_id = t.id AND vf.user_id = ?) AS is_favorite")
		selectParams = append(selectParams, *q.ViewerID)
	}

	query := "SELECT " + strings.Join(selects, ",\n\t\t") +
		" FROM toilets t " + strings.Join(pred.joins, " ") +
		pred.whereClause() + orderClause(q) + " LIMIT ? OFFSET ?"

	params := append(selectParams, pred.params...)
	params = append(params, q.Limit, q.Offset)

	rows, err := r.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var toilets []models.Toilet
	for rows.Next() {
		t, err := scanToilet(rows, q)
		if err != nil {
			return nil, 0, err
		}
		toilets = append(toilets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return toilets, total, nil
}

// CountOwnToiletsByStatus groups the host's listings by status for the
// dashboard summary.
func (r *ToiletRepository) CountOwnToiletsByStatus(ctx context.Context, ownerID int) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM toilets WHERE owner_id = ? GROUP BY status`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int, len(models.ToiletStatuses))
	for _, status := range models.ToiletStatuses {
		counts[status] = 0
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func scanToilet(rows *sql.Rows, q ToiletSearchQuery) (models.Toilet, error) {
	var t models.Toilet
	var (
		ownerID       sql.NullInt64
		wilayaID      sql.NullInt64
		description   sql.NullString
		placeHint     sql.NullString
		phoneNumbers  []byte
		amenities     []byte
		rules         []byte
		priceCents    sql.NullInt64
		pricingModel  sql.NullString
		updatedAt     sql.NullTime
		coverPhotoURL sql.NullString
		distanceKm    sql.NullFloat64
		favoritedAt   sql.NullTime
		isFavorite    sql.NullBool
	)

	dest := []interface{}{
		&t.ID, &ownerID, &t.CategoryID, &wilayaID, &t.Name, &description,
		&phoneNumbers, &t.Lat, &t.Lng, &t.AddressLine, &placeHint, &t.AccessMethod,
		&t.Capacity, &t.IsUnisex, &amenities, &rules, &t.IsFree, &priceCents,
		&pricingModel, &t.Status, &t.AvgRating, &t.ReviewsCount, &t.PhotosCount,
		&t.CreatedAt, &updatedAt,
		&coverPhotoURL,
	}
	if q.Center != nil {
		dest = append(dest, &distanceKm)
	}
	if q.FavoritesOf != nil {
		dest = append(dest, &favoritedAt)
	}
	if q.ViewerID != nil {
		dest = append(dest, &isFavorite)
	}

	if err := rows.Scan(dest...); err != nil {
		return t, err
	}

	if ownerID.Valid {
		v := int(ownerID.Int64)
		t.OwnerID = &v
	}
	if wilayaID.Valid {
		v := int(wilayaID.Int64)
		t.WilayaID = &v
	}
	if description.Valid {
		t.Description = &description.String
	}
	if placeHint.Valid {
		t.PlaceHint = &placeHint.String
	}
	if priceCents.Valid {
		v := int(priceCents.Int64)
		t.PriceCents = &v
	}
	if pricingModel.Valid {
		t.PricingModel = &pricingModel.String
	}
	if updatedAt.Valid {
		t.UpdatedAt = &updatedAt.Time
	}
	if coverPhotoURL.Valid {
		t.CoverPhotoURL = &coverPhotoURL.String
	}
	if distanceKm.Valid {
		t.DistanceKm = &distanceKm.Float64
	}
	if favoritedAt.Valid {
		t.FavoritedAt = &favoritedAt.Time
	}
	if isFavorite.Valid {
		t.IsFavoriteFlag = &isFavorite.Bool
	}

	t.PhoneNumbers = decodeStringList(phoneNumbers)
	t.Amenities = decodeStringList(amenities)
	t.Rules = decodeStringList(rules)

	return t, nil
}

func decodeStringList(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

// SearchMarkers is the lightweight map-pin variant. Rows with broken
// coordinates are skipped instead of failing the whole response.
func (r *ToiletRepository) SearchMarkers(ctx context.Context, q ToiletSearchQuery) ([]models.ToiletMarker, int, error) {
	pred := buildToiletPredicates(q)

	countQuery := "SELECT COUNT(*) FROM toilets t " + strings.Join(pred.joins, " ") + pred.whereClause()
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, pred.params...).Scan(&total); err != nil {
		return nil, 0, err
	}

	selects := []string{"t.id", "t.lat", "t.lng", "t.is_free"}
	var selectParams []interface{}
	if q.Center != nil {
		selects = append(selects, distanceExpr+" AS distance_km")
		selectParams = append(selectParams, q.Center.Lat, q.Center.Lat, q.Center.Lng)
	}

	query := "SELECT " + strings.Join(selects, ", ") +
		" FROM toilets t " + strings.Join(pred.joins, " ") +
		pred.whereClause() + orderClause(q) + " LIMIT ? OFFSET ?"

	params := append(selectParams, pred.params...)
	params = append(params, q.Limit, q.Offset)

	rows, err := r.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var markers []models.ToiletMarker
	for rows.Next() {
		var m models.ToiletMarker
		var distance sql.NullFloat64
		dest := []interface{}{&m.ID, &m.Lat, &m.Lng, &m.IsFree}
		if q.Center != nil {
			dest = append(dest, &distance)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, 0, err
		}
		if math.IsNaN(m.Lat) || math.IsInf(m.Lat, 0) || math.IsNaN(m.Lng) || math.IsInf(m.Lng, 0) {
			continue
		}
		if distance.Valid {
			m.DistanceKm = &distance.Float64
		}
		markers = append(markers, m)
	}
	return markers, total, rows.Err()
}

// GetToiletByID fetches one listing with the cover subquery and, when a
// viewer is known, their favorite flag.
func (r *ToiletRepository) GetToiletByID(ctx context.Context, id int, viewerID *int) (models.Toilet, error) {
	q := ToiletSearchQuery{ViewerID: viewerID}
	selects := []string{toiletColumns, coverPhotoExpr + " AS cover_photo_url"}
	var params []interface{}
	if viewerID != nil {
		selects = append(selects, "EXISTS(SELECT 1 FROM favorites vf WHERE vf.toilet_id = t.id AND vf.user_id = ?) AS is_favorite")
		params = append(params, *viewerID)
	}
	params = append(params, id)

	query := "SELECT " + strings.Join(selects, ",\n\t\t") + " FROM toilets t WHERE t.id = ?"
	rows, err := r.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return models.Toilet{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return models.Toilet{}, err
		}
		return models.Toilet{}, models.ErrToiletNotFound
	}
	return scanToilet(rows, q)
}

// GetToiletsByIDs fetches a batch of listings keyed by id. IDs with no
// matching row are simply absent from the map.
func (r *ToiletRepository) GetToiletsByIDs(ctx context.Context, ids []int) (map[int]models.Toilet, error) {
	toilets := make(map[int]models.Toilet, len(ids))
	if len(ids) == 0 {
		return toilets, nil
	}

	query := fmt.Sprintf("SELECT "+toiletColumns+",\n\t\t"+coverPhotoExpr+
		" AS cover_photo_url FROM toilets t WHERE t.id IN (%s)", inPlaceholders(len(ids)))
	rows, err := r.DB.QueryContext(ctx, query, intParams(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanToilet(rows, ToiletSearchQuery{})
		if err != nil {
			return nil, err
		}
		toilets[t.ID] = t
	}
	return toilets, rows.Err()
}

func (r *ToiletRepository) CreateToilet(ctx context.Context, t models.Toilet) (int, error) {
	query := `INSERT INTO toilets
		(owner_id, toilet_category_id, wilaya_id, name, description, phone_numbers,
		 lat, lng, address_line, place_hint, access_method, capacity, is_unisex,
		 amenities, rules, is_free, price_cents, pricing_model, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`

	phones, _ := json.Marshal(emptyIfNil(t.PhoneNumbers))
	amenities, _ := json.Marshal(emptyIfNil(t.Amenities))
	rules, _ := json.Marshal(emptyIfNil(t.Rules))

	res, err := r.DB.ExecContext(ctx, query,
		nullableInt(t.OwnerID), t.CategoryID, nullableInt(t.WilayaID), t.Name,
		nullableStr(t.Description), phones, t.Lat, t.Lng, t.AddressLine,
		nullableStr(t.PlaceHint), t.AccessMethod, t.Capacity, t.IsUnisex,
		amenities, rules, t.IsFree, nullableInt(t.PriceCents),
		nullableStr(t.PricingModel), t.Status)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func (r *ToiletRepository) UpdateToilet(ctx context.Context, t models.Toilet) error {
	query := `UPDATE toilets SET
		toilet_category_id = ?, wilaya_id = ?, name = ?, description = ?,
		phone_numbers = ?, lat = ?, lng = ?, address_line = ?, place_hint = ?,
		access_method = ?, capacity = ?, is_unisex = ?, amenities = ?, rules = ?,
		is_free = ?, price_cents = ?, pricing_model = ?, updated_at = NOW()
		WHERE id = ?`

	phones, _ := json.Marshal(emptyIfNil(t.PhoneNumbers))
	amenities, _ := json.Marshal(emptyIfNil(t.Amenities))
	rules, _ := json.Marshal(emptyIfNil(t.Rules))

	res, err := r.DB.ExecContext(ctx, query,
		t.CategoryID, nullableInt(t.WilayaID), t.Name, nullableStr(t.Description),
		phones, t.Lat, t.Lng, t.AddressLine, nullableStr(t.PlaceHint),
		t.AccessMethod, t.Capacity, t.IsUnisex, amenities, rules,
		t.IsFree, nullableInt(t.PriceCents), nullableStr(t.PricingModel), t.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrToiletNotFound
	}
	return nil
}

func (r *ToiletRepository) UpdateToiletStatus(ctx context.Context, id int, status string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE toilets SET status = ?, updated_at = NOW() WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrToiletNotFound
	}
	return nil
}

func (r *ToiletRepository) DeleteToilet(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM toilets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrToiletNotFound
	}
	return nil
}

func nullableInt(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func nullableStr(p *string) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
