package repositories

import (
	"context"
	"database/sql"
	"strings"

	"toiletBack/internal/models"
)

type ReportRepository struct {
	DB *sql.DB
}

func (r *ReportRepository) CreateReport(ctx context.Context, report models.Report) (int, error) {
	query := `INSERT INTO toilet_reports (toilet_id, user_id, reason, details, created_at)
		VALUES (?, ?, ?, ?, NOW())`
	res, err := r.DB.ExecContext(ctx, query,
		report.ToiletID, nullableInt(report.UserID), report.Reason,
		nullableStr(report.Details))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

const reportSelect = `SELECT id, toilet_id, user_id, reason, details, resolved_at, created_at, updated_at FROM toilet_reports`

func scanReport(row rowScanner) (models.Report, error) {
	var report models.Report
	var userID sql.NullInt64
	var details sqlNullString
	var resolvedAt, updatedAt sql.NullTime
	if err := row.Scan(&report.ID, &report.ToiletID, &userID, &report.Reason,
		&details, &resolvedAt, &report.CreatedAt, &updatedAt); err != nil {
		return report, err
	}
	report.UserID = intPtr(userID)
	report.Details = details.ptr()
	report.ResolvedAt = timePtr(resolvedAt)
	report.UpdatedAt = timePtr(updatedAt)
	return report, nil
}

func (r *ReportRepository) GetReportByID(ctx context.Context, id int) (models.Report, error) {
	report, err := scanReport(r.DB.QueryRowContext(ctx, reportSelect+` WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return report, models.ErrReportNotFound
	}
	return report, err
}

// ListReportsByToilet returns reports for one listing, open first, newest
// within each group. Resolution state lives in resolved_at; there is no
// separate status column.
func (r *ReportRepository) ListReportsByToilet(ctx context.Context, toiletID int, status string) ([]models.Report, error) {
	conditions := []string{"toilet_id = ?"}
	params := []interface{}{toiletID}
	switch status {
	case models.ReportStatusOpen:
		conditions = append(conditions, "resolved_at IS NULL")
	case models.ReportStatusResolved:
		conditions = append(conditions, "resolved_at IS NOT NULL")
	}

	query := reportSelect + " WHERE " + strings.Join(conditions, " AND ") +
		" ORDER BY (resolved_at IS NULL) DESC, created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

func (r *ReportRepository) ResolveReport(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE toilet_reports SET resolved_at = NOW(), updated_at = NOW() WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrReportNotFound
	}
	return nil
}
