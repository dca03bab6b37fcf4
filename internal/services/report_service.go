package services

import (
	"context"
	"strings"

	"toiletBack/internal/models"
	"toiletBack/internal/repositories"
)

type ReportService struct {
	ReportRepo *repositories.ReportRepository
	ToiletRepo *repositories.ToiletRepository
}

// SubmitReport files a problem report against a listing. Anonymous
// reports are allowed, so userID may be nil.
func (s *ReportService) SubmitReport(ctx context.Context, userID *int, toiletID int, req models.ReportRequest) (models.Report, error) {
	if _, err := s.ToiletRepo.GetToiletByID(ctx, toiletID, nil); err != nil {
		return models.Report{}, err
	}

	v := models.NewValidationError()
	if req.Reason == nil {
		v.Add("reason", "is required")
	} else if !contains(models.ReportReasons, *req.Reason) {
		v.Add("reason", "must be one of: "+strings.Join(models.ReportReasons, ", "))
	}
	if req.Details != nil && len(*req.Details) > 2000 {
		v.Add("details", "must be at most 2000 characters")
	}
	if v.HasErrors() {
		return models.Report{}, v
	}

	details := req.Details
	if details != nil && strings.TrimSpace(*details) == "" {
		details = nil
	}

	id, err := s.ReportRepo.CreateReport(ctx, models.Report{
		ToiletID: toiletID,
		UserID:   userID,
		Reason:   *req.Reason,
		Details:  details,
	})
	if err != nil {
		return models.Report{}, err
	}
	return s.ReportRepo.GetReportByID(ctx, id)
}

// ListReports is restricted to the listing's owner and admins.
func (s *ReportService) ListReports(ctx context.Context, actor models.Claims, toiletID int, status string) ([]models.Report, error) {
	toilet, err := s.ToiletRepo.GetToiletByID(ctx, toiletID, nil)
	if err != nil {
		return nil, err
	}
	if !canManageToilet(&actor, &toilet) {
		return nil, models.ErrForbidden
	}
	if status != "" && status != models.ReportStatusOpen && status != models.ReportStatusResolved {
		v := models.NewValidationError()
		v.Add("status", "must be open or resolved")
		return nil, v
	}

	reports, err := s.ReportRepo.ListReportsByToilet(ctx, toiletID, status)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []models.Report{}
	}
	return reports, nil
}

// ResolveReport closes a report; same gate as listing them.
func (s *ReportService) ResolveReport(ctx context.Context, actor models.Claims, toiletID, reportID int) (models.Report, error) {
	toilet, err := s.ToiletRepo.GetToiletByID(ctx, toiletID, nil)
	if err != nil {
		return models.Report{}, err
	}

	report, err := s.ReportRepo.GetReportByID(ctx, reportID)
	if err != nil {
		return models.Report{}, err
	}
	if report.ToiletID != toiletID {
		return models.Report{}, models.ErrReportNotFound
	}
	if !canManageToilet(&actor, &toilet) {
		return models.Report{}, models.ErrForbidden
	}

	if err := s.ReportRepo.ResolveReport(ctx, reportID); err != nil {
		return models.Report{}, err
	}
	return s.ReportRepo.GetReportByID(ctx, reportID)
}
