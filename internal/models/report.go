package models

import (
	"time"

	"toiletBack/internal/formatter"
)

// Report statuses are derived from resolved_at; they exist as the filter
// vocabulary of the listing endpoint.
const (
	ReportStatusOpen     = "open"
	ReportStatusResolved = "resolved"
)

type Report struct {
	ID         int        `json:"id"`
	ToiletID   int        `json:"toilet_id"`
	UserID     *int       `json:"user_id"`
	Reason     string     `json:"reason"`
	Details    *string    `json:"details"`
	ResolvedAt *time.Time `json:"resolved_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

func (r *Report) Status() string {
	if r.ResolvedAt != nil {
		return ReportStatusResolved
	}
	return ReportStatusOpen
}

func (r *Report) Row() formatter.Row {
	return formatter.Row{
		"id":          r.ID,
		"toilet_id":   r.ToiletID,
		"user_id":     intPtrValue(r.UserID),
		"reason":      r.Reason,
		"details":     strPtrValue(r.Details),
		"status":      r.Status(),
		"resolved_at": timePtrValue(r.ResolvedAt),
		"created_at":  r.CreatedAt,
		"updated_at":  timePtrValue(r.UpdatedAt),
	}
}

type ReportRequest struct {
	Reason  *string `json:"reason"`
	Details *string `json:"details"`
}
