package models

import (
	"time"

	"toiletBack/internal/formatter"
)

// DefaultSessionMethod is used when a check-in or check-out does not say
// how it happened.
const DefaultSessionMethod = "tap"

// UsageSession tracks a visit from check-in to check-out.
type UsageSession struct {
	ID          int        `json:"id"`
	ToiletID    int        `json:"toilet_id"`
	UserID      int        `json:"user_id"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at"`
	StartMethod string     `json:"start_method"`
	EndMethod   *string    `json:"end_method"`
	ChargeCents *int       `json:"charge_cents"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`

	Toilet *Toilet `json:"toilet,omitempty"`
}

func (s *UsageSession) Row() formatter.Row {
	row := formatter.Row{
		"id":           s.ID,
		"toilet_id":    s.ToiletID,
		"user_id":      s.UserID,
		"started_at":   s.StartedAt,
		"ended_at":     timePtrValue(s.EndedAt),
		"start_method": s.StartMethod,
		"end_method":   strPtrValue(s.EndMethod),
		"charge_cents": intPtrValue(s.ChargeCents),
		"created_at":   s.CreatedAt,
		"updated_at":   timePtrValue(s.UpdatedAt),
	}
	if s.Toilet != nil {
		row["toilet"] = s.Toilet.Row()
	}
	return row
}

// SessionStartRequest is the optional check-in body.
type SessionStartRequest struct {
	StartMethod *string `json:"start_method"`
}

// SessionEndRequest is the optional check-out body. A missing charge
// keeps whatever was recorded at the start.
type SessionEndRequest struct {
	EndMethod   *string `json:"end_method"`
	ChargeCents *int    `json:"charge_cents"`
}
