package models

import (
	"time"

	"toiletBack/internal/formatter"
)

// Review is one user's rating of a listing. The optional sub-ratings
// grade specific aspects on the same 1..5 scale.
type Review struct {
	ID          int        `json:"id"`
	ToiletID    int        `json:"toilet_id"`
	UserID      int        `json:"user_id"`
	Rating      int        `json:"rating"`
	Text        *string    `json:"text"`
	Cleanliness *int       `json:"cleanliness"`
	Smell       *int       `json:"smell"`
	Stock       *int       `json:"stock"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`

	User *OwnerRef `json:"user,omitempty"`
}

func (r *Review) Row() formatter.Row {
	row := formatter.Row{
		"id":          r.ID,
		"toilet_id":   r.ToiletID,
		"user_id":     r.UserID,
		"rating":      r.Rating,
		"text":        strPtrValue(r.Text),
		"cleanliness": intPtrValue(r.Cleanliness),
		"smell":       intPtrValue(r.Smell),
		"stock":       intPtrValue(r.Stock),
		"created_at":  r.CreatedAt,
		"updated_at":  timePtrValue(r.UpdatedAt),
	}
	if r.User != nil {
		row["user"] = formatter.Row{"id": r.User.ID, "name": r.User.Name}
	}
	return row
}

type ReviewRequest struct {
	Rating      *int    `json:"rating"`
	Text        *string `json:"text"`
	Cleanliness *int    `json:"cleanliness"`
	Smell       *int    `json:"smell"`
	Stock       *int    `json:"stock"`
}
