package models

import (
	"time"

	"toiletBack/internal/formatter"
)

type ToiletPhoto struct {
	ID        int        `json:"id"`
	ToiletID  int        `json:"toilet_id"`
	URL       string     `json:"url"`
	IsCover   bool       `json:"is_cover"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (p *ToiletPhoto) Row() formatter.Row {
	return formatter.Row{
		"id":         p.ID,
		"toilet_id":  p.ToiletID,
		"url":        p.URL,
		"is_cover":   p.IsCover,
		"created_at": p.CreatedAt,
		"updated_at": timePtrValue(p.UpdatedAt),
	}
}
