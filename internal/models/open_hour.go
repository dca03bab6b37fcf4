package models

import "toiletBack/internal/formatter"

// ToiletOpenHour is one opening interval. A venue may carry several rows
// for the same day_of_week (split shifts), ordered by sequence.
type ToiletOpenHour struct {
	ID        int     `json:"id"`
	ToiletID  int     `json:"toilet_id"`
	DayOfWeek int     `json:"day_of_week"`
	Sequence  int     `json:"sequence"`
	OpensAt   *string `json:"opens_at"`
	ClosesAt  *string `json:"closes_at"`
	IsClosed  bool    `json:"is_closed"`
}

func (h *ToiletOpenHour) Row() formatter.Row {
	return formatter.Row{
		"id":          h.ID,
		"toilet_id":   h.ToiletID,
		"day_of_week": h.DayOfWeek,
		"sequence":    h.Sequence,
		"opens_at":    strPtrValue(h.OpensAt),
		"closes_at":   strPtrValue(h.ClosesAt),
		"is_closed":   h.IsClosed,
	}
}
