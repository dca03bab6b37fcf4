package models

import (
	"time"
)

type ToiletCategory struct {
	ID        int        `json:"id"`
	Code      string     `json:"code"`
	Icon      *string    `json:"icon"`
	En        *string    `json:"en"`
	Fr        *string    `json:"fr"`
	Ar        *string    `json:"ar"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
