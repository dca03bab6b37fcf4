package models

import "time"

type Favorite struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	ToiletID  int       `json:"toilet_id"`
	CreatedAt time.Time `json:"created_at"`
}
