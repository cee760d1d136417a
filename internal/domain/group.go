package domain

import (
	"time"
)

type Group struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	AdminID     int64     `json:"admin_id"`
	CreatedAt   time.Time `json:"created_at"`
}
