// Package location manages the clinic sites visits are scheduled against.
package location

import "time"

type Location struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
