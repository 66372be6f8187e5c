// Package pharmacy implements the dispensary stock ledger. Stock levels never
// go negative: absolute writes and relative adjustments are both clamped to
// zero in SQL so concurrent dispensing cannot race the floor.
package pharmacy

import "time"

type Item struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	StockLevel    int64     `json:"stock_level"`
	LastUpdatedBy *int64    `json:"last_updated_by"`
	LastUpdatedAt time.Time `json:"last_updated"`
}

// CreateInput carries the fields accepted when adding an item. StockLevel
// defaults to zero when omitted.
type CreateInput struct {
	Name       string `json:"name"`
	StockLevel *int64 `json:"stock_level"`
}

// UpdateInput renames an item and/or sets its stock to an exact value. Nil
// fields keep their stored values.
type UpdateInput struct {
	Name       *string `json:"name"`
	StockLevel *int64  `json:"stock_level"`
}
