package entity

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatusEvent is one entry of an order's append-only status history.
// Rows are only ever inserted, never updated or removed.
type OrderStatusEvent struct {
	gorm.Model
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Note      string      `json:"note,omitempty"`

	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`
}
