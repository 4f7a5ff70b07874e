package entity

type OrderStatus string

const (
	OrderPlaced         OrderStatus = "placed"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderPreparing      OrderStatus = "preparing"
	OrderReady          OrderStatus = "ready"
	OrderPickedUp       OrderStatus = "picked_up"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

// Terminal reports whether no further transition may leave s.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// DeliveryPhase is the coarse customer-facing stage derived from the status.
type DeliveryPhase string

const (
	PhaseOrderPlaced         DeliveryPhase = "order_placed"
	PhaseRestaurantPreparing DeliveryPhase = "restaurant_preparing"
	PhaseFoodReady           DeliveryPhase = "food_ready"
	PhaseOutForDelivery      DeliveryPhase = "out_for_delivery"
	PhaseDelivered           DeliveryPhase = "delivered"
	PhaseCancelled           DeliveryPhase = "cancelled"
)

type DeliveryType string

const (
	DeliveryImmediate DeliveryType = "immediate"
	DeliveryScheduled DeliveryType = "scheduled"
)
