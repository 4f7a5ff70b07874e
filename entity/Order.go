package entity

import (
	"time"

	"gorm.io/gorm"
)

// Pricing is the breakdown computed once at placement. total =
// subtotal + deliveryFee + tax - discount; never recomputed afterwards.
type Pricing struct {
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"deliveryFee"`
	Tax         int64 `json:"tax"`
	Discount    int64 `json:"discount"`
	Total       int64 `json:"total"`
}

// DeliveryAddress is snapshotted onto the order at placement.
type DeliveryAddress struct {
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
	Landmark string `json:"landmark"`
}

type ScheduleWindow struct {
	Date      *time.Time `json:"date,omitempty"`
	SlotStart string     `json:"slotStart,omitempty"`
	SlotEnd   string     `json:"slotEnd,omitempty"`
}

type Cancellation struct {
	IsCancelled bool       `json:"isCancelled"`
	CancelledBy string     `json:"cancelledBy,omitempty"` // customer | restaurant
	Reason      string     `json:"reason,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
}

type Order struct {
	gorm.Model
	OrderNumber string `gorm:"index" json:"orderNumber"`

	CustomerID uint `json:"customerId"`
	Customer   User `gorm:"foreignKey:CustomerID" json:"-"`

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Items []OrderItem `json:"items,omitempty"`

	Address DeliveryAddress `gorm:"embedded;embeddedPrefix:addr_" json:"deliveryAddress"`
	Pricing Pricing         `gorm:"embedded;embeddedPrefix:pricing_" json:"pricing"`
	Payment PaymentInfo     `gorm:"embedded;embeddedPrefix:payment_" json:"payment"`

	DeliveryType DeliveryType   `json:"deliveryType"`
	ScheduledFor ScheduleWindow `gorm:"embedded;embeddedPrefix:sched_" json:"scheduledFor"`

	Status        OrderStatus   `gorm:"index" json:"status"`
	DeliveryPhase DeliveryPhase `json:"deliveryPhase"`

	// append-only; one row per status write, managed by the repository
	StatusHistory []OrderStatusEvent `json:"statusHistory,omitempty"`

	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime,omitempty"`
	ActualDeliveryTime    *time.Time `json:"actualDeliveryTime,omitempty"`

	ContactNumber       string `json:"contactNumber"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`

	Cancellation Cancellation `gorm:"embedded;embeddedPrefix:cancel_" json:"cancellation"`

	IsReviewed bool `json:"isReviewed"`
}
