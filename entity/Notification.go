package entity

import (
	"time"

	"gorm.io/gorm"
)

type Notification struct {
	gorm.Model
	Type     string `json:"type"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority"` // low | medium | high

	RecipientID uint `gorm:"index" json:"recipientId"`
	Recipient   User `gorm:"foreignKey:RecipientID" json:"-"`

	OrderID      *uint `json:"orderId,omitempty"`
	RestaurantID *uint `json:"restaurantId,omitempty"`

	IsRead bool       `json:"isRead"`
	ReadAt *time.Time `json:"readAt,omitempty"`
}
