package entity

import (
	"gorm.io/gorm"
)

// ChosenCustomization is a snapshot of one selected option at order time.
type ChosenCustomization struct {
	Name       string `json:"name"`   // group name
	Option     string `json:"option"` // option name
	PriceDelta int64  `json:"priceDelta"`
}

type OrderItem struct {
	gorm.Model
	Name      string `json:"name"` // menu item name snapshot
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	ItemTotal int64  `json:"itemTotal"`

	Customizations []ChosenCustomization `gorm:"serializer:json" json:"customizations"`

	SpecialInstructions string `json:"specialInstructions,omitempty"`

	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID uint     `json:"menuItemId"`
	MenuItem   MenuItem `json:"-"`
}
