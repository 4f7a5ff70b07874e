package entity

import (
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"` // minor units
	Category    string `json:"category"`
	Image       Image  `gorm:"embedded;embeddedPrefix:image_" json:"image"`

	IsVeg       bool `json:"isVeg"`
	IsAvailable bool `gorm:"default:true" json:"isAvailable"`

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Customizations []CustomizationGroup `json:"customizations,omitempty"`
	OrderItems     []OrderItem          `json:"-"`
}
