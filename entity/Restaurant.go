package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name        string `json:"name"`
	Description string `json:"description"`

	CuisineTypes []string `gorm:"serializer:json" json:"cuisineTypes"`
	Images       []Image  `gorm:"serializer:json" json:"images"`
	CoverImage   Image    `gorm:"embedded;embeddedPrefix:cover_" json:"coverImage"`

	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
	Landmark string `json:"landmark"`

	Phone string `json:"phone"`
	Email string `json:"email"`

	PriceRange   string `json:"priceRange"`
	DeliveryTime string `json:"deliveryTime"` // display estimate, e.g. "30-40 mins"

	// fee schedule used by the pricing calculator, minor units
	MinimumOrder int64 `json:"minimumOrder"`
	DeliveryFee  int64 `json:"deliveryFee"`

	// derived from approved reviews, recomputed on every review write
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int64   `json:"totalReviews"`

	IsAcceptingOrders bool `gorm:"default:true" json:"isAcceptingOrders"`
	IsPureVeg         bool `json:"isPureVeg"`
	IsActive          bool `gorm:"default:true" json:"isActive"`

	TotalOrders int64 `json:"totalOrders"`

	OwnerID uint `json:"ownerId"`
	Owner   User `json:"-"`

	MenuItems []MenuItem `json:"-"`
	Orders    []Order    `json:"-"`
	Reviews   []Review   `json:"-"`
}
