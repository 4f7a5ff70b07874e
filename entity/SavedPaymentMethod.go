package entity

import (
	"gorm.io/gorm"
)

// SavedPaymentMethod is a tokenized card kept on the customer's profile.
// Only the gateway token and display details are stored, never card numbers.
type SavedPaymentMethod struct {
	gorm.Model
	TokenID     string `json:"tokenId"`
	CardLast4   string `json:"cardLast4"`
	CardBrand   string `json:"cardBrand"`
	CardNetwork string `json:"cardNetwork"`
	IsDefault   bool   `json:"isDefault"`

	UserID uint `json:"userId"`
	User   User `json:"-"`
}
