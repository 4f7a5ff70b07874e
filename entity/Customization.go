package entity

import (
	"gorm.io/gorm"
)

// CustomizationGroup is a named set of options on a menu item,
// e.g. "Size" with Small/Medium/Large.
type CustomizationGroup struct {
	gorm.Model
	Name      string `json:"name"`
	Required  bool   `json:"required"`
	MaxSelect int    `json:"maxSelect"`

	MenuItemID uint     `json:"menuItemId"`
	MenuItem   MenuItem `json:"-"`

	Options []CustomizationOption `json:"options"`
}

type CustomizationOption struct {
	gorm.Model
	Name       string `json:"name"`
	PriceDelta int64  `json:"priceDelta"` // minor units, added per quantity

	CustomizationGroupID uint               `json:"customizationGroupId"`
	CustomizationGroup   CustomizationGroup `json:"-"`
}
