package entity

import (
	"gorm.io/gorm"
)

type Address struct {
	gorm.Model
	Label     string `json:"label"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	Landmark  string `json:"landmark"`
	IsDefault bool   `json:"isDefault"`

	UserID uint `json:"userId"`
	User   User `json:"-"`
}
