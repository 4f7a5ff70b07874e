package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex" json:"email"`
	Password string `json:"-"`
	Phone    string `json:"phone"`
	Avatar   string `json:"avatar"`

	Addresses           []Address            `json:"-"`
	SavedPaymentMethods []SavedPaymentMethod `json:"-"`

	FavoriteRestaurants []Restaurant `gorm:"many2many:user_favorite_restaurants;" json:"-"`
	FavoriteMenuItems   []MenuItem   `gorm:"many2many:user_favorite_menu_items;" json:"-"`

	Orders  []Order  `gorm:"foreignKey:CustomerID" json:"-"`
	Reviews []Review `gorm:"foreignKey:CustomerID" json:"-"`
}
