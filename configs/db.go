package configs

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/my-lord1/food-delivery-backend/entity"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {
	db.AutoMigrate(
		&entity.User{}, &entity.Address{}, &entity.SavedPaymentMethod{},
		&entity.Restaurant{},
		&entity.MenuItem{}, &entity.CustomizationGroup{}, &entity.CustomizationOption{},
		&entity.Order{}, &entity.OrderItem{}, &entity.OrderStatusEvent{},
		&entity.Review{}, &entity.ReviewVote{},
		&entity.Notification{},
	)
}
