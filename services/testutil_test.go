package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/my-lord1/food-delivery-backend/entity"
	"github.com/my-lord1/food-delivery-backend/pkg/gateway"
	"github.com/my-lord1/food-delivery-backend/repository"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Address{}, &entity.SavedPaymentMethod{},
		&entity.Restaurant{},
		&entity.MenuItem{}, &entity.CustomizationGroup{}, &entity.CustomizationOption{},
		&entity.Order{}, &entity.OrderItem{}, &entity.OrderStatusEvent{},
		&entity.Review{}, &entity.ReviewVote{},
		&entity.Notification{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()
	u := &entity.User{Name: "Test User", Email: email, Password: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createRestaurant(t *testing.T, db *gorm.DB, ownerID uint, minOrder, deliveryFee int64) *entity.Restaurant {
	t.Helper()
	r := &entity.Restaurant{
		Name:              "Spice Villa",
		Description:       "North Indian kitchen",
		OwnerID:           ownerID,
		MinimumOrder:      minOrder,
		DeliveryFee:       deliveryFee,
		IsAcceptingOrders: true,
		IsActive:          true,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func createMenuItem(t *testing.T, db *gorm.DB, restaurantID uint, name string, price int64) *entity.MenuItem {
	t.Helper()
	m := &entity.MenuItem{
		Name:         name,
		Price:        price,
		Category:     "Mains",
		RestaurantID: restaurantID,
		IsAvailable:  true,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

// recordingPusher captures emitted events for assertions.
type recordingPusher struct {
	events []string
}

func (p *recordingPusher) Emit(userID uint, event string, payload any) error {
	p.events = append(p.events, fmt.Sprintf("%d:%s", userID, event))
	return nil
}

type testEnv struct {
	db       *gorm.DB
	orders   *OrderService
	payments *PaymentService
	notifier *NotificationService
	pusher   *recordingPusher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := openTestDB(t)

	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	pusher := &recordingPusher{}
	notifier := NewNotificationService(notifRepo, pusher)
	gw := &gateway.StubClient{Secret: "test_secret"}

	return &testEnv{
		db:       db,
		orders:   NewOrderService(db, orderRepo, restRepo, NewPricingCalculator(menuRepo), gw, notifier, pusher),
		payments: NewPaymentService(db, orderRepo, userRepo, gw, notifier, pusher),
		notifier: notifier,
		pusher:   pusher,
	}
}

func (e *testEnv) notificationCount(t *testing.T, userID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&entity.Notification{}).Where("recipient_id = ?", userID).Count(&n).Error)
	return n
}
