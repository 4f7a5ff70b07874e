package repository

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/my-lord1/food-delivery-backend/entity"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// Create persists a new order together with its first history entry, so a
// stored order always has history length >= 1.
func (r *OrderRepository) Create(tx *gorm.DB, o *entity.Order) error {
	if err := tx.Create(o).Error; err != nil {
		return errors.Wrap(err, "create order")
	}
	return r.appendHistory(tx, o.ID, o.Status, "Order placed")
}

func (r *OrderRepository) appendHistory(tx *gorm.DB, orderID uint, status entity.OrderStatus, note string) error {
	ev := entity.OrderStatusEvent{
		OrderID:   orderID,
		Status:    status,
		Timestamp: time.Now(),
		Note:      note,
	}
	return errors.Wrap(tx.Create(&ev).Error, "append status history")
}

// UpdateStatus writes the new status plus any accompanying fields and appends
// exactly one history row. The write is guarded on the current status, so of
// two concurrent transitions only one takes effect.
func (r *OrderRepository) UpdateStatus(tx *gorm.DB, orderID uint, from, to entity.OrderStatus, note string, extra map[string]any) (bool, error) {
	updates := map[string]any{"status": to}
	for k, v := range extra {
		updates[k] = v
	}

	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(updates)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "update order status")
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, r.appendHistory(tx, orderID, to, note)
}

// ForceStatus sets the status without a guard. Used by payment verification,
// where placement and confirmation collapse for prepaid orders. Still appends
// exactly one history row.
func (r *OrderRepository) ForceStatus(tx *gorm.DB, orderID uint, to entity.OrderStatus, note string, extra map[string]any) error {
	updates := map[string]any{"status": to}
	for k, v := range extra {
		updates[k] = v
	}

	if err := tx.Model(&entity.Order{}).Where("id = ?", orderID).Updates(updates).Error; err != nil {
		return errors.Wrap(err, "force order status")
	}
	return r.appendHistory(tx, orderID, to, note)
}

func (r *OrderRepository) ByID(id uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ByIDWithItems(id uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_status_events.timestamp ASC, order_status_events.id ASC")
		}).
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListForCustomer(customerID uint, status entity.OrderStatus, page, limit int) ([]entity.Order, int64, error) {
	q := r.DB.Model(&entity.Order{}).Where("customer_id = ?", customerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []entity.Order
	err := q.Preload("Items").
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&orders).Error
	return orders, total, err
}

func (r *OrderRepository) ListForRestaurant(restaurantID uint, statuses []entity.OrderStatus, page, limit int) ([]entity.Order, int64, error) {
	q := r.DB.Model(&entity.Order{}).Where("restaurant_id = ?", restaurantID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []entity.Order
	err := q.Preload("Items").
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&orders).Error
	return orders, total, err
}

// PaidForCustomer lists the customer's settled orders, most recent payment
// first, for the payment history view.
func (r *OrderRepository) PaidForCustomer(customerID uint, page, limit int) ([]entity.Order, int64, error) {
	q := r.DB.Model(&entity.Order{}).
		Where("customer_id = ? AND payment_status IN ?", customerID,
			[]entity.PaymentStatus{entity.PaymentCompleted, entity.PaymentRefunded})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []entity.Order
	err := q.Order("payment_paid_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&orders).Error
	return orders, total, err
}

func (r *OrderRepository) Save(tx *gorm.DB, o *entity.Order) error {
	return errors.Wrap(tx.Save(o).Error, "save order")
}

func (r *OrderRepository) SetReviewed(tx *gorm.DB, orderID uint, reviewed bool) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).
		Update("is_reviewed", reviewed).Error
}

func (r *OrderRepository) CountForRestaurant(restaurantID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Order{}).Where("restaurant_id = ?", restaurantID).Count(&n).Error
	return n, err
}

// DeliveredRevenue sums pricing totals over delivered orders.
func (r *OrderRepository) DeliveredRevenue(restaurantID uint) (int64, error) {
	var sum *int64
	err := r.DB.Model(&entity.Order{}).
		Where("restaurant_id = ? AND status = ?", restaurantID, entity.OrderDelivered).
		Select("SUM(pricing_total)").Scan(&sum).Error
	if err != nil || sum == nil {
		return 0, err
	}
	return *sum, nil
}
