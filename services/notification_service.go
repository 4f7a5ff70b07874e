package services

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/my-lord1/food-delivery-backend/entity"
	"github.com/my-lord1/food-delivery-backend/pkg/apperr"
	"github.com/my-lord1/food-delivery-backend/repository"
)

// Pusher delivers a real-time event to a user's channel. At-most-once, no
// delivery guarantee.
type Pusher interface {
	Emit(userID uint, event string, payload any) error
}

// Template is a canned notification body for one lifecycle event.
type Template struct {
	Type     string
	Title    string
	Message  string
	Priority string
}

type NotificationService struct {
	Repo *repository.NotificationRepository
	Push Pusher
}

func NewNotificationService(repo *repository.NotificationRepository, push Pusher) *NotificationService {
	return &NotificationService{Repo: repo, Push: push}
}

// Notify persists the notification, then pushes it to the recipient. The
// stored record is authoritative; a failed push is logged and swallowed.
func (s *NotificationService) Notify(recipientID uint, tmpl Template, orderID, restaurantID *uint) (*entity.Notification, error) {
	n := &entity.Notification{
		RecipientID:  recipientID,
		Type:         tmpl.Type,
		Title:        tmpl.Title,
		Message:      tmpl.Message,
		Priority:     tmpl.Priority,
		OrderID:      orderID,
		RestaurantID: restaurantID,
	}
	if err := s.Repo.Create(n); err != nil {
		return nil, err
	}

	if s.Push != nil {
		if err := s.Push.Emit(recipientID, "notification", n); err != nil {
			logrus.WithError(err).WithField("recipient", recipientID).
				Warn("notification push failed")
		}
	}
	return n, nil
}

func (s *NotificationService) ListForUser(userID uint, unreadOnly bool, page, limit int) ([]entity.Notification, int64, int64, error) {
	items, total, err := s.Repo.ListForUser(userID, unreadOnly, page, limit)
	if err != nil {
		return nil, 0, 0, err
	}
	unread, err := s.Repo.UnreadCount(userID)
	return items, total, unread, err
}

func (s *NotificationService) MarkRead(userID, notificationID uint) (*entity.Notification, error) {
	n, err := s.ownedBy(userID, notificationID)
	if err != nil {
		return nil, err
	}
	return n, s.Repo.MarkRead(n)
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.Repo.MarkAllRead(userID)
}

func (s *NotificationService) Delete(userID, notificationID uint) error {
	n, err := s.ownedBy(userID, notificationID)
	if err != nil {
		return err
	}
	return s.Repo.Delete(n)
}

// ClearAll removes every notification the user has, read or not.
func (s *NotificationService) ClearAll(userID uint) error {
	return s.Repo.DeleteAllForUser(userID)
}

func (s *NotificationService) ownedBy(userID, notificationID uint) (*entity.Notification, error) {
	n, err := s.Repo.ByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("notification %d", notificationID)
		}
		return nil, err
	}
	if n.RecipientID != userID {
		return nil, apperr.Forbiddenf("notification %d", notificationID)
	}
	return n, nil
}

// ---- templates ----

func TmplOrderPlaced(orderNumber string) Template {
	return Template{
		Type:     "order_placed",
		Title:    "Order Placed Successfully!",
		Message:  fmt.Sprintf("Your order #%s has been placed successfully.", orderNumber),
		Priority: "high",
	}
}

func TmplOrderConfirmed(orderNumber string) Template {
	return Template{
		Type:     "order_confirmed",
		Title:    "Order Confirmed",
		Message:  fmt.Sprintf("Restaurant has confirmed your order #%s.", orderNumber),
		Priority: "high",
	}
}

func TmplOrderPreparing(orderNumber, eta string) Template {
	return Template{
		Type:     "order_preparing",
		Title:    "Your Food is Being Prepared",
		Message:  fmt.Sprintf("Your order #%s is being prepared. Estimated time: %s.", orderNumber, eta),
		Priority: "medium",
	}
}

func TmplOrderReady(orderNumber string) Template {
	return Template{
		Type:     "order_ready",
		Title:    "Order Ready for Pickup",
		Message:  fmt.Sprintf("Your order #%s is ready and will be picked up soon.", orderNumber),
		Priority: "high",
	}
}

func TmplOrderOutForDelivery(orderNumber, eta string) Template {
	return Template{
		Type:     "order_out_for_delivery",
		Title:    "Order Out for Delivery",
		Message:  fmt.Sprintf("Your order #%s is out for delivery. Will arrive in %s.", orderNumber, eta),
		Priority: "high",
	}
}

func TmplOrderDelivered(orderNumber string) Template {
	return Template{
		Type:     "order_delivered",
		Title:    "Order Delivered",
		Message:  fmt.Sprintf("Your order #%s has been delivered. Enjoy your meal!", orderNumber),
		Priority: "medium",
	}
}

func TmplOrderCancelled(orderNumber, reason string) Template {
	return Template{
		Type:     "order_cancelled",
		Title:    "Order Cancelled",
		Message:  fmt.Sprintf("Your order #%s has been cancelled. %s", orderNumber, reason),
		Priority: "high",
	}
}

func TmplPaymentSuccess(orderNumber string, amount int64) Template {
	return Template{
		Type:     "payment_success",
		Title:    "Payment Successful",
		Message:  fmt.Sprintf("Payment of ₹%.2f for order #%s was successful.", float64(amount)/100, orderNumber),
		Priority: "high",
	}
}

func TmplPaymentFailed(orderNumber string) Template {
	return Template{
		Type:     "payment_failed",
		Title:    "Payment Failed",
		Message:  fmt.Sprintf("Payment for order #%s failed. Please try again.", orderNumber),
		Priority: "high",
	}
}

func TmplRestaurantResponse(restaurantName string) Template {
	return Template{
		Type:     "restaurant_response",
		Title:    "Restaurant Responded",
		Message:  fmt.Sprintf("%s has responded to your review.", restaurantName),
		Priority: "medium",
	}
}
