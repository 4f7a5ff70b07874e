package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/my-lord1/food-delivery-backend/entity"
	"github.com/my-lord1/food-delivery-backend/pkg/apperr"
	"github.com/my-lord1/food-delivery-backend/pkg/gateway"
	"github.com/my-lord1/food-delivery-backend/repository"
)

type PaymentService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	Users    *repository.UserRepository
	Gateway  gateway.Client
	Notifier *NotificationService
	Push     Pusher
}

func NewPaymentService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	users *repository.UserRepository,
	gw gateway.Client,
	notifier *NotificationService,
	push Pusher,
) *PaymentService {
	return &PaymentService{DB: db, Repo: repo, Users: users, Gateway: gw, Notifier: notifier, Push: push}
}

type VerifyPaymentReq struct {
	OrderID          uint   `json:"orderId" binding:"required"`
	GatewayOrderID   string `json:"gatewayOrderId" binding:"required"`
	GatewayPaymentID string `json:"gatewayPaymentId" binding:"required"`
	Signature        string `json:"signature" binding:"required"`
}

// VerifyResult reports the reconciliation outcome. A signature mismatch is a
// normal negative result, not an error.
type VerifyResult struct {
	Verified bool          `json:"verified"`
	Order    *entity.Order `json:"order"`
}

// ---- saved payment methods ----

type SaveMethodReq struct {
	TokenID     string `json:"tokenId" binding:"required"`
	CardLast4   string `json:"cardLast4" binding:"required,len=4"`
	CardBrand   string `json:"cardBrand"`
	CardNetwork string `json:"cardNetwork"`
	IsDefault   bool   `json:"isDefault"`
}

// SaveMethod stores a tokenized card on the customer's profile. The first
// saved method becomes the default regardless of the flag.
func (s *PaymentService) SaveMethod(userID uint, req *SaveMethodReq) ([]entity.SavedPaymentMethod, error) {
	existing, err := s.Users.PaymentMethods(userID)
	if err != nil {
		return nil, err
	}
	if req.IsDefault {
		if err := s.Users.ClearDefaultPaymentMethod(userID); err != nil {
			return nil, err
		}
	}

	m := &entity.SavedPaymentMethod{
		UserID:      userID,
		TokenID:     req.TokenID,
		CardLast4:   req.CardLast4,
		CardBrand:   req.CardBrand,
		CardNetwork: req.CardNetwork,
		IsDefault:   req.IsDefault || len(existing) == 0,
	}
	if err := s.Users.CreatePaymentMethod(m); err != nil {
		return nil, err
	}
	return s.Users.PaymentMethods(userID)
}

func (s *PaymentService) SavedMethods(userID uint) ([]entity.SavedPaymentMethod, error) {
	return s.Users.PaymentMethods(userID)
}

// DeleteMethod removes a saved card. If the default was removed the oldest
// remaining method is promoted so there is always a default while any exist.
func (s *PaymentService) DeleteMethod(userID, methodID uint) ([]entity.SavedPaymentMethod, error) {
	m, err := s.ownedMethod(userID, methodID)
	if err != nil {
		return nil, err
	}
	if err := s.Users.DeletePaymentMethod(m); err != nil {
		return nil, err
	}

	remaining, err := s.Users.PaymentMethods(userID)
	if err != nil {
		return nil, err
	}
	if len(remaining) > 0 && !hasDefaultMethod(remaining) {
		oldest := remaining[0]
		oldest.IsDefault = true
		if err := s.Users.SavePaymentMethod(&oldest); err != nil {
			return nil, err
		}
		return s.Users.PaymentMethods(userID)
	}
	return remaining, nil
}

// SetDefaultMethod makes one saved card the default and demotes the rest.
func (s *PaymentService) SetDefaultMethod(userID, methodID uint) ([]entity.SavedPaymentMethod, error) {
	m, err := s.ownedMethod(userID, methodID)
	if err != nil {
		return nil, err
	}
	if err := s.Users.ClearDefaultPaymentMethod(userID); err != nil {
		return nil, err
	}
	m.IsDefault = true
	if err := s.Users.SavePaymentMethod(m); err != nil {
		return nil, err
	}
	return s.Users.PaymentMethods(userID)
}

func (s *PaymentService) ownedMethod(userID, methodID uint) (*entity.SavedPaymentMethod, error) {
	m, err := s.Users.PaymentMethodByID(methodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("payment method %d", methodID)
		}
		return nil, err
	}
	if m.UserID != userID {
		return nil, apperr.Forbiddenf("payment method %d", methodID)
	}
	return m, nil
}

func hasDefaultMethod(methods []entity.SavedPaymentMethod) bool {
	for _, m := range methods {
		if m.IsDefault {
			return true
		}
	}
	return false
}

// PaymentRecord is one row of a customer's payment history.
type PaymentRecord struct {
	OrderID       uint                 `json:"orderId"`
	OrderNumber   string               `json:"orderNumber"`
	Amount        int64                `json:"amount"`
	Method        entity.PaymentMethod `json:"method"`
	Status        entity.PaymentStatus `json:"status"`
	TransactionID string               `json:"transactionId,omitempty"`
	PaidAt        *time.Time           `json:"paidAt,omitempty"`
}

// Receipt is the printable summary of a settled order.
type Receipt struct {
	OrderNumber    string                 `json:"orderNumber"`
	RestaurantName string                 `json:"restaurantName"`
	PlacedAt       time.Time              `json:"placedAt"`
	Items          []entity.OrderItem     `json:"items"`
	Address        entity.DeliveryAddress `json:"deliveryAddress"`
	Pricing        entity.Pricing         `json:"pricing"`
	Payment        entity.PaymentInfo     `json:"payment"`
}

// History lists the customer's settled payments, newest first.
func (s *PaymentService) History(customerID uint, page, limit int) ([]PaymentRecord, int64, error) {
	orders, total, err := s.Repo.PaidForCustomer(customerID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	records := make([]PaymentRecord, 0, len(orders))
	for _, o := range orders {
		records = append(records, PaymentRecord{
			OrderID:       o.ID,
			OrderNumber:   o.OrderNumber,
			Amount:        o.Pricing.Total,
			Method:        o.Payment.Method,
			Status:        o.Payment.Status,
			TransactionID: o.Payment.TransactionID,
			PaidAt:        o.Payment.PaidAt,
		})
	}
	return records, total, nil
}

// GetReceipt builds the receipt for one of the customer's settled orders.
func (s *PaymentService) GetReceipt(customerID, orderID uint) (*Receipt, error) {
	o, err := s.Repo.ByIDWithItems(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("order %d", orderID)
		}
		return nil, err
	}
	if o.CustomerID != customerID {
		return nil, apperr.Forbiddenf("order %d", orderID)
	}
	if o.Payment.Status != entity.PaymentCompleted && o.Payment.Status != entity.PaymentRefunded {
		return nil, apperr.Validationf("order %d has no settled payment", orderID)
	}

	var rest entity.Restaurant
	if err := s.DB.Select("name").First(&rest, o.RestaurantID).Error; err != nil {
		return nil, errors.Wrap(err, "load restaurant for receipt")
	}

	return &Receipt{
		OrderNumber:    o.OrderNumber,
		RestaurantName: rest.Name,
		PlacedAt:       o.CreatedAt,
		Items:          o.Items,
		Address:        o.Address,
		Pricing:        o.Pricing,
		Payment:        o.Payment,
	}, nil
}

// signPayload recomputes the gateway signature: HMAC-SHA256 over
// "gatewayOrderId|paymentId" with the server-held key secret.
func signPayload(secret, gatewayOrderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPayment reconciles a gateway callback against the order. On a valid
// signature the order jumps straight to confirmed: placement and confirmation
// collapse for prepaid orders.
func (s *PaymentService) VerifyPayment(customerID uint, req *VerifyPaymentReq) (*VerifyResult, error) {
	o, err := s.Repo.ByID(req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("order %d", req.OrderID)
		}
		return nil, err
	}
	if o.CustomerID != customerID {
		return nil, apperr.Forbiddenf("order %d", req.OrderID)
	}
	if o.Payment.Method != entity.PaymentGateway {
		return nil, apperr.Validationf("order %d is not a gateway payment", req.OrderID)
	}

	expected := signPayload(s.Gateway.KeySecret(), req.GatewayOrderID, req.GatewayPaymentID)
	if !hmac.Equal([]byte(expected), []byte(req.Signature)) {
		// record the failure; order status stays untouched
		err := s.DB.Model(&entity.Order{}).Where("id = ?", o.ID).
			Update("payment_status", entity.PaymentFailed).Error
		if err != nil {
			return nil, err
		}
		o.Payment.Status = entity.PaymentFailed
		s.Notifier.Notify(o.CustomerID, TmplPaymentFailed(o.OrderNumber), &o.ID, nil)
		return &VerifyResult{Verified: false, Order: o}, nil
	}

	now := time.Now()
	extra := map[string]any{
		"payment_status":             entity.PaymentCompleted,
		"payment_gateway_payment_id": req.GatewayPaymentID,
		"payment_gateway_signature":  req.Signature,
		"payment_transaction_id":     req.GatewayPaymentID,
		"payment_paid_at":            now,
		"delivery_phase":             entity.PhaseOrderPlaced,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.ForceStatus(tx, o.ID, entity.OrderConfirmed, "Payment verified", extra)
	})
	if err != nil {
		return nil, err
	}

	s.Notifier.Notify(o.CustomerID, TmplPaymentSuccess(o.OrderNumber, o.Pricing.Total), &o.ID, nil)

	updated, err := s.Repo.ByIDWithItems(o.ID)
	if err != nil {
		return nil, err
	}

	// prepaid orders reach the restaurant's live dashboard only now
	if s.Push != nil {
		var rest entity.Restaurant
		if err := s.DB.Select("owner_id").First(&rest, o.RestaurantID).Error; err == nil {
			s.Push.Emit(rest.OwnerID, "new_order", updated)
		}
	}

	return &VerifyResult{Verified: true, Order: updated}, nil
}
