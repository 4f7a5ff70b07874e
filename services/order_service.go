package services

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/my-lord1/food-delivery-backend/entity"
	"github.com/my-lord1/food-delivery-backend/pkg/apperr"
	"github.com/my-lord1/food-delivery-backend/pkg/gateway"
	"github.com/my-lord1/food-delivery-backend/repository"
)

const deliveryEstimate = 40 * time.Minute

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	RestRepo *repository.RestaurantRepository
	Pricing  *PricingCalculator
	Gateway  gateway.Client
	Notifier *NotificationService
	Push     Pusher
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	restRepo *repository.RestaurantRepository,
	pricing *PricingCalculator,
	gw gateway.Client,
	notifier *NotificationService,
	push Pusher,
) *OrderService {
	return &OrderService{
		DB: db, Repo: repo, RestRepo: restRepo,
		Pricing: pricing, Gateway: gw, Notifier: notifier, Push: push,
	}
}

// GenerateOrderNumber builds the display number: ORD + last 8 digits of the
// epoch millis + a zero-padded random suffix. Not guaranteed unique; the
// numeric primary key is the authoritative identifier.
func GenerateOrderNumber() string {
	millis := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}
	return fmt.Sprintf("ORD%s%03d", millis, rand.Intn(1000))
}

type CreateOrderReq struct {
	RestaurantID uint          `json:"restaurantId" binding:"required"`
	Items        []LineRequest `json:"items" binding:"required"`

	Address entity.DeliveryAddress `json:"deliveryAddress" binding:"required"`

	DeliveryType entity.DeliveryType   `json:"deliveryType" binding:"omitempty,oneof=immediate scheduled"`
	ScheduledFor entity.ScheduleWindow `json:"scheduledFor"`

	ContactNumber       string `json:"contactNumber"`
	SpecialInstructions string `json:"specialInstructions"`

	PaymentMethod entity.PaymentMethod `json:"paymentMethod" binding:"required,oneof=gateway cash_on_delivery"`
}

type CreateOrderRes struct {
	Order  *entity.Order   `json:"order"`
	Intent *gateway.Intent `json:"gatewayOrder,omitempty"`
}

func (s *OrderService) Create(customerID uint, req *CreateOrderReq) (*CreateOrderRes, error) {
	restaurant, err := s.RestRepo.ByID(req.RestaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("restaurant %d", req.RestaurantID)
		}
		return nil, err
	}
	if !restaurant.IsAcceptingOrders {
		return nil, apperr.Validationf("restaurant is not accepting orders at the moment")
	}

	quote, err := s.Pricing.Quote(restaurant, req.Items)
	if err != nil {
		return nil, err
	}

	deliveryType := req.DeliveryType
	if deliveryType == "" {
		deliveryType = entity.DeliveryImmediate
	}
	eta := time.Now().Add(deliveryEstimate)

	order := &entity.Order{
		OrderNumber:  GenerateOrderNumber(),
		CustomerID:   customerID,
		RestaurantID: restaurant.ID,
		Address:      req.Address,
		Pricing:      quote.Pricing,
		Payment: entity.PaymentInfo{
			Method: req.PaymentMethod,
			Status: entity.PaymentPending,
		},
		DeliveryType:          deliveryType,
		ScheduledFor:          req.ScheduledFor,
		Status:                entity.OrderPlaced,
		DeliveryPhase:         entity.PhaseOrderPlaced,
		EstimatedDeliveryTime: &eta,
		ContactNumber:         req.ContactNumber,
		SpecialInstructions:   req.SpecialInstructions,
	}
	for _, line := range quote.Lines {
		order.Items = append(order.Items, entity.OrderItem{
			MenuItemID:          line.MenuItem.ID,
			Name:                line.MenuItem.Name,
			Quantity:            line.Quantity,
			UnitPrice:           line.MenuItem.Price,
			Customizations:      line.Customizations,
			SpecialInstructions: line.SpecialInstructions,
			ItemTotal:           line.ItemTotal,
		})
	}

	var intent *gateway.Intent
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, order); err != nil {
			return err
		}
		if err := s.RestRepo.IncrementOrders(tx, restaurant.ID); err != nil {
			return err
		}

		if req.PaymentMethod == entity.PaymentGateway {
			intent, err = s.Gateway.CreateIntent(order.Pricing.Total, "INR", order.OrderNumber)
			if err != nil {
				return errors.Wrap(err, "create payment intent")
			}
			order.Payment.GatewayOrderID = intent.ID
			return s.Repo.Save(tx, order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// prepaid orders are announced after payment verification instead
	if req.PaymentMethod == entity.PaymentCashOnDelivery {
		s.Notifier.Notify(customerID, TmplOrderPlaced(order.OrderNumber), &order.ID, nil)
		if s.Push != nil {
			s.Push.Emit(restaurant.OwnerID, "new_order", order)
		}
	}

	return &CreateOrderRes{Order: order, Intent: intent}, nil
}

func (s *OrderService) ListForCustomer(customerID uint, status entity.OrderStatus, page, limit int) ([]entity.Order, int64, error) {
	return s.Repo.ListForCustomer(customerID, status, page, limit)
}

// Detail returns the order to its customer or to the owner of the restaurant
// it was placed with.
func (s *OrderService) Detail(actorID, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.ByIDWithItems(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("order %d", orderID)
		}
		return nil, err
	}
	if err := s.canView(actorID, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OrderService) canView(actorID uint, o *entity.Order) error {
	if o.CustomerID == actorID {
		return nil
	}
	owned, err := s.RestRepo.IsOwnedBy(o.RestaurantID, actorID)
	if err != nil {
		return err
	}
	if !owned {
		return apperr.Forbiddenf("order %d", o.ID)
	}
	return nil
}

type TrackInfo struct {
	OrderNumber           string                    `json:"orderNumber"`
	Status                entity.OrderStatus        `json:"status"`
	DeliveryPhase         entity.DeliveryPhase      `json:"deliveryPhase"`
	StatusHistory         []entity.OrderStatusEvent `json:"statusHistory"`
	EstimatedDeliveryTime *time.Time                `json:"estimatedDeliveryTime,omitempty"`
	ActualDeliveryTime    *time.Time                `json:"actualDeliveryTime,omitempty"`
}

func (s *OrderService) Track(customerID, orderID uint) (*TrackInfo, error) {
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
	return &TrackInfo{
		OrderNumber:           o.OrderNumber,
		Status:                o.Status,
		DeliveryPhase:         o.DeliveryPhase,
		StatusHistory:         o.StatusHistory,
		EstimatedDeliveryTime: o.EstimatedDeliveryTime,
		ActualDeliveryTime:    o.ActualDeliveryTime,
	}, nil
}

func (s *OrderService) ListForRestaurant(ownerID, restaurantID uint, statuses []entity.OrderStatus, page, limit int) ([]entity.Order, int64, error) {
	owned, err := s.RestRepo.IsOwnedBy(restaurantID, ownerID)
	if err != nil {
		return nil, 0, err
	}
	if !owned {
		return nil, 0, apperr.Forbiddenf("restaurant %d", restaurantID)
	}
	return s.Repo.ListForRestaurant(restaurantID, statuses, page, limit)
}
