package services

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/my-lord1/food-delivery-backend/entity"
	"github.com/my-lord1/food-delivery-backend/pkg/apperr"
)

// Fulfillment advances along this chain; ready/picked_up may skip a step for
// restaurants that hand off directly. Cancellation is handled separately and
// is allowed from any non-terminal state.
var nextStatuses = map[entity.OrderStatus][]entity.OrderStatus{
	entity.OrderPlaced:         {entity.OrderConfirmed},
	entity.OrderConfirmed:      {entity.OrderPreparing},
	entity.OrderPreparing:      {entity.OrderReady},
	entity.OrderReady:          {entity.OrderPickedUp, entity.OrderOutForDelivery},
	entity.OrderPickedUp:       {entity.OrderOutForDelivery, entity.OrderDelivered},
	entity.OrderOutForDelivery: {entity.OrderDelivered},
}

func canTransition(from, to entity.OrderStatus) bool {
	for _, next := range nextStatuses[from] {
		if next == to {
			return true
		}
	}
	return false
}

// phaseByStatus maps statuses onto the coarse customer-facing phase. A
// status missing here leaves the phase unchanged.
var phaseByStatus = map[entity.OrderStatus]entity.DeliveryPhase{
	entity.OrderPlaced:         entity.PhaseOrderPlaced,
	entity.OrderConfirmed:      entity.PhaseOrderPlaced,
	entity.OrderPreparing:      entity.PhaseRestaurantPreparing,
	entity.OrderReady:          entity.PhaseFoodReady,
	entity.OrderPickedUp:       entity.PhaseOutForDelivery,
	entity.OrderOutForDelivery: entity.PhaseOutForDelivery,
	entity.OrderDelivered:      entity.PhaseDelivered,
	entity.OrderCancelled:      entity.PhaseCancelled,
}

// UpdateStatus advances fulfillment. Only the owner of the restaurant the
// order was placed with may call it.
func (s *OrderService) UpdateStatus(ownerID, orderID uint, to entity.OrderStatus) (*entity.Order, error) {
	o, err := s.Repo.ByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("order %d", orderID)
		}
		return nil, err
	}

	owned, err := s.RestRepo.IsOwnedBy(o.RestaurantID, ownerID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, apperr.Forbiddenf("order %d", orderID)
	}

	if o.Status.Terminal() || !canTransition(o.Status, to) {
		return nil, apperr.InvalidTransitionf("%s -> %s", o.Status, to)
	}

	extra := map[string]any{}
	if phase, ok := phaseByStatus[to]; ok {
		extra["delivery_phase"] = phase
	}
	if to == entity.OrderDelivered {
		now := time.Now()
		extra["actual_delivery_time"] = now
		// cash is collected on handoff
		if o.Payment.Method == entity.PaymentCashOnDelivery {
			extra["payment_status"] = entity.PaymentCompleted
			extra["payment_paid_at"] = now
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		applied, err := s.Repo.UpdateStatus(tx, o.ID, o.Status, to, "", extra)
		if err != nil {
			return err
		}
		if !applied {
			return apperr.InvalidTransitionf("%s -> %s", o.Status, to)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyTransition(o, to, "")
	s.pushStatusUpdate(o, to)

	return s.Repo.ByIDWithItems(o.ID)
}

// Cancel may be called by the order's customer or the owning restaurant.
func (s *OrderService) Cancel(actorID, orderID uint, reason string) (*entity.Order, error) {
	o, err := s.Repo.ByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("order %d", orderID)
		}
		return nil, err
	}

	isCustomer := o.CustomerID == actorID
	isOwner := false
	if !isCustomer {
		isOwner, err = s.RestRepo.IsOwnedBy(o.RestaurantID, actorID)
		if err != nil {
			return nil, err
		}
	}
	if !isCustomer && !isOwner {
		return nil, apperr.Forbiddenf("order %d", orderID)
	}

	if o.Status.Terminal() {
		return nil, apperr.InvalidTransitionf("cannot cancel a %s order", o.Status)
	}

	cancelledBy := "customer"
	if isOwner {
		cancelledBy = "restaurant"
	}
	now := time.Now()
	extra := map[string]any{
		"delivery_phase":      entity.PhaseCancelled,
		"cancel_is_cancelled": true,
		"cancel_cancelled_by": cancelledBy,
		"cancel_reason":       reason,
		"cancel_cancelled_at": now,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		applied, err := s.Repo.UpdateStatus(tx, o.ID, o.Status, entity.OrderCancelled, reason, extra)
		if err != nil {
			return err
		}
		if !applied {
			return apperr.InvalidTransitionf("cannot cancel order %d", o.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyTransition(o, entity.OrderCancelled, reason)
	s.pushStatusUpdate(o, entity.OrderCancelled)

	return s.Repo.ByIDWithItems(o.ID)
}

// notifyTransition dispatches exactly one notification for customer-visible
// target statuses; anything unlisted dispatches none.
func (s *OrderService) notifyTransition(o *entity.Order, to entity.OrderStatus, reason string) {
	var tmpl Template
	switch to {
	case entity.OrderConfirmed:
		tmpl = TmplOrderConfirmed(o.OrderNumber)
	case entity.OrderPreparing:
		tmpl = TmplOrderPreparing(o.OrderNumber, "30-40 mins")
	case entity.OrderReady:
		tmpl = TmplOrderReady(o.OrderNumber)
	case entity.OrderPickedUp, entity.OrderOutForDelivery:
		tmpl = TmplOrderOutForDelivery(o.OrderNumber, "15-20 mins")
	case entity.OrderDelivered:
		tmpl = TmplOrderDelivered(o.OrderNumber)
	case entity.OrderCancelled:
		if reason == "" {
			reason = "No reason provided"
		}
		tmpl = TmplOrderCancelled(o.OrderNumber, reason)
	default:
		return
	}
	s.Notifier.Notify(o.CustomerID, tmpl, &o.ID, nil)
}

// pushStatusUpdate feeds the live tracking channel; best-effort.
func (s *OrderService) pushStatusUpdate(o *entity.Order, to entity.OrderStatus) {
	if s.Push == nil {
		return
	}
	phase := o.DeliveryPhase
	if p, ok := phaseByStatus[to]; ok {
		phase = p
	}
	s.Push.Emit(o.CustomerID, "order_status_update", map[string]any{
		"orderId":       o.ID,
		"status":        to,
		"deliveryPhase": phase,
	})
}
