package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/my-lord1/food-delivery-backend/entity"
	"github.com/my-lord1/food-delivery-backend/pkg/apperr"
)

func placeGatewayOrder(t *testing.T, env *testEnv, customerID uint, rest *entity.Restaurant, item *entity.MenuItem) *entity.Order {
	t.Helper()
	res, err := env.orders.Create(customerID, &CreateOrderReq{
		RestaurantID:  rest.ID,
		Items:         []LineRequest{{MenuItemID: item.ID, Quantity: 1}},
		Address:       entity.DeliveryAddress{Street: "12 MG Road", City: "Pune", State: "MH", Pincode: "411001"},
		PaymentMethod: entity.PaymentGateway,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Intent)
	require.NotEmpty(t, res.Order.Payment.GatewayOrderID)
	return res.Order
}

func TestVerifyPaymentSuccess(t *testing.T) {
	env := newTestEnv(t)
	owner := createUser(t, env.db, "owner@example.com")
	customer := createUser(t, env.db, "customer@example.com")
	rest := createRestaurant(t, env.db, owner.ID, 0, 2000)
	item := createMenuItem(t, env.db, rest.ID, "Biryani", 30000)

	o := placeGatewayOrder(t, env, customer.ID, rest, item)

	// no announcement until the payment clears
	assert.EqualValues(t, 0, env.notificationCount(t, customer.ID))

	sig := signPayload("test_secret", o.Payment.GatewayOrderID, "pay_123")
	res, err := env.payments.VerifyPayment(customer.ID, &VerifyPaymentReq{
		OrderID:          o.ID,
		GatewayOrderID:   o.Payment.GatewayOrderID,
		GatewayPaymentID: "pay_123",
		Signature:        sig,
	})
	require.NoError(t, err)

	assert.True(t, res.Verified)
	assert.Equal(t, entity.OrderConfirmed, res.Order.Status)
	assert.Equal(t, entity.PaymentCompleted, res.Order.Payment.Status)
	assert.Equal(t, "pay_123", res.Order.Payment.GatewayPaymentID)
	assert.Equal(t, "pay_123", res.Order.Payment.TransactionID)
	assert.NotNil(t, res.Order.Payment.PaidAt)

	// placed then confirmed, both recorded
	require.Len(t, res.Order.StatusHistory, 2)
	assert.Equal(t, entity.OrderConfirmed, res.Order.StatusHistory[1].Status)

	assert.EqualValues(t, 1, env.notificationCount(t, customer.ID))

	// the owner's dashboard hears about the order once it is paid for
	assert.Contains(t, env.pusher.events, fmt.Sprintf("%d:new_order", owner.ID))
}

func TestVerifyPaymentBadSignature(t *testing.T) {
	env := newTestEnv(t)
	owner := createUser(t, env.db, "owner@example.com")
	customer := createUser(t, env.db, "customer@example.com")
	rest := createRestaurant(t, env.db, owner.ID, 0, 0)
	item := createMenuItem(t, env.db, rest.ID, "Biryani", 30000)

	o := placeGatewayOrder(t, env, customer.ID, rest, item)

	res, err := env.payments.VerifyPayment(customer.ID, &VerifyPaymentReq{
		OrderID:          o.ID,
		GatewayOrderID:   o.Payment.GatewayOrderID,
		GatewayPaymentID: "pay_123",
		Signature:        "deadbeef",
	})
	require.NoError(t, err)
	assert.False(t, res.Verified)
	assert.Equal(t, entity.PaymentFailed, res.Order.Payment.Status)

	// fulfillment state untouched
	var stored entity.Order
	require.NoError(t, env.db.First(&stored, o.ID).Error)
	assert.Equal(t, entity.OrderPlaced, stored.Status)
	assert.Equal(t, entity.PaymentFailed, stored.Payment.Status)

	// the customer is told the payment failed
	var failed int64
	require.NoError(t, env.db.Model(&entity.Notification{}).
		Where("recipient_id = ? AND type = ?", customer.ID, "payment_failed").
		Count(&failed).Error)
	assert.EqualValues(t, 1, failed)

	// the restaurant never hears about an unpaid order
	assert.NotContains(t, env.pusher.events, fmt.Sprintf("%d:new_order", owner.ID))
}

func TestVerifyPaymentWrongCustomer(t *testing.T) {
	env := newTestEnv(t)
	owner := createUser(t, env.db, "owner@example.com")
	customer := createUser(t, env.db, "customer@example.com")
	stranger := createUser(t, env.db, "stranger@example.com")
	rest := createRestaurant(t, env.db, owner.ID, 0, 0)
	item := createMenuItem(t, env.db, rest.ID, "Biryani", 30000)

	o := placeGatewayOrder(t, env, customer.ID, rest, item)

	_, err := env.payments.VerifyPayment(stranger.ID, &VerifyPaymentReq{
		OrderID:          o.ID,
		GatewayOrderID:   o.Payment.GatewayOrderID,
		GatewayPaymentID: "pay_123",
		Signature:        "x",
	})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestVerifyPaymentRejectsCOD(t *testing.T) {
	env := newTestEnv(t)
	owner := createUser(t, env.db, "owner@example.com")
	customer := createUser(t, env.db, "customer@example.com")
	rest := createRestaurant(t, env.db, owner.ID, 0, 0)
	item := createMenuItem(t, env.db, rest.ID, "Biryani", 30000)

	o := placeCODOrder(t, env, customer.ID, rest, item)

	_, err := env.payments.VerifyPayment(customer.ID, &VerifyPaymentReq{
		OrderID:          o.ID,
		GatewayOrderID:   "order_x",
		GatewayPaymentID: "pay_123",
		Signature:        "x",
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestPaymentHistoryAndReceipt(t *testing.T) {
	env := newTestEnv(t)
	owner := createUser(t, env.db, "owner@example.com")
	customer := createUser(t, env.db, "customer@example.com")
	stranger := createUser(t, env.db, "stranger@example.com")
	rest := createRestaurant(t, env.db, owner.ID, 0, 2000)
	item := createMenuItem(t, env.db, rest.ID, "Biryani", 30000)

	o := placeGatewayOrder(t, env, customer.ID, rest, item)

	// nothing settled yet
	records, total, err := env.payments.History(customer.ID, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.EqualValues(t, 0, total)

	_, err = env.payments.GetReceipt(customer.ID, o.ID)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	sig := signPayload("test_secret", o.Payment.GatewayOrderID, "pay_123")
	_, err = env.payments.VerifyPayment(customer.ID, &VerifyPaymentReq{
		OrderID:          o.ID,
		GatewayOrderID:   o.Payment.GatewayOrderID,
		GatewayPaymentID: "pay_123",
		Signature:        sig,
	})
	require.NoError(t, err)

	records, total, err = env.payments.History(customer.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, o.ID, records[0].OrderID)
	assert.Equal(t, o.OrderNumber, records[0].OrderNumber)
	assert.Equal(t, o.Pricing.Total, records[0].Amount)
	assert.Equal(t, entity.PaymentCompleted, records[0].Status)
	assert.Equal(t, "pay_123", records[0].TransactionID)
	require.NotNil(t, records[0].PaidAt)

	receipt, err := env.payments.GetReceipt(customer.ID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.OrderNumber, receipt.OrderNumber)
	assert.Equal(t, rest.Name, receipt.RestaurantName)
	require.Len(t, receipt.Items, 1)
	assert.Equal(t, o.Pricing.Total, receipt.Pricing.Total)
	assert.Equal(t, entity.PaymentCompleted, receipt.Payment.Status)

	// a stranger gets neither the receipt nor the row
	_, err = env.payments.GetReceipt(stranger.ID, o.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	records, _, err = env.payments.History(stranger.ID, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func defaultMethod(t *testing.T, methods []entity.SavedPaymentMethod) *entity.SavedPaymentMethod {
	t.Helper()
	for i := range methods {
		if methods[i].IsDefault {
			return &methods[i]
		}
	}
	t.Fatal("no default payment method")
	return nil
}

func methodByToken(t *testing.T, methods []entity.SavedPaymentMethod, token string) *entity.SavedPaymentMethod {
	t.Helper()
	for i := range methods {
		if methods[i].TokenID == token {
			return &methods[i]
		}
	}
	t.Fatalf("no method with token %s", token)
	return nil
}

func TestSavedPaymentMethods(t *testing.T) {
	env := newTestEnv(t)
	customer := createUser(t, env.db, "customer@example.com")
	stranger := createUser(t, env.db, "stranger@example.com")

	// the first card becomes the default even without the flag
	methods, err := env.payments.SaveMethod(customer.ID, &SaveMethodReq{
		TokenID: "tok_visa", CardLast4: "4242", CardBrand: "Visa", CardNetwork: "visa",
	})
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.True(t, methods[0].IsDefault)

	// saving a new default demotes the old one
	methods, err = env.payments.SaveMethod(customer.ID, &SaveMethodReq{
		TokenID: "tok_mc", CardLast4: "4444", CardBrand: "Mastercard", CardNetwork: "mc", IsDefault: true,
	})
	require.NoError(t, err)
	require.Len(t, methods, 2)
	assert.Equal(t, "tok_mc", defaultMethod(t, methods).TokenID)

	visa := methodByToken(t, methods, "tok_visa")

	// set-default flips it back and demotes the rest
	methods, err = env.payments.SetDefaultMethod(customer.ID, visa.ID)
	require.NoError(t, err)
	assert.Equal(t, "tok_visa", defaultMethod(t, methods).TokenID)
	assert.False(t, methodByToken(t, methods, "tok_mc").IsDefault)

	// strangers cannot touch another user's cards
	_, err = env.payments.DeleteMethod(stranger.ID, visa.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = env.payments.SetDefaultMethod(customer.ID, 9999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// deleting the default promotes the remaining card
	methods, err = env.payments.DeleteMethod(customer.ID, visa.ID)
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, "tok_mc", methods[0].TokenID)
	assert.True(t, methods[0].IsDefault)

	single, err := env.payments.SavedMethods(customer.ID)
	require.NoError(t, err)
	require.Len(t, single, 1)
}

func TestSignPayloadStable(t *testing.T) {
	a := signPayload("secret", "order_abc", "pay_1")
	b := signPayload("secret", "order_abc", "pay_1")
	c := signPayload("secret", "order_abc", "pay_2")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64) // hex-encoded SHA-256
}
