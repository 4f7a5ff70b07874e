package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/my-lord1/food-delivery-backend/entity"
	"github.com/my-lord1/food-delivery-backend/pkg/apperr"
	"github.com/my-lord1/food-delivery-backend/repository"
)

func TestQuoteBreakdown(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	rest := createRestaurant(t, db, owner.ID, 10000, 3000)

	item := createMenuItem(t, db, rest.ID, "Paneer Tikka", 25000)
	require.NoError(t, db.Create(&entity.CustomizationGroup{
		MenuItemID: item.ID,
		Name:       "Spice Level",
		Options: []entity.CustomizationOption{
			{Name: "Extra Hot", PriceDelta: 2000},
		},
	}).Error)

	var opt entity.CustomizationOption
	require.NoError(t, db.First(&opt).Error)

	calc := NewPricingCalculator(repository.NewMenuRepository(db))
	quote, err := calc.Quote(rest, []LineRequest{
		{MenuItemID: item.ID, Quantity: 2, OptionIDs: []uint{opt.ID}},
	})
	require.NoError(t, err)

	// (25000 + 2000) * 2
	assert.Equal(t, int64(54000), quote.Pricing.Subtotal)
	assert.Equal(t, int64(3000), quote.Pricing.DeliveryFee)
	assert.Equal(t, int64(2700), quote.Pricing.Tax) // 5% of subtotal
	assert.Equal(t, int64(0), quote.Pricing.Discount)
	assert.Equal(t, quote.Pricing.Subtotal+quote.Pricing.DeliveryFee+quote.Pricing.Tax-quote.Pricing.Discount, quote.Pricing.Total)

	require.Len(t, quote.Lines, 1)
	assert.Equal(t, int64(54000), quote.Lines[0].ItemTotal)
	require.Len(t, quote.Lines[0].Customizations, 1)
	assert.Equal(t, "Extra Hot", quote.Lines[0].Customizations[0].Option)
	assert.Equal(t, int64(2000), quote.Lines[0].Customizations[0].PriceDelta)
}

func TestQuoteBelowMinimumOrder(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	rest := createRestaurant(t, db, owner.ID, 50000, 3000)
	item := createMenuItem(t, db, rest.ID, "Samosa", 5000)

	calc := NewPricingCalculator(repository.NewMenuRepository(db))
	_, err := calc.Quote(rest, []LineRequest{{MenuItemID: item.ID, Quantity: 1}})

	assert.ErrorIs(t, err, apperr.ErrBelowMinimumOrder)
}

func TestQuoteUnavailableItem(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	rest := createRestaurant(t, db, owner.ID, 0, 0)
	item := createMenuItem(t, db, rest.ID, "Biryani", 30000)
	require.NoError(t, db.Model(item).Update("is_available", false).Error)

	calc := NewPricingCalculator(repository.NewMenuRepository(db))
	_, err := calc.Quote(rest, []LineRequest{{MenuItemID: item.ID, Quantity: 1}})

	assert.ErrorIs(t, err, apperr.ErrItemUnavailable)
}

func TestQuoteItemFromAnotherRestaurant(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	rest := createRestaurant(t, db, owner.ID, 0, 0)
	other := createRestaurant(t, db, owner.ID, 0, 0)
	item := createMenuItem(t, db, other.ID, "Dosa", 12000)

	calc := NewPricingCalculator(repository.NewMenuRepository(db))
	_, err := calc.Quote(rest, []LineRequest{{MenuItemID: item.ID, Quantity: 1}})

	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestQuoteUnknownOption(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	rest := createRestaurant(t, db, owner.ID, 0, 0)
	item := createMenuItem(t, db, rest.ID, "Thali", 20000)

	calc := NewPricingCalculator(repository.NewMenuRepository(db))
	_, err := calc.Quote(rest, []LineRequest{{MenuItemID: item.ID, Quantity: 1, OptionIDs: []uint{999}}})

	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestQuoteEmptyOrder(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	rest := createRestaurant(t, db, owner.ID, 0, 0)

	calc := NewPricingCalculator(repository.NewMenuRepository(db))
	_, err := calc.Quote(rest, nil)

	assert.ErrorIs(t, err, apperr.ErrValidation)
}
