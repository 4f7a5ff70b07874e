package services

import (
	"math"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/my-lord1/food-delivery-backend/entity"
	"github.com/my-lord1/food-delivery-backend/pkg/apperr"
	"github.com/my-lord1/food-delivery-backend/repository"
)

// taxRate is applied to the subtotal at placement (GST).
const taxRate = 0.05

type LineRequest struct {
	MenuItemID          uint   `json:"menuItemId" binding:"required"`
	Quantity            int    `json:"quantity" binding:"required,min=1"`
	OptionIDs           []uint `json:"optionIds"`
	SpecialInstructions string `json:"specialInstructions"`
}

type QuotedLine struct {
	MenuItem            *entity.MenuItem
	Quantity            int
	Customizations      []entity.ChosenCustomization
	SpecialInstructions string
	ItemTotal           int64
}

type Quote struct {
	Lines   []QuotedLine
	Pricing entity.Pricing
}

// PricingCalculator builds the immutable pricing breakdown for an order.
// It reads the catalog and has no side effects.
type PricingCalculator struct {
	Menu *repository.MenuRepository
}

func NewPricingCalculator(menu *repository.MenuRepository) *PricingCalculator {
	return &PricingCalculator{Menu: menu}
}

func (p *PricingCalculator) Quote(restaurant *entity.Restaurant, lines []LineRequest) (*Quote, error) {
	if len(lines) == 0 {
		return nil, apperr.Validationf("order has no items")
	}

	var subtotal int64
	quoted := make([]QuotedLine, 0, len(lines))

	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, apperr.Validationf("quantity must be at least 1")
		}

		item, err := p.Menu.ByID(line.MenuItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFoundf("menu item %d", line.MenuItemID)
			}
			return nil, err
		}
		if item.RestaurantID != restaurant.ID {
			return nil, apperr.Validationf("menu item %q does not belong to this restaurant", item.Name)
		}
		if !item.IsAvailable {
			return nil, errors.Wrapf(apperr.ErrItemUnavailable, "%s is currently unavailable", item.Name)
		}

		chosen, deltaSum, err := resolveOptions(item, line.OptionIDs)
		if err != nil {
			return nil, err
		}

		qty := int64(line.Quantity)
		itemTotal := item.Price*qty + deltaSum*qty
		subtotal += itemTotal

		quoted = append(quoted, QuotedLine{
			MenuItem:            item,
			Quantity:            line.Quantity,
			Customizations:      chosen,
			SpecialInstructions: line.SpecialInstructions,
			ItemTotal:           itemTotal,
		})
	}

	if subtotal < restaurant.MinimumOrder {
		return nil, errors.Wrapf(apperr.ErrBelowMinimumOrder,
			"minimum order amount is %d", restaurant.MinimumOrder)
	}

	tax := int64(math.Round(float64(subtotal) * taxRate))
	pricing := entity.Pricing{
		Subtotal:    subtotal,
		DeliveryFee: restaurant.DeliveryFee,
		Tax:         tax,
		Discount:    0,
	}
	pricing.Total = pricing.Subtotal + pricing.DeliveryFee + pricing.Tax - pricing.Discount

	return &Quote{Lines: quoted, Pricing: pricing}, nil
}

// resolveOptions maps requested option ids onto the item's customization
// groups, snapshotting names and price deltas from the catalog.
func resolveOptions(item *entity.MenuItem, optionIDs []uint) ([]entity.ChosenCustomization, int64, error) {
	if len(optionIDs) == 0 {
		return nil, 0, nil
	}

	byID := map[uint]entity.ChosenCustomization{}
	for _, group := range item.Customizations {
		for _, opt := range group.Options {
			byID[opt.ID] = entity.ChosenCustomization{
				Name:       group.Name,
				Option:     opt.Name,
				PriceDelta: opt.PriceDelta,
			}
		}
	}

	var chosen []entity.ChosenCustomization
	var deltaSum int64
	for _, id := range optionIDs {
		c, ok := byID[id]
		if !ok {
			return nil, 0, apperr.Validationf("option %d not offered for %q", id, item.Name)
		}
		chosen = append(chosen, c)
		deltaSum += c.PriceDelta
	}
	return chosen, deltaSum, nil
}
