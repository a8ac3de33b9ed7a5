package service

import (
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/coderr/internal/models"
)

// OfferAggregates returns the lowest tier price and delivery time, or zeros
// for an offer without tiers.
func OfferAggregates(details []models.OfferDetail) (decimal.Decimal, int) {
	if len(details) == 0 {
		return decimal.Zero, 0
	}

	minPrice := details[0].Price
	minDelivery := details[0].DeliveryTimeInDays
	for _, d := range details[1:] {
		if d.Price.LessThan(minPrice) {
			minPrice = d.Price
		}
		if d.DeliveryTimeInDays < minDelivery {
			minDelivery = d.DeliveryTimeInDays
		}
	}
	return minPrice, minDelivery
}

func validOfferType(t string) bool {
	switch t {
	case models.OfferTypeBasic, models.OfferTypeStandard, models.OfferTypePremium:
		return true
	}
	return false
}
