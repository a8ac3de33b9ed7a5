package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Skotchmaster/coderr/internal/models"
)

func tier(price string, days int) models.OfferDetail {
	return models.OfferDetail{Price: decimal.RequireFromString(price), DeliveryTimeInDays: days}
}

func TestOfferAggregates(t *testing.T) {
	tests := []struct {
		name      string
		details   []models.OfferDetail
		wantPrice string
		wantDays  int
	}{
		{name: "no tiers", details: nil, wantPrice: "0", wantDays: 0},
		{name: "single", details: []models.OfferDetail{tier("49.90", 3)}, wantPrice: "49.9", wantDays: 3},
		{
			name:      "mins come from different tiers",
			details:   []models.OfferDetail{tier("100", 10), tier("300", 5), tier("500", 2)},
			wantPrice: "100",
			wantDays:  2,
		},
		{
			name:      "decimal comparison",
			details:   []models.OfferDetail{tier("100.10", 7), tier("100.01", 9)},
			wantPrice: "100.01",
			wantDays:  7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, days := OfferAggregates(tt.details)
			assert.True(t, price.Equal(decimal.RequireFromString(tt.wantPrice)), "got %s", price)
			assert.Equal(t, tt.wantDays, days)
		})
	}
}

func TestValidOfferType(t *testing.T) {
	for _, ok := range []string{"basic", "standard", "premium"} {
		assert.True(t, validOfferType(ok))
	}
	assert.False(t, validOfferType("gold"))
	assert.False(t, validOfferType(""))
}
