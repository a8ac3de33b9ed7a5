package transport

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/Skotchmaster/coderr/internal/models"
)

func sampleOffer() *models.Offer {
	return &models.Offer{
		ID:              7,
		UserID:          3,
		User:            &models.User{ID: 3, Username: "studio", FirstName: "Max"},
		Title:           "Logo design",
		MinPrice:        decimal.RequireFromString("100"),
		MinDeliveryTime: 2,
		Details: []models.OfferDetail{
			{ID: 11, OfferID: 7, Price: decimal.RequireFromString("100"), OfferType: models.OfferTypeBasic, Features: datatypes.JSON(`["logo"]`)},
			{ID: 12, OfferID: 7, Price: decimal.RequireFromString("300.5"), OfferType: models.OfferTypePremium},
		},
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewOfferResponseLinksTiers(t *testing.T) {
	resp := NewOfferResponse(sampleOffer())

	require.Len(t, resp.Details, 2)
	assert.Equal(t, "/offerdetails/11", resp.Details[0].URL)
	assert.Equal(t, "100.00", resp.MinPrice)
	assert.Equal(t, "studio", resp.UserDetails.Username)
	assert.Equal(t, "Max", resp.UserDetails.FirstName)
}

func TestNewOfferWriteResponseEmbedsTiers(t *testing.T) {
	resp := NewOfferWriteResponse(sampleOffer())

	body, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	details := decoded["details"].([]any)
	require.Len(t, details, 2)

	premium := details[1].(map[string]any)
	assert.Equal(t, "300.50", premium["price"])
	assert.Equal(t, []any{}, premium["features"])
	assert.Equal(t, []any{"logo"}, details[0].(map[string]any)["features"])
}

func TestNewOrderResponseProjectsTier(t *testing.T) {
	offer := sampleOffer()
	tier := offer.Details[1]
	tier.Offer = offer

	resp := NewOrderResponse(&models.Order{
		ID:             5,
		OfferDetailID:  tier.ID,
		OfferDetail:    &tier,
		CustomerUserID: 9,
		BusinessUserID: 3,
		Status:         models.OrderStatusInProgress,
	})

	assert.EqualValues(t, 5, resp.ID)
	assert.EqualValues(t, 7, resp.OfferID)
	assert.Equal(t, "Logo design", resp.Title)
	assert.Equal(t, "300.50", resp.Price)
	assert.Equal(t, models.OfferTypePremium, resp.OfferType)
}

func TestProfileProjectionsUseEmptyStrings(t *testing.T) {
	created := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	p := models.Profile{UserID: 4, User: &models.User{ID: 4, Username: "buyer", Role: models.RoleCustomer, CreatedAt: created}}

	body, err := json.Marshal(NewProfileDetail(&p))
	require.NoError(t, err)
	assert.Contains(t, string(body), `"tel":""`)
	assert.Contains(t, string(body), `"type":"customer"`)

	cust := NewCustomerProfiles([]models.Profile{p})
	require.Len(t, cust, 1)
	assert.Equal(t, created, cust[0].UploadedAt)
}
