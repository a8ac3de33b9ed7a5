package search

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/coderr/internal/es"
	"github.com/Skotchmaster/coderr/internal/models"
)

func TestSearchBody(t *testing.T) {
	raw, err := json.Marshal(searchBody("logo", 50))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"query": {"multi_match": {"query": "logo", "fields": ["title^2", "description"], "fuzziness": "AUTO"}},
		"_source": ["id"],
		"size": 50
	}`, string(raw))
}

func TestDecodeHitIDs(t *testing.T) {
	ids, err := decodeHitIDs(strings.NewReader(`{"hits":{"total":{"value":2},"hits":[{"_source":{"id":4}},{"_source":{"id":9}}]}}`))
	require.NoError(t, err)
	assert.Equal(t, []uint{4, 9}, ids)

	_, err = decodeHitIDs(strings.NewReader(`not json`))
	require.Error(t, err)
}

func TestNewOfferDoc(t *testing.T) {
	doc := newOfferDoc(&models.Offer{
		ID:       3,
		Title:    "Logo design",
		MinPrice: decimal.RequireFromString("99.50"),
		Details:  []models.OfferDetail{{OfferType: models.OfferTypeBasic}, {OfferType: models.OfferTypePremium}},
	})
	assert.InDelta(t, 99.5, doc.MinPrice, 1e-9)
	assert.Equal(t, []string{"basic", "premium"}, doc.OfferTypes)
}

func TestOfferIndexRoundTrip(t *testing.T) {
	url := os.Getenv("ES_URL")
	if url == "" {
		t.Skip("ES_URL not set")
	}
	ctx := context.Background()

	client, err := es.NewClient(ctx, url, os.Getenv("ES_USER"), os.Getenv("ES_PASSWORD"))
	require.NoError(t, err)

	idx := &OfferIndex{Client: client, Index: "coderr_test_offers"}
	offer := &models.Offer{ID: 424242, Title: "Illustrated mascot", Description: "Hand drawn"}

	require.NoError(t, idx.IndexOffer(ctx, offer))
	ids, err := idx.SearchOfferIDs(ctx, "mascot", 10)
	require.NoError(t, err)
	assert.Contains(t, ids, offer.ID)

	require.NoError(t, idx.DeleteOffer(ctx, offer.ID))
	require.NoError(t, idx.DeleteOffer(ctx, offer.ID))
}
