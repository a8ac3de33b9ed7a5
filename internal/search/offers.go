package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/coderr/internal/models"
)

// OfferIndex keeps a searchable copy of offers in Elasticsearch. Only the id
// is read back; the database stays the source of truth.
type OfferIndex struct {
	Client *elasticsearch.Client
	Index  string
}

type offerDoc struct {
	ID              uint     `json:"id"`
	UserID          uint     `json:"user_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	MinPrice        float64  `json:"min_price"`
	MinDeliveryTime int      `json:"min_delivery_time"`
	OfferTypes      []string `json:"offer_types"`
}

func newOfferDoc(o *models.Offer) offerDoc {
	price, _ := o.MinPrice.Float64()
	types := make([]string, 0, len(o.Details))
	for _, d := range o.Details {
		types = append(types, d.OfferType)
	}
	return offerDoc{
		ID:              o.ID,
		UserID:          o.UserID,
		Title:           o.Title,
		Description:     o.Description,
		MinPrice:        price,
		MinDeliveryTime: o.MinDeliveryTime,
		OfferTypes:      types,
	}
}

func docID(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func (x *OfferIndex) IndexOffer(ctx context.Context, o *models.Offer) error {
	body, err := json.Marshal(newOfferDoc(o))
	if err != nil {
		return fmt.Errorf("search: encode offer %d: %w", o.ID, err)
	}

	res, err := x.Client.Index(x.Index, bytes.NewReader(body),
		x.Client.Index.WithContext(ctx),
		x.Client.Index.WithDocumentID(docID(o.ID)),
		x.Client.Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("search: index offer %d: %w", o.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return responseError("index offer", res.Status(), res.Body)
	}
	return nil
}

// DeleteOffer treats a missing document as already deleted.
func (x *OfferIndex) DeleteOffer(ctx context.Context, id uint) error {
	res, err := x.Client.Delete(x.Index, docID(id),
		x.Client.Delete.WithContext(ctx),
		x.Client.Delete.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("search: delete offer %d: %w", id, err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete offer", res.Status(), res.Body)
	}
	return nil
}

func (x *OfferIndex) SearchOfferIDs(ctx context.Context, query string, limit int) ([]uint, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(searchBody(query, limit)); err != nil {
		return nil, fmt.Errorf("search: encode query: %w", err)
	}

	res, err := x.Client.Search(
		x.Client.Search.WithContext(ctx),
		x.Client.Search.WithIndex(x.Index),
		x.Client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search: query: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, responseError("query", res.Status(), res.Body)
	}
	return decodeHitIDs(res.Body)
}

func searchBody(query string, limit int) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"title^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"_source": []string{"id"},
		"size":    limit,
	}
}

func decodeHitIDs(r io.Reader) ([]uint, error) {
	var body struct {
		Hits struct {
			Hits []struct {
				Source struct {
					ID uint `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return nil, fmt.Errorf("search: decode response: %w", err)
	}

	ids := make([]uint, 0, len(body.Hits.Hits))
	for _, h := range body.Hits.Hits {
		ids = append(ids, h.Source.ID)
	}
	return ids, nil
}

func responseError(op, status string, body io.Reader) error {
	raw, _ := io.ReadAll(io.LimitReader(body, 1024))
	return fmt.Errorf("search: %s: %s: %s", op, status, raw)
}
