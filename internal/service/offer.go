package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/Skotchmaster/coderr/internal/models"
	"github.com/Skotchmaster/coderr/internal/repo"
	"github.com/Skotchmaster/coderr/internal/transport"
	"github.com/Skotchmaster/coderr/internal/util"
	"github.com/Skotchmaster/coderr/pkg/logging"
)

// maxSearchHits caps how many ids the search index may feed into one listing.
const maxSearchHits = 1000

var maxPrice = decimal.New(1, 8) // numeric(10,2)

type OfferService struct {
	Repo   *repo.GormRepo
	Index  OfferIndex
	Events *Emitter
}

func (s *OfferService) List(ctx context.Context, q transport.OfferListQuery) (int64, []models.Offer, error) {
	if q.Ordering != "" && !repo.OfferOrderingAllowed(q.Ordering) {
		return 0, nil, NewValidationError("ordering", "unsupported ordering "+q.Ordering)
	}

	f := repo.OfferFilter{
		CreatorID:       q.CreatorID,
		MinPrice:        q.MinPrice,
		MaxDeliveryTime: q.MaxDeliveryTime,
		OrderBy:         q.Ordering,
	}

	if search := strings.TrimSpace(q.Search); search != "" {
		f.Search = search
		if s.Index != nil {
			ids, err := s.Index.SearchOfferIDs(ctx, search, maxSearchHits)
			if err != nil {
				logging.FromContext(ctx).Warn("offer_search_index_failed", zap.String("reason", "falling back to sql search"), zap.Error(err))
			} else {
				f.IDs, f.UseIDs = ids, true
			}
		}
	}

	offset, limit := util.Calculate(q.Page, q.PageSize)
	return s.Repo.ListOffers(ctx, f, offset, limit)
}

func (s *OfferService) Get(ctx context.Context, id uint) (*models.Offer, error) {
	offer, err := s.Repo.GetOffer(ctx, id)
	if err != nil {
		return nil, notFound(err, "offer", id)
	}
	return offer, nil
}

func (s *OfferService) Create(ctx context.Context, actor Actor, req transport.CreateOfferRequest) (*models.Offer, error) {
	if !actor.IsBusiness() {
		return nil, fmt.Errorf("%w: only business users can create offers", ErrForbidden)
	}
	if err := ValidateStruct(req); err != nil {
		return nil, err
	}

	verr := &ValidationError{}
	seen := make(map[string]bool, len(req.Details))
	details := make([]models.OfferDetail, 0, len(req.Details))
	for i, d := range req.Details {
		key := fmt.Sprintf("details[%d]", i)
		switch {
		case !validOfferType(d.OfferType):
			verr.Add(key+".offer_type", "must be one of: basic standard premium")
		case seen[d.OfferType]:
			verr.Add(key+".offer_type", "each offer_type may appear only once")
		}
		seen[d.OfferType] = true
		checkPrice(verr, key+".price", *d.Price)

		details = append(details, models.OfferDetail{
			Title:              strings.TrimSpace(d.Title),
			Revisions:          *d.Revisions,
			DeliveryTimeInDays: *d.DeliveryTimeInDays,
			Price:              *d.Price,
			Features:           normalizeFeatures(d.Features),
			OfferType:          d.OfferType,
		})
	}
	if !verr.Empty() {
		return nil, verr
	}

	offer := &models.Offer{
		UserID:      actor.UserID,
		Title:       strings.TrimSpace(req.Title),
		Image:       req.Image,
		Description: req.Description,
		Details:     details,
	}
	offer.MinPrice, offer.MinDeliveryTime = OfferAggregates(details)

	err := s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		if err := tx.CreateOffer(ctx, offer); err != nil {
			return err
		}
		return tx.SetOfferAggregates(ctx, offer.ID, offer.MinPrice, offer.MinDeliveryTime)
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, NewValidationError("details", "each offer_type may appear only once")
		}
		return nil, err
	}

	created, err := s.Get(ctx, offer.ID)
	if err != nil {
		return nil, err
	}
	s.reindex(ctx, created)
	s.Events.Emit(ctx, TopicOffers, "offer_created", created.ID, actor.UserID, offerEventData(created))
	return created, nil
}

// Update patches top-level fields and matches tier patches by offer_type.
// A patch for a type the offer does not have is ignored.
func (s *OfferService) Update(ctx context.Context, actor Actor, id uint, req transport.PatchOfferRequest) (*models.Offer, error) {
	err := s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		offer, err := tx.LockOffer(ctx, id)
		if err != nil {
			return notFound(err, "offer", id)
		}
		if offer.UserID != actor.UserID {
			return fmt.Errorf("%w: offer belongs to another user", ErrForbidden)
		}
		if err := ValidateStruct(req); err != nil {
			return err
		}

		verr := &ValidationError{}
		for i, p := range req.Details {
			key := fmt.Sprintf("details[%d]", i)
			if p.OfferType == "" {
				verr.Add(key+".offer_type", "this field is required")
			} else if !validOfferType(p.OfferType) {
				verr.Add(key+".offer_type", "must be one of: basic standard premium")
			}
			if p.Price != nil {
				checkPrice(verr, key+".price", *p.Price)
			}
		}
		if !verr.Empty() {
			return verr
		}

		fields := map[string]any{}
		if req.Title != nil {
			fields["title"] = strings.TrimSpace(*req.Title)
		}
		if req.Image != nil {
			fields["image"] = *req.Image
		}
		if req.Description != nil {
			fields["description"] = *req.Description
		}
		if err := tx.UpdateOffer(ctx, offer, fields); err != nil {
			return err
		}

		if len(req.Details) == 0 {
			return nil
		}

		current, err := tx.ListOfferDetails(ctx, id)
		if err != nil {
			return err
		}
		byType := make(map[string]*models.OfferDetail, len(current))
		for i := range current {
			byType[current[i].OfferType] = &current[i]
		}

		changed := false
		for _, p := range req.Details {
			d, ok := byType[p.OfferType]
			if !ok {
				continue
			}
			df := detailFields(p)
			if len(df) == 0 {
				continue
			}
			if err := tx.UpdateOfferDetail(ctx, d, df); err != nil {
				return err
			}
			changed = true
		}
		if !changed {
			return nil
		}

		if err := recompute(ctx, tx, id); err != nil {
			return err
		}
		if len(fields) == 0 {
			return tx.TouchOffer(ctx, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.reindex(ctx, updated)
	s.Events.Emit(ctx, TopicOffers, "offer_updated", id, actor.UserID, offerEventData(updated))
	return updated, nil
}

// Delete removes the offer, its tiers and the orders placed on those tiers.
func (s *OfferService) Delete(ctx context.Context, actor Actor, id uint) error {
	err := s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		offer, err := tx.LockOffer(ctx, id)
		if err != nil {
			return notFound(err, "offer", id)
		}
		if offer.UserID != actor.UserID {
			return fmt.Errorf("%w: offer belongs to another user", ErrForbidden)
		}
		return notFound(tx.DeleteOffer(ctx, id), "offer", id)
	})
	if err != nil {
		return err
	}

	if s.Index != nil {
		if err := s.Index.DeleteOffer(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("offer_unindex_failed", zap.Uint("offer_id", id), zap.Error(err))
		}
	}
	s.Events.Emit(ctx, TopicOffers, "offer_deleted", id, actor.UserID, nil)
	return nil
}

func (s *OfferService) GetDetail(ctx context.Context, id uint) (*models.OfferDetail, error) {
	d, err := s.Repo.GetOfferDetail(ctx, id)
	if err != nil {
		return nil, notFound(err, "offer detail", id)
	}
	return d, nil
}

func (s *OfferService) UpdateDetail(ctx context.Context, actor Actor, id uint, req transport.PatchOfferDetailRequest) (*models.OfferDetail, error) {
	var offerID uint
	err := s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		d, err := tx.GetOfferDetail(ctx, id)
		if err != nil {
			return notFound(err, "offer detail", id)
		}
		offerID = d.OfferID
		if d.Offer == nil || d.Offer.UserID != actor.UserID {
			return fmt.Errorf("%w: offer belongs to another user", ErrForbidden)
		}
		if err := ValidateStruct(req); err != nil {
			return err
		}

		verr := &ValidationError{}
		if req.OfferType != "" && req.OfferType != d.OfferType {
			verr.Add("offer_type", "offer_type cannot be changed")
		}
		if req.Price != nil {
			checkPrice(verr, "price", *req.Price)
		}
		if !verr.Empty() {
			return verr
		}

		df := detailFields(req)
		if len(df) == 0 {
			return nil
		}
		if _, err := tx.LockOffer(ctx, d.OfferID); err != nil {
			return err
		}
		if err := tx.UpdateOfferDetail(ctx, d, df); err != nil {
			return err
		}
		if err := recompute(ctx, tx, d.OfferID); err != nil {
			return err
		}
		return tx.TouchOffer(ctx, d.OfferID)
	})
	if err != nil {
		return nil, err
	}

	s.refreshOffer(ctx, actor, offerID)
	return s.GetDetail(ctx, id)
}

// DeleteDetail removes one tier (and its orders) and recomputes the parent.
func (s *OfferService) DeleteDetail(ctx context.Context, actor Actor, id uint) error {
	var offerID uint
	err := s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		d, err := tx.GetOfferDetail(ctx, id)
		if err != nil {
			return notFound(err, "offer detail", id)
		}
		offerID = d.OfferID
		if d.Offer == nil || d.Offer.UserID != actor.UserID {
			return fmt.Errorf("%w: offer belongs to another user", ErrForbidden)
		}
		if _, err := tx.LockOffer(ctx, d.OfferID); err != nil {
			return err
		}
		if err := tx.DeleteOfferDetail(ctx, id); err != nil {
			return notFound(err, "offer detail", id)
		}
		if err := recompute(ctx, tx, d.OfferID); err != nil {
			return err
		}
		return tx.TouchOffer(ctx, d.OfferID)
	})
	if err != nil {
		return err
	}

	s.refreshOffer(ctx, actor, offerID)
	return nil
}

func (s *OfferService) refreshOffer(ctx context.Context, actor Actor, offerID uint) {
	offer, err := s.Repo.GetOffer(ctx, offerID)
	if err != nil {
		logging.FromContext(ctx).Warn("offer_reload_failed", zap.Uint("offer_id", offerID), zap.Error(err))
		return
	}
	s.reindex(ctx, offer)
	s.Events.Emit(ctx, TopicOffers, "offer_updated", offerID, actor.UserID, offerEventData(offer))
}

func (s *OfferService) reindex(ctx context.Context, offer *models.Offer) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexOffer(ctx, offer); err != nil {
		logging.FromContext(ctx).Warn("offer_index_failed", zap.Uint("offer_id", offer.ID), zap.Error(err))
	}
}

// recompute refreshes min_price/min_delivery_time from the tiers as they
// stand inside the current transaction.
func recompute(ctx context.Context, tx *repo.GormRepo, offerID uint) error {
	details, err := tx.ListOfferDetails(ctx, offerID)
	if err != nil {
		return err
	}
	minPrice, minDelivery := OfferAggregates(details)
	return tx.SetOfferAggregates(ctx, offerID, minPrice, minDelivery)
}

func detailFields(p transport.PatchOfferDetailRequest) map[string]any {
	f := map[string]any{}
	if p.Title != nil {
		f["title"] = strings.TrimSpace(*p.Title)
	}
	if p.Revisions != nil {
		f["revisions"] = *p.Revisions
	}
	if p.DeliveryTimeInDays != nil {
		f["delivery_time_in_days"] = *p.DeliveryTimeInDays
	}
	if p.Price != nil {
		f["price"] = *p.Price
	}
	if p.Features != nil {
		f["features"] = normalizeFeatures(p.Features)
	}
	return f
}

func checkPrice(verr *ValidationError, field string, price decimal.Decimal) {
	switch {
	case price.IsNegative():
		verr.Add(field, "must be greater than or equal to 0")
	case !price.Equal(price.Round(2)):
		verr.Add(field, "at most 2 decimal places")
	case price.GreaterThanOrEqual(maxPrice):
		verr.Add(field, "must be less than 100000000")
	}
}

func normalizeFeatures(raw datatypes.JSON) datatypes.JSON {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(s)
}

func offerEventData(o *models.Offer) map[string]any {
	return map[string]any{
		"title":             o.Title,
		"min_price":         o.MinPrice.StringFixed(2),
		"min_delivery_time": o.MinDeliveryTime,
		"tiers":             len(o.Details),
	}
}
