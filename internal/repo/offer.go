package repo

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/coderr/internal/models"
)

// OfferFilter holds the list predicates; nil/zero fields are not applied.
type OfferFilter struct {
	CreatorID       *uint
	MinPrice        *decimal.Decimal
	MaxDeliveryTime *int
	Search          string
	// IDs restricts results to a precomputed match set (search index hits).
	IDs     []uint
	UseIDs  bool
	OrderBy string
}

var offerOrderColumns = map[string]string{
	"updated_at":  "offers.updated_at ASC",
	"-updated_at": "offers.updated_at DESC",
	"created_at":  "offers.created_at ASC",
	"-created_at": "offers.created_at DESC",
	"min_price":   "offers.min_price ASC",
	"-min_price":  "offers.min_price DESC",
}

// OfferOrderingAllowed reports whether ordering is a supported sort key.
func OfferOrderingAllowed(ordering string) bool {
	_, ok := offerOrderColumns[ordering]
	return ok
}

func (r *GormRepo) CreateOffer(ctx context.Context, offer *models.Offer) error {
	db := r.DB.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(offer).Error; err != nil {
		return translate(err)
	}
	for i := range offer.Details {
		offer.Details[i].OfferID = offer.ID
	}
	if len(offer.Details) > 0 {
		if err := db.Omit(clause.Associations).Create(&offer.Details).Error; err != nil {
			return translate(err)
		}
	}
	return nil
}

func (r *GormRepo) GetOffer(ctx context.Context, id uint) (*models.Offer, error) {
	var offer models.Offer
	err := r.DB.WithContext(ctx).
		Preload("User").
		Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("offer_details.id ASC") }).
		First(&offer, id).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// LockOffer loads the offer row under a write lock for the rest of the transaction.
func (r *GormRepo) LockOffer(ctx context.Context, id uint) (*models.Offer, error) {
	var offer models.Offer
	if err := r.forUpdate(r.DB.WithContext(ctx)).First(&offer, id).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *GormRepo) offerQuery(ctx context.Context, f OfferFilter) *gorm.DB {
	q := r.DB.WithContext(ctx).Model(&models.Offer{})

	if f.CreatorID != nil {
		q = q.Where("offers.user_id = ?", *f.CreatorID)
	}
	if f.MinPrice != nil || f.MaxDeliveryTime != nil {
		// one tier has to satisfy every tier predicate; IN keeps offers distinct
		sub := r.DB.WithContext(ctx).Model(&models.OfferDetail{}).Select("offer_id")
		if f.MinPrice != nil {
			sub = sub.Where("price >= ?", *f.MinPrice)
		}
		if f.MaxDeliveryTime != nil {
			sub = sub.Where("delivery_time_in_days <= ?", *f.MaxDeliveryTime)
		}
		q = q.Where("offers.id IN (?)", sub)
	}
	if f.UseIDs {
		q = q.Where("offers.id IN ?", f.IDs)
	} else if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(offers.title) LIKE ? OR LOWER(offers.description) LIKE ?", like, like)
	}
	return q
}

func (r *GormRepo) ListOffers(ctx context.Context, f OfferFilter, offset, limit int) (int64, []models.Offer, error) {
	if f.UseIDs && len(f.IDs) == 0 {
		return 0, []models.Offer{}, nil
	}

	var total int64
	if err := r.offerQuery(ctx, f).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	order, ok := offerOrderColumns[f.OrderBy]
	if !ok {
		order = offerOrderColumns["-updated_at"]
	}

	items := make([]models.Offer, 0, limit)
	err := r.offerQuery(ctx, f).
		Preload("User").
		Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("offer_details.id ASC") }).
		Order(order).
		Order("offers.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) UpdateOffer(ctx context.Context, offer *models.Offer, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Model(offer).Omit(clause.Associations).Updates(fields).Error
}

// TouchOffer bumps updated_at after a tier-only change.
func (r *GormRepo) TouchOffer(ctx context.Context, offerID uint) error {
	return r.DB.WithContext(ctx).Model(&models.Offer{}).Where("id = ?", offerID).
		Update("updated_at", r.DB.NowFunc()).Error
}

func (r *GormRepo) SetOfferAggregates(ctx context.Context, offerID uint, minPrice decimal.Decimal, minDelivery int) error {
	return r.DB.WithContext(ctx).Model(&models.Offer{}).Where("id = ?", offerID).
		UpdateColumns(map[string]any{
			"min_price":         minPrice,
			"min_delivery_time": minDelivery,
		}).Error
}

func (r *GormRepo) ListOfferDetails(ctx context.Context, offerID uint) ([]models.OfferDetail, error) {
	var items []models.OfferDetail
	err := r.DB.WithContext(ctx).Where("offer_id = ?", offerID).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *GormRepo) GetOfferDetail(ctx context.Context, id uint) (*models.OfferDetail, error) {
	var d models.OfferDetail
	if err := r.DB.WithContext(ctx).Preload("Offer").First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *GormRepo) UpdateOfferDetail(ctx context.Context, d *models.OfferDetail, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return translate(r.DB.WithContext(ctx).Model(d).Omit(clause.Associations).Updates(fields).Error)
}

// DeleteOffer removes the offer, its tiers, and every order placed on them.
func (r *GormRepo) DeleteOffer(ctx context.Context, id uint) error {
	db := r.DB.WithContext(ctx)
	tiers := db.Model(&models.OfferDetail{}).Select("id").Where("offer_id = ?", id)

	if err := db.Where("offer_detail_id IN (?)", tiers).Delete(&models.Order{}).Error; err != nil {
		return err
	}
	if err := db.Where("offer_id = ?", id).Delete(&models.OfferDetail{}).Error; err != nil {
		return err
	}
	res := db.Delete(&models.Offer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) DeleteOfferDetail(ctx context.Context, id uint) error {
	db := r.DB.WithContext(ctx)
	if err := db.Where("offer_detail_id = ?", id).Delete(&models.Order{}).Error; err != nil {
		return err
	}
	res := db.Delete(&models.OfferDetail{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) CountOffers(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Offer{}).Count(&n).Error
	return n, err
}
