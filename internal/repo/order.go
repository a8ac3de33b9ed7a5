package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/coderr/internal/models"
)

func (r *GormRepo) OrderExists(ctx context.Context, customerID, offerDetailID uint) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("customer_user_id = ? AND offer_detail_id = ?", customerID, offerDetailID).
		Count(&n).Error
	return n > 0, err
}

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return translate(r.DB.WithContext(ctx).Omit(clause.Associations).Create(order).Error)
}

// GetOrder loads the order with its tier and the tier's offer for projection.
func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("OfferDetail.Offer").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns every order when userID is 0, otherwise the orders the
// user takes part in as customer or business.
func (r *GormRepo) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Preload("OfferDetail.Offer")
	if userID != 0 {
		q = q.Where("customer_user_id = ? OR business_user_id = ?", userID, userID)
	}

	var orders []models.Order
	if err := q.Order("created_at DESC").Order("id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, order *models.Order, status string) error {
	return r.DB.WithContext(ctx).Model(order).Omit(clause.Associations).Update("status", status).Error
}

func (r *GormRepo) DeleteOrder(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Order{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountOrders counts a business user's orders, optionally by status.
func (r *GormRepo) CountOrders(ctx context.Context, businessUserID uint, status string) (int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Where("business_user_id = ?", businessUserID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}
