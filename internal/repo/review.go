package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/coderr/internal/models"
)

type ReviewFilter struct {
	BusinessUserID *uint
	ReviewerID     *uint
	OrderBy        string
}

var reviewOrderColumns = map[string]string{
	"updated_at":  "updated_at ASC",
	"-updated_at": "updated_at DESC",
	"created_at":  "created_at ASC",
	"-created_at": "created_at DESC",
	"rating":      "rating ASC",
	"-rating":     "rating DESC",
}

func ReviewOrderingAllowed(ordering string) bool {
	_, ok := reviewOrderColumns[ordering]
	return ok
}

func (r *GormRepo) ReviewExists(ctx context.Context, businessUserID, reviewerID uint) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Review{}).
		Where("business_user_id = ? AND reviewer_id = ?", businessUserID, reviewerID).
		Count(&n).Error
	return n > 0, err
}

func (r *GormRepo) CreateReview(ctx context.Context, review *models.Review) error {
	return translate(r.DB.WithContext(ctx).Omit(clause.Associations).Create(review).Error)
}

func (r *GormRepo) GetReview(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.DB.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *GormRepo) ListReviews(ctx context.Context, f ReviewFilter) ([]models.Review, error) {
	q := r.DB.WithContext(ctx).Model(&models.Review{})
	if f.BusinessUserID != nil {
		q = q.Where("business_user_id = ?", *f.BusinessUserID)
	}
	if f.ReviewerID != nil {
		q = q.Where("reviewer_id = ?", *f.ReviewerID)
	}

	order, ok := reviewOrderColumns[f.OrderBy]
	if !ok {
		order = reviewOrderColumns["-updated_at"]
	}

	var items []models.Review
	if err := q.Order(order).Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) UpdateReview(ctx context.Context, review *models.Review, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Model(review).Omit(clause.Associations).Updates(fields).Error
}

func (r *GormRepo) DeleteReview(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Review{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReviewStats returns the review count and the raw average rating
// (nil when there are no reviews).
func (r *GormRepo) ReviewStats(ctx context.Context) (int64, *float64, error) {
	var row struct {
		Count   int64
		Average *float64
	}
	err := r.DB.WithContext(ctx).Model(&models.Review{}).
		Select("COUNT(*) AS count, AVG(rating) AS average").
		Scan(&row).Error
	if err != nil {
		return 0, nil, err
	}
	return row.Count, row.Average, nil
}
