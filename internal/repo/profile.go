package repo

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/coderr/internal/models"
)

func (r *GormRepo) CreateProfile(ctx context.Context, p *models.Profile) error {
	return translate(r.DB.WithContext(ctx).Omit(clause.Associations).Create(p).Error)
}

// GetProfileByUserID looks the profile up by its user, not its own key.
func (r *GormRepo) GetProfileByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var p models.Profile
	if err := r.DB.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) ListProfilesByRole(ctx context.Context, role string) ([]models.Profile, error) {
	var items []models.Profile
	err := r.DB.WithContext(ctx).
		Preload("User").
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("users.role = ?", role).
		Order("profiles.user_id ASC").
		Find(&items).Error
	return items, err
}

func (r *GormRepo) UpdateProfile(ctx context.Context, p *models.Profile, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Model(p).Omit(clause.Associations).Updates(fields).Error
}
