package postgres

import (
	"context"
	"errors"

	"github.com/yoockh/mentorship/internal/models"
	"github.com/yoockh/mentorship/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository is the profile store the personalization service reads snapshots from.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error)
	Upsert(ctx context.Context, p *models.UserProfile) error
	Delete(ctx context.Context, userID string) error
}

type profileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	var rec models.ProfileRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec.ToProfile(), nil
}

func (r *profileRepo) Upsert(ctx context.Context, p *models.UserProfile) error {
	rec := models.NewProfileRecord(p)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"age_bracket", "interests", "goals", "experience_level", "skills",
				"learning_preferences", "career_preferences", "updated_at",
			}),
		}).
		Create(&rec).Error
}

func (r *profileRepo) Delete(ctx context.Context, userID string) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.ProfileRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
