package repository

import (
	"context"

	"github.com/fadilmartias/resume-analyzer/internal/model"
	"gorm.io/gorm"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db}
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *FeedbackRepository) Recent(ctx context.Context, limit int) ([]model.Feedback, error) {
	var items []model.Feedback
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&items).Error
	return items, err
}

func (r *FeedbackRepository) CountByScore(ctx context.Context) ([]LabelCount, error) {
	var rows []LabelCount
	err := r.db.WithContext(ctx).
		Model(&model.Feedback{}).
		Select("CAST(feed_score AS TEXT) AS label, COUNT(*) AS count").
		Group("feed_score").
		Order("feed_score").
		Scan(&rows).Error
	return rows, err
}

type FeedbackRepositoryInterface interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	Recent(ctx context.Context, limit int) ([]model.Feedback, error)
	CountByScore(ctx context.Context) ([]LabelCount, error)
}
