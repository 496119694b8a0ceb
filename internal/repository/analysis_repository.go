package repository

import (
	"context"

	"github.com/fadilmartias/resume-analyzer/internal/model"
	"gorm.io/gorm"
)

// LabelCount is one row of a GROUP BY count.
type LabelCount struct {
	Label string
	Count int64
}

type AnalysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{db}
}

func (r *AnalysisRepository) Create(ctx context.Context, record *model.AnalysisRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *AnalysisRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.AnalysisRecord{}).Count(&total).Error
	return total, err
}

// List returns records newest first.
func (r *AnalysisRepository) List(ctx context.Context, offset, limit int) ([]model.AnalysisRecord, error) {
	var records []model.AnalysisRecord
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	err := q.Find(&records).Error
	return records, err
}

func (r *AnalysisRepository) CountByField(ctx context.Context) ([]LabelCount, error) {
	return r.countBy(ctx, "predicted_field")
}

func (r *AnalysisRepository) CountByLevel(ctx context.Context) ([]LabelCount, error) {
	return r.countBy(ctx, "user_level")
}

func (r *AnalysisRepository) Scores(ctx context.Context) ([]int, error) {
	var scores []int
	err := r.db.WithContext(ctx).Model(&model.AnalysisRecord{}).Pluck("resume_score", &scores).Error
	return scores, err
}

func (r *AnalysisRepository) countBy(ctx context.Context, column string) ([]LabelCount, error) {
	var rows []LabelCount
	err := r.db.WithContext(ctx).
		Model(&model.AnalysisRecord{}).
		Select(column + " AS label, COUNT(*) AS count").
		Group(column).
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

type AnalysisRepositoryInterface interface {
	Create(ctx context.Context, record *model.AnalysisRecord) error
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, offset, limit int) ([]model.AnalysisRecord, error)
	CountByField(ctx context.Context) ([]LabelCount, error)
	CountByLevel(ctx context.Context) ([]LabelCount, error)
	Scores(ctx context.Context) ([]int, error)
}
