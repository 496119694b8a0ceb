package dto

import (
	"time"

	"github.com/google/uuid"
)

type CountDTO struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type HistogramBinDTO struct {
	From  int   `json:"from"`
	To    int   `json:"to"`
	Count int64 `json:"count"`
}

type RecordSummaryDTO struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	PredictedField string    `json:"predicted_field"`
	UserLevel      string    `json:"user_level"`
	ResumeScore    int       `json:"resume_score"`
	CreatedAt      time.Time `json:"created_at"`
}

type DashboardDTO struct {
	TotalUsers        int64              `json:"total_users"`
	Records           []RecordSummaryDTO `json:"records"`
	FieldDistribution []CountDTO         `json:"field_distribution"`
	LevelDistribution []CountDTO         `json:"level_distribution"`
	ScoreHistogram    []HistogramBinDTO  `json:"score_histogram"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}
