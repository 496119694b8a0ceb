package usecase

import (
	"bytes"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"

	"github.com/fadilmartias/resume-analyzer/internal/config"
	"github.com/fadilmartias/resume-analyzer/internal/dto"
	"github.com/fadilmartias/resume-analyzer/internal/model"
	"github.com/fadilmartias/resume-analyzer/internal/repository"
	"github.com/fadilmartias/resume-analyzer/internal/response"
	"github.com/fadilmartias/resume-analyzer/internal/service"
	"go.uber.org/zap"
)

const (
	HistogramBins     = 20
	HistogramBinWidth = 5
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AdminUsecase struct {
	repo  repository.AnalysisRepositoryInterface
	admin *config.AdminConfig
	log   *zap.Logger
}

func NewAdminUsecase(repo repository.AnalysisRepositoryInterface, admin *config.AdminConfig, log *zap.Logger) *AdminUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminUsecase{repo: repo, admin: admin, log: log.Named("admin")}
}

// Login checks the credentials against the configured admin account. An
// unconfigured account never authenticates.
func (uc *AdminUsecase) Login(username, password string) error {
	if uc.admin.Username == "" || uc.admin.Password == "" {
		uc.log.Warn("admin login attempted but no admin account is configured")
		return ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(uc.admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(uc.admin.Password)) == 1
	if !userOK || !passOK {
		uc.log.Warn("admin login failed", zap.String("username", username))
		return ErrInvalidCredentials
	}
	uc.log.Info("admin logged in", zap.String("username", username))
	return nil
}

func (uc *AdminUsecase) Dashboard(ctx context.Context, page, pageSize int) (dto.DashboardDTO, response.Pagination, error) {
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return dto.DashboardDTO{}, response.Pagination{}, fmt.Errorf("count records: %w", err)
	}
	pagination := response.NewPagination(page, pageSize, total)

	records, err := uc.repo.List(ctx, pagination.Offset(), pagination.PageSize)
	if err != nil {
		return dto.DashboardDTO{}, response.Pagination{}, fmt.Errorf("list records: %w", err)
	}
	fields, err := uc.repo.CountByField(ctx)
	if err != nil {
		return dto.DashboardDTO{}, response.Pagination{}, fmt.Errorf("count by field: %w", err)
	}
	levels, err := uc.repo.CountByLevel(ctx)
	if err != nil {
		return dto.DashboardDTO{}, response.Pagination{}, fmt.Errorf("count by level: %w", err)
	}
	scores, err := uc.repo.Scores(ctx)
	if err != nil {
		return dto.DashboardDTO{}, response.Pagination{}, fmt.Errorf("load scores: %w", err)
	}

	summaries := make([]dto.RecordSummaryDTO, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, dto.RecordSummaryDTO{
			ID:             r.ID,
			Name:           r.Name,
			PredictedField: r.PredictedField,
			UserLevel:      r.UserLevel,
			ResumeScore:    r.ResumeScore,
			CreatedAt:      r.CreatedAt,
		})
	}

	return dto.DashboardDTO{
		TotalUsers:        total,
		Records:           summaries,
		FieldDistribution: toCountDTOs(fields),
		LevelDistribution: toCountDTOs(levels),
		ScoreHistogram:    ScoreHistogram(scores),
	}, pagination, nil
}

// ScoreHistogram buckets scores into 20 bins of width 5 covering 0..100.
// Out of range scores are clamped and 100 falls in the last bin.
func ScoreHistogram(scores []int) []dto.HistogramBinDTO {
	bins := make([]dto.HistogramBinDTO, HistogramBins)
	for i := range bins {
		bins[i].From = i * HistogramBinWidth
		bins[i].To = (i + 1) * HistogramBinWidth
	}
	for _, s := range scores {
		i := s / HistogramBinWidth
		if i < 0 {
			i = 0
		}
		if i >= HistogramBins {
			i = HistogramBins - 1
		}
		bins[i].Count++
	}
	return bins
}

func (uc *AdminUsecase) Records(ctx context.Context) ([]model.AnalysisRecord, error) {
	records, err := uc.repo.List(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

func (uc *AdminUsecase) ExportCSV(ctx context.Context, w io.Writer) error {
	records, err := uc.Records(ctx)
	if err != nil {
		return err
	}
	return service.WriteCSV(w, records)
}

func (uc *AdminUsecase) ExportXLSX(ctx context.Context) (*bytes.Buffer, error) {
	records, err := uc.Records(ctx)
	if err != nil {
		return nil, err
	}
	return service.BuildWorkbook(records)
}
