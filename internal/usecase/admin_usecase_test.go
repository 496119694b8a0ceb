package usecase

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fadilmartias/resume-analyzer/internal/config"
	"github.com/fadilmartias/resume-analyzer/internal/dto"
	"github.com/fadilmartias/resume-analyzer/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminFixture(records ...model.AnalysisRecord) (*AdminUsecase, *fakeAnalysisRepo) {
	repo := &fakeAnalysisRepo{records: records}
	admin := &config.AdminConfig{Username: "admin", Password: "s3cret", SessionTTL: time.Hour}
	return NewAdminUsecase(repo, admin, nil), repo
}

func record(name, field, level string, score int) model.AnalysisRecord {
	return model.AnalysisRecord{
		ID:             uuid.New(),
		Name:           name,
		PredictedField: field,
		UserLevel:      level,
		ResumeScore:    score,
		CreatedAt:      time.Now(),
	}
}

func TestAdminLogin(t *testing.T) {
	uc, _ := newAdminFixture()

	assert.NoError(t, uc.Login("admin", "s3cret"))
	assert.ErrorIs(t, uc.Login("admin", "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, uc.Login("root", "s3cret"), ErrInvalidCredentials)
	assert.ErrorIs(t, uc.Login("", ""), ErrInvalidCredentials)
}

func TestAdminLogin_Unconfigured(t *testing.T) {
	uc := NewAdminUsecase(&fakeAnalysisRepo{}, &config.AdminConfig{}, nil)
	assert.ErrorIs(t, uc.Login("", ""), ErrInvalidCredentials)
}

func TestScoreHistogram(t *testing.T) {
	bins := ScoreHistogram([]int{0, 4, 5, 47, 99, 100, 130, -3})
	require.Len(t, bins, HistogramBins)

	assert.Equal(t, dto.HistogramBinDTO{From: 0, To: 5, Count: 3}, bins[0])
	assert.Equal(t, dto.HistogramBinDTO{From: 5, To: 10, Count: 1}, bins[1])
	assert.Equal(t, int64(1), bins[9].Count)
	assert.Equal(t, dto.HistogramBinDTO{From: 95, To: 100, Count: 3}, bins[19])

	var total int64
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, int64(8), total)
}

func TestScoreHistogram_Empty(t *testing.T) {
	bins := ScoreHistogram(nil)
	require.Len(t, bins, HistogramBins)
	for _, b := range bins {
		assert.Zero(t, b.Count)
	}
}

func TestAdminDashboard(t *testing.T) {
	uc, _ := newAdminFixture(
		record("A", "Web Development", "Fresher", 40),
		record("B", "Web Development", "Intermediate", 72),
		record("C", "Data Science", "Fresher", 100),
	)

	d, p, err := uc.Dashboard(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.Equal(t, int64(3), d.TotalUsers)
	assert.Len(t, d.Records, 2)
	assert.Equal(t, "A", d.Records[0].Name)
	assert.Equal(t, []dto.CountDTO{{Label: "Web Development", Count: 2}, {Label: "Data Science", Count: 1}}, d.FieldDistribution)
	assert.Equal(t, []dto.CountDTO{{Label: "Fresher", Count: 2}, {Label: "Intermediate", Count: 1}}, d.LevelDistribution)
	assert.Equal(t, int64(1), d.ScoreHistogram[8].Count)
	assert.Equal(t, int64(1), d.ScoreHistogram[14].Count)
	assert.Equal(t, int64(1), d.ScoreHistogram[19].Count)

	assert.Equal(t, int64(2), p.TotalPages)
	assert.True(t, p.HasMore)

	d, p, err = uc.Dashboard(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, d.Records, 1)
	assert.False(t, p.HasMore)
}

func TestAdminDashboard_RepositoryError(t *testing.T) {
	uc, repo := newAdminFixture()
	repo.err = errBoom
	_, _, err := uc.Dashboard(context.Background(), 1, 10)
	assert.ErrorIs(t, err, errBoom)
}

func TestAdminExport(t *testing.T) {
	uc, _ := newAdminFixture(record("A", "General", "Fresher", 10), record("B", "General", "Fresher", 20))

	var buf bytes.Buffer
	require.NoError(t, uc.ExportCSV(context.Background(), &buf))
	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))

	xlsx, err := uc.ExportXLSX(context.Background())
	require.NoError(t, err)
	assert.NotZero(t, xlsx.Len())
}
