package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fadilmartias/resume-analyzer/internal/analyzer"
	"github.com/fadilmartias/resume-analyzer/internal/service"
	"github.com/fadilmartias/resume-analyzer/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const resumeText = `Jane Doe
jane@example.com
+62 812-3456-7890
OBJECTIVE
Frontend engineer.
EDUCATION
B.Sc. Computer Science
EXPERIENCE
Summer internship building React and JavaScript apps.
SKILLS
React, JavaScript, Node.js`

type analysisFixture struct {
	uc      *AnalysisUsecase
	repo    *fakeAnalysisRepo
	storage *fakeStorage
	geo     *fakeGeo
}

func newAnalysisFixture(t *testing.T, skills service.SkillExtractorInterface, text string, pages int) analysisFixture {
	t.Helper()
	f := analysisFixture{
		repo:    &fakeAnalysisRepo{},
		storage: &fakeStorage{},
		geo:     &fakeGeo{loc: service.Location{LatLong: "[1, 2]", City: "Bandung", State: "West Java", Country: "Indonesia"}},
	}
	f.uc = NewAnalysisUsecase(f.repo, f.storage, f.geo, skills, analyzer.New(analyzer.FixedSource(0)), 1, nil)
	f.uc.extractPDF = func([]byte, *zap.Logger) (util.PDFContent, error) {
		return util.PDFContent{Text: text, Pages: pages}, nil
	}
	f.uc.now = func() time.Time { return time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC) }
	return f
}

func validUpload() UploadRequest {
	return UploadRequest{
		FileName:  "jane.pdf",
		Data:      []byte("%PDF-1.7 fake"),
		Name:      "Jane D",
		Email:     "jane.form@example.com",
		Mobile:    "0800",
		IPAddress: "8.8.8.8",
		UserAgent: "test-agent",
	}
}

func TestAnalysisSubmit(t *testing.T) {
	f := newAnalysisFixture(t, nil, resumeText, 2)

	res, err := f.uc.Submit(context.Background(), validUpload())
	require.NoError(t, err)

	assert.Equal(t, analyzer.FieldWebDev, res.Analysis.Recommendation.Field)
	assert.Equal(t, analyzer.LevelIntermediate, res.Analysis.Level)
	assert.Equal(t, []string{"JavaScript", "React", "Node.js"}, res.Resume.Skills)
	assert.Equal(t, "Jane Doe", res.Resume.Contact.Name)
	assert.Equal(t, "jane@example.com", res.Resume.Contact.Email)

	require.Len(t, f.repo.records, 1)
	rec := f.repo.records[0]
	assert.Equal(t, res.Record.ID, rec.ID)
	assert.NotEmpty(t, rec.SecToken)
	assert.Equal(t, "2024-03-05_14:07:09", rec.Timestamp)
	assert.Equal(t, "Jane D", rec.ActName)
	assert.Equal(t, "jane.form@example.com", rec.ActMail)
	assert.Equal(t, "Jane Doe", rec.Name)
	assert.Equal(t, "jane@example.com", rec.EmailID)
	assert.Equal(t, 2, rec.PageNo)
	assert.Equal(t, "Web Development", rec.PredictedField)
	assert.Equal(t, "Intermediate", rec.UserLevel)
	assert.Equal(t, "Bandung", rec.City)
	assert.Equal(t, "[1, 2]", rec.LatLong)
	assert.Equal(t, "jane.pdf", rec.PDFName)
	assert.Equal(t, "/uploads/jane.pdf", rec.StoragePath)
	assert.Equal(t, res.Analysis.Score.Score, rec.ResumeScore)

	var skills []string
	require.NoError(t, json.Unmarshal(rec.ActualSkills, &skills))
	assert.Equal(t, res.Resume.Skills, skills)

	var courses []analyzer.Course
	require.NoError(t, json.Unmarshal(rec.RecommendedCourses, &courses))
	assert.Len(t, courses, 3)
	assert.Equal(t, res.Analysis.Courses, courses)

	assert.Equal(t, []string{"8.8.8.8"}, f.geo.ips)
	assert.Contains(t, f.storage.saved, "jane.pdf")
}

func TestAnalysisSubmit_FallsBackToFormContact(t *testing.T) {
	f := newAnalysisFixture(t, nil, "SKILLS\nexcel", 1)

	res, err := f.uc.Submit(context.Background(), validUpload())
	require.NoError(t, err)
	assert.Equal(t, "Jane D", res.Resume.Contact.Name)
	assert.Equal(t, "jane.form@example.com", res.Resume.Contact.Email)
	assert.Equal(t, "0800", res.Resume.Contact.Mobile)
	assert.Equal(t, analyzer.FieldGeneral, res.Analysis.Recommendation.Field)
}

func TestAnalysisSubmit_TruncatesLongFields(t *testing.T) {
	f := newAnalysisFixture(t, nil, resumeText, 1)
	req := validUpload()
	req.UserAgent = strings.Repeat("é", 1500)

	_, err := f.uc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, maxFieldLength, len([]rune(f.repo.records[0].UserAgent)))
}

func TestAnalysisSubmit_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*UploadRequest)
		err    error
	}{
		{name: "missing name", modify: func(r *UploadRequest) { r.Name = "  " }, err: ErrMissingContact},
		{name: "missing email", modify: func(r *UploadRequest) { r.Email = "" }, err: ErrMissingContact},
		{name: "invalid email", modify: func(r *UploadRequest) { r.Email = "not-an-email" }, err: ErrMissingContact},
		{name: "docx", modify: func(r *UploadRequest) { r.FileName = "cv.docx" }, err: ErrUnsupportedFile},
		{name: "empty file", modify: func(r *UploadRequest) { r.Data = nil }, err: ErrUnsupportedFile},
		{name: "too large", modify: func(r *UploadRequest) { r.Data = make([]byte, 1024*1024+1) }, err: ErrFileTooLarge},
		{name: "renamed non-pdf", modify: func(r *UploadRequest) { r.Data = []byte("this is a word document renamed to .pdf") }, err: util.ErrNotPDF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAnalysisFixture(t, nil, resumeText, 1)
			req := validUpload()
			tt.modify(&req)

			_, err := f.uc.Submit(context.Background(), req)
			assert.ErrorIs(t, err, tt.err)
			assert.Empty(t, f.repo.records)
			assert.Empty(t, f.storage.saved)
		})
	}
}

func TestAnalysisSubmit_ContactErrorsAreFormErrors(t *testing.T) {
	f := newAnalysisFixture(t, nil, resumeText, 1)
	req := validUpload()
	req.Name = ""

	_, err := f.uc.Submit(context.Background(), req)
	var formErr *util.FormError
	require.ErrorAs(t, err, &formErr)
	assert.Contains(t, formErr.Errors, "name")
}

func TestAnalysisSubmit_ExtractionError(t *testing.T) {
	f := newAnalysisFixture(t, nil, "", 1)
	f.uc.extractPDF = func([]byte, *zap.Logger) (util.PDFContent, error) {
		return util.PDFContent{}, util.ErrEmptyPDF
	}

	_, err := f.uc.Submit(context.Background(), validUpload())
	assert.ErrorIs(t, err, util.ErrEmptyPDF)
	assert.Empty(t, f.repo.records)
	assert.Empty(t, f.storage.saved)
}

func TestAnalysisSubmit_NonPDFIsUnsupported(t *testing.T) {
	f := newAnalysisFixture(t, nil, resumeText, 1)
	req := validUpload()
	req.Data = []byte("this is a word document renamed to .pdf")

	_, err := f.uc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnsupportedFile)
	assert.ErrorIs(t, err, util.ErrNotPDF)
	assert.Empty(t, f.storage.saved)
}

func TestAnalysisSubmit_CorruptPDFIsNotArchived(t *testing.T) {
	f := newAnalysisFixture(t, nil, "", 1)
	f.uc.extractPDF = func([]byte, *zap.Logger) (util.PDFContent, error) {
		return util.PDFContent{}, fmt.Errorf("%w: malformed xref", util.ErrCorruptPDF)
	}

	_, err := f.uc.Submit(context.Background(), validUpload())
	assert.ErrorIs(t, err, util.ErrCorruptPDF)
	assert.Empty(t, f.storage.saved)
	assert.Empty(t, f.repo.records)
}

func TestAnalysisSubmit_RepositoryError(t *testing.T) {
	f := newAnalysisFixture(t, nil, resumeText, 1)
	f.repo.err = errBoom

	_, err := f.uc.Submit(context.Background(), validUpload())
	assert.ErrorIs(t, err, errBoom)
}

func TestAnalysisSubmit_UsesSkillExtractor(t *testing.T) {
	skills := &fakeSkills{skills: []string{"TensorFlow", "tensorflow", " Pandas "}}
	f := newAnalysisFixture(t, skills, resumeText, 1)

	res, err := f.uc.Submit(context.Background(), validUpload())
	require.NoError(t, err)
	assert.Equal(t, 1, skills.calls)
	assert.Equal(t, []string{"TensorFlow", "Pandas"}, res.Resume.Skills)
	assert.Equal(t, analyzer.FieldDataScience, res.Analysis.Recommendation.Field)
}

func TestAnalysisSubmit_SkillExtractorFailureFallsBack(t *testing.T) {
	f := newAnalysisFixture(t, &fakeSkills{err: errBoom}, resumeText, 1)

	res, err := f.uc.Submit(context.Background(), validUpload())
	require.NoError(t, err)
	assert.Equal(t, []string{"JavaScript", "React", "Node.js"}, res.Resume.Skills)
}

func TestAnalyzeText(t *testing.T) {
	f := newAnalysisFixture(t, nil, "", 0)

	resume, a, err := f.uc.AnalyzeText(context.Background(), "OBJECTIVE SKILLS", []string{"kotlin"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"kotlin"}, resume.Skills)
	assert.Equal(t, analyzer.FieldAndroid, a.Recommendation.Field)
	assert.Equal(t, analyzer.LevelFresher, a.Level)
	assert.Len(t, a.Courses, 2)
	assert.Equal(t, 30, a.Score.Score)
	assert.Empty(t, f.repo.records)

	_, a, err = f.uc.AnalyzeText(context.Background(), "Swift developer", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, analyzer.FieldIOS, a.Recommendation.Field)

	_, a, err = f.uc.AnalyzeText(context.Background(), "Swift developer", []string{}, 0)
	require.NoError(t, err)
	assert.Equal(t, analyzer.FieldGeneral, a.Recommendation.Field)
}

func TestAnalyzeText_InvalidSkill(t *testing.T) {
	f := newAnalysisFixture(t, nil, "", 0)
	_, _, err := f.uc.AnalyzeText(context.Background(), "text", []string{string([]byte{0xff})}, 0)
	assert.ErrorIs(t, err, analyzer.ErrInvalidArgument)
}
