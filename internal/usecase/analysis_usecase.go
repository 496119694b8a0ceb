package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fadilmartias/resume-analyzer/internal/analyzer"
	"github.com/fadilmartias/resume-analyzer/internal/model"
	"github.com/fadilmartias/resume-analyzer/internal/repository"
	"github.com/fadilmartias/resume-analyzer/internal/service"
	"github.com/fadilmartias/resume-analyzer/internal/util"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	TimestampLayout = "2006-01-02_15:04:05"
	maxFieldLength  = 1000
)

var (
	ErrMissingContact  = errors.New("name and email are required")
	ErrUnsupportedFile = errors.New("only PDF resumes are supported")
	ErrFileTooLarge    = errors.New("resume file is too large")
)

// UploadRequest is one resume submitted from the user page.
type UploadRequest struct {
	FileName    string
	ContentType string
	Data        []byte
	Name        string
	Email       string
	Mobile      string
	CourseCount int
	IPAddress   string
	HostName    string
	UserAgent   string
}

type AnalysisResult struct {
	Record   *model.AnalysisRecord
	Resume   analyzer.ExtractedResume
	Analysis analyzer.Analysis
	Location service.Location
}

type pdfExtractor func(data []byte, log *zap.Logger) (util.PDFContent, error)

type AnalysisUsecase struct {
	repo           repository.AnalysisRepositoryInterface
	storage        service.FileStorageInterface
	geo            service.GeoServiceInterface
	skills         service.SkillExtractorInterface
	analyzer       *analyzer.Analyzer
	maxUploadBytes int64
	log            *zap.Logger

	extractPDF pdfExtractor
	now        func() time.Time
}

// NewAnalysisUsecase wires the upload flow. geo and skills may be nil: the
// location then stays unknown and skills come from the built-in vocabulary.
func NewAnalysisUsecase(
	repo repository.AnalysisRepositoryInterface,
	storage service.FileStorageInterface,
	geo service.GeoServiceInterface,
	skills service.SkillExtractorInterface,
	a *analyzer.Analyzer,
	maxUploadMB int,
	log *zap.Logger,
) *AnalysisUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	if maxUploadMB <= 0 {
		maxUploadMB = 5
	}
	return &AnalysisUsecase{
		repo:           repo,
		storage:        storage,
		geo:            geo,
		skills:         skills,
		analyzer:       a,
		maxUploadBytes: int64(maxUploadMB) * 1024 * 1024,
		log:            log.Named("analysis"),
		extractPDF:     util.ExtractPDF,
		now:            time.Now,
	}
}

func (uc *AnalysisUsecase) MaxUploadBytes() int64 {
	return uc.maxUploadBytes
}

// Submit validates and extracts an uploaded resume, archives it, analyses it
// and stores the result as a user_data row. Rejected uploads are never
// archived.
func (uc *AnalysisUsecase) Submit(ctx context.Context, req UploadRequest) (*AnalysisResult, error) {
	if err := uc.validateUpload(&req); err != nil {
		return nil, err
	}

	content, err := uc.extractPDF(req.Data, uc.log)
	if err != nil {
		return nil, fmt.Errorf("extract resume: %w", err)
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/pdf"
	}
	storedAt, err := uc.storage.Save(ctx, req.FileName, req.Data, contentType)
	if err != nil {
		return nil, fmt.Errorf("store resume: %w", err)
	}
	uc.log.Info("resume stored", zap.String("file", req.FileName), zap.String("path", storedAt))

	resume := analyzer.ExtractedResume{
		RawText:   content.Text,
		Skills:    uc.extractSkills(ctx, content.Text),
		PageCount: content.Pages,
		Contact:   analyzer.ExtractContact(content.Text),
	}
	if resume.Contact.Name == "" {
		resume.Contact.Name = req.Name
	}
	if resume.Contact.Email == "" {
		resume.Contact.Email = req.Email
	}
	if resume.Contact.Mobile == "" {
		resume.Contact.Mobile = req.Mobile
	}

	analysis, err := uc.analyzer.Analyze(resume, req.CourseCount)
	if err != nil {
		return nil, err
	}

	loc := service.UnknownLocation()
	if uc.geo != nil {
		loc = uc.geo.Locate(ctx, req.IPAddress)
	}

	record, err := uc.buildRecord(req, resume, analysis, loc, storedAt)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("save analysis: %w", err)
	}

	uc.log.Info("resume analysed",
		zap.String("id", record.ID.String()),
		zap.String("field", record.PredictedField),
		zap.String("level", record.UserLevel),
		zap.Int("score", record.ResumeScore),
	)
	return &AnalysisResult{Record: record, Resume: resume, Analysis: analysis, Location: loc}, nil
}

// AnalyzeText runs the analysis over already extracted text without storing
// anything. A nil skill list is filled from the text.
func (uc *AnalysisUsecase) AnalyzeText(ctx context.Context, text string, skills []string, courseCount int) (analyzer.ExtractedResume, analyzer.Analysis, error) {
	if skills == nil {
		skills = uc.extractSkills(ctx, text)
	}
	resume := analyzer.ExtractedResume{
		RawText: text,
		Skills:  skills,
		Contact: analyzer.ExtractContact(text),
	}
	analysis, err := uc.analyzer.Analyze(resume, courseCount)
	if err != nil {
		return analyzer.ExtractedResume{}, analyzer.Analysis{}, err
	}
	return resume, analysis, nil
}

func (uc *AnalysisUsecase) validateUpload(req *UploadRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Mobile = strings.TrimSpace(req.Mobile)

	errs := map[string]string{}
	if req.Name == "" {
		errs["name"] = "name is required"
	}
	if req.Email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		errs["email"] = "email is not valid"
	}
	if len(errs) > 0 {
		return util.NewFormError("invalid contact details", errs, ErrMissingContact)
	}

	if !strings.EqualFold(filepath.Ext(req.FileName), ".pdf") || len(req.Data) == 0 {
		return fmt.Errorf("%w: %q", ErrUnsupportedFile, req.FileName)
	}
	if int64(len(req.Data)) > uc.maxUploadBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, len(req.Data), uc.maxUploadBytes)
	}
	if !util.IsPDF(req.Data) {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedFile, req.FileName, util.ErrNotPDF)
	}
	return nil
}

// extractSkills prefers the model extraction and falls back to the keyword
// vocabulary when it is unavailable or returns nothing.
func (uc *AnalysisUsecase) extractSkills(ctx context.Context, text string) []string {
	if uc.skills != nil && strings.TrimSpace(text) != "" {
		skills, err := uc.skills.ExtractSkills(ctx, text)
		if err != nil {
			uc.log.Warn("skill extraction failed, using vocabulary", zap.Error(err))
		} else if skills = analyzer.NormalizeSkills(skills); len(skills) > 0 {
			return skills
		}
	}
	return analyzer.ExtractSkills(text)
}

func (uc *AnalysisUsecase) buildRecord(req UploadRequest, resume analyzer.ExtractedResume, a analyzer.Analysis, loc service.Location, storedAt string) (*model.AnalysisRecord, error) {
	actual, err := marshalJSON(resume.Skills)
	if err != nil {
		return nil, err
	}
	recommended, err := marshalJSON(a.Recommendation.RecommendedSkills)
	if err != nil {
		return nil, err
	}
	courses, err := marshalJSON(a.Courses)
	if err != nil {
		return nil, err
	}

	return &model.AnalysisRecord{
		ID:                 uuid.New(),
		SecToken:           uuid.NewString(),
		IPAddress:          truncate(req.IPAddress),
		HostName:           truncate(req.HostName),
		UserAgent:          truncate(req.UserAgent),
		LatLong:            truncate(loc.LatLong),
		City:               truncate(loc.City),
		State:              truncate(loc.State),
		Country:            truncate(loc.Country),
		ActName:            truncate(req.Name),
		ActMail:            truncate(req.Email),
		ActMob:             truncate(req.Mobile),
		Name:               truncate(resume.Contact.Name),
		EmailID:            truncate(resume.Contact.Email),
		ResumeScore:        a.Score.Score,
		Timestamp:          uc.now().Format(TimestampLayout),
		PageNo:             resume.PageCount,
		PredictedField:     string(a.Recommendation.Field),
		UserLevel:          string(a.Level),
		ActualSkills:       actual,
		RecommendedSkills:  recommended,
		RecommendedCourses: courses,
		PDFName:            truncate(filepath.Base(req.FileName)),
		StoragePath:        truncate(storedAt),
	}, nil
}

func marshalJSON(v any) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return datatypes.JSON(b), nil
}

// truncate cuts s to maxFieldLength characters.
func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxFieldLength {
		return s
	}
	return string([]rune(s)[:maxFieldLength])
}
