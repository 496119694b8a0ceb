package handler

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fadilmartias/resume-analyzer/internal/analyzer"
	"github.com/fadilmartias/resume-analyzer/internal/dto"
	"github.com/fadilmartias/resume-analyzer/internal/middleware"
	"github.com/fadilmartias/resume-analyzer/internal/usecase"
	"github.com/fadilmartias/resume-analyzer/internal/util"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type analysisUsecase interface {
	Submit(ctx context.Context, req usecase.UploadRequest) (*usecase.AnalysisResult, error)
	AnalyzeText(ctx context.Context, text string, skills []string, courseCount int) (analyzer.ExtractedResume, analyzer.Analysis, error)
	MaxUploadBytes() int64
}

type AnalyzeHandler struct {
	uc  analysisUsecase
	log *zap.Logger
}

func NewAnalyzeHandler(uc analysisUsecase, log *zap.Logger) *AnalyzeHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AnalyzeHandler{uc: uc, log: log}
}

func (h *AnalyzeHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/resumes", middleware.RateLimiter(5, time.Minute), h.Upload)
	router.Post("/analyze", h.AnalyzeText)
}

// Upload accepts a multipart resume together with the uploader's contact
// details and returns the stored analysis.
func (h *AnalyzeHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "resume file is required",
		}, err)
	}
	if file.Size > h.uc.MaxUploadBytes() {
		return respondError(c, "", fmt.Errorf("%w (max %d MB)", usecase.ErrFileTooLarge, h.uc.MaxUploadBytes()/(1024*1024)))
	}

	courseCount, err := parseCourseCount(c.FormValue("course_count"))
	if err != nil {
		return respondError(c, "", err)
	}

	f, err := file.Open()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "cannot read resume file"}, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.uc.MaxUploadBytes()+1))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "cannot read resume file"}, err)
	}

	result, err := h.uc.Submit(c.UserContext(), usecase.UploadRequest{
		FileName:    file.Filename,
		ContentType: file.Header.Get(fiber.HeaderContentType),
		Data:        data,
		Name:        c.FormValue("name"),
		Email:       c.FormValue("email"),
		Mobile:      c.FormValue("mobile"),
		CourseCount: courseCount,
		IPAddress:   c.IP(),
		HostName:    c.Hostname(),
		UserAgent:   c.Get(fiber.HeaderUserAgent),
	})
	if err != nil {
		h.log.Warn("resume upload failed", zap.String("file", file.Filename), zap.Error(err))
		return respondError(c, "failed to analyse resume", err)
	}

	resp := dto.NewAnalysisDTO(result.Resume, result.Analysis)
	resp.ID = &result.Record.ID
	resp.StoredAt = result.Record.StoragePath
	resp.Location = &dto.LocationDTO{
		LatLong: result.Location.LatLong,
		City:    result.Location.City,
		State:   result.Location.State,
		Country: result.Location.Country,
	}
	if !result.Record.CreatedAt.IsZero() {
		resp.CreatedAt = &result.Record.CreatedAt
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success analyse resume",
		Data:    resp,
	})
}

// AnalyzeText runs the analysis on posted text without storing anything.
func (h *AnalyzeHandler) AnalyzeText(c *fiber.Ctx) error {
	var req dto.AnalyzeTextRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.Text == nil {
		return respondError(c, "", fmt.Errorf("text is required: %w", analyzer.ErrInvalidArgument))
	}
	skills, err := req.SkillStrings()
	if err != nil {
		return respondError(c, "", err)
	}

	resume, analysis, err := h.uc.AnalyzeText(c.UserContext(), *req.Text, skills, req.CourseCount)
	if err != nil {
		return respondError(c, "failed to analyse text", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success analyse text",
		Data:    dto.NewAnalysisDTO(resume, analysis),
	})
}

func parseCourseCount(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("course_count must be an integer: %w", analyzer.ErrInvalidArgument)
	}
	return n, nil
}
