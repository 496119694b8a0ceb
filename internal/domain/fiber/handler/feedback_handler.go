package handler

import (
	"context"
	"time"

	"github.com/fadilmartias/resume-analyzer/internal/dto"
	"github.com/fadilmartias/resume-analyzer/internal/middleware"
	"github.com/fadilmartias/resume-analyzer/internal/model"
	"github.com/fadilmartias/resume-analyzer/internal/util"
	"github.com/gofiber/fiber/v2"
)

type feedbackUsecase interface {
	Submit(ctx context.Context, req dto.FeedbackRequest) (*model.Feedback, error)
	Summary(ctx context.Context) (dto.FeedbackSummaryDTO, error)
}

type FeedbackHandler struct {
	uc feedbackUsecase
}

func NewFeedbackHandler(uc feedbackUsecase) *FeedbackHandler {
	return &FeedbackHandler{uc: uc}
}

func (h *FeedbackHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/feedback", middleware.RateLimiter(10, time.Minute), h.Submit)
	router.Get("/feedback", h.Summary)
}

func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	feedback, err := h.uc.Submit(c.UserContext(), req)
	if err != nil {
		return respondError(c, "failed to save feedback", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Thanks for your feedback",
		Data:    fiber.Map{"id": feedback.ID, "timestamp": feedback.Timestamp},
	})
}

func (h *FeedbackHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return respondError(c, "failed to load feedback", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get feedback",
		Data:    summary,
	})
}
