package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fadilmartias/resume-analyzer/internal/dto"
	"github.com/fadilmartias/resume-analyzer/internal/middleware"
	"github.com/fadilmartias/resume-analyzer/internal/response"
	"github.com/fadilmartias/resume-analyzer/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type adminUsecase interface {
	Login(username, password string) error
	Dashboard(ctx context.Context, page, pageSize int) (dto.DashboardDTO, response.Pagination, error)
	ExportCSV(ctx context.Context, w io.Writer) error
	ExportXLSX(ctx context.Context) (*bytes.Buffer, error)
}

type AdminHandler struct {
	uc    adminUsecase
	store *session.Store
	log   *zap.Logger
}

func NewAdminHandler(uc adminUsecase, store *session.Store, log *zap.Logger) *AdminHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminHandler{uc: uc, store: store, log: log}
}

func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	admin := router.Group("/admin")
	admin.Post("/login", middleware.RateLimiter(5, time.Minute), h.Login)

	auth := middleware.AdminAuth(h.store, h.log)
	admin.Post("/logout", auth, h.Logout)
	admin.Get("/dashboard", auth, h.Dashboard)
	admin.Get("/export.csv", auth, h.ExportCSV)
	admin.Get("/export.xlsx", auth, h.ExportXLSX)
}

func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if err := h.uc.Login(req.Username, req.Password); err != nil {
		return respondError(c, "login failed", err)
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "cannot start session"}, err)
	}
	if err := sess.Regenerate(); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "cannot start session"}, err)
	}
	sess.Set(middleware.AdminSessionKey, req.Username)
	if err := sess.Save(); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "cannot save session"}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Welcome " + req.Username,
	})
}

func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "cannot load session"}, err)
	}
	if err := sess.Destroy(); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "cannot end session"}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Message: "Logged out"})
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", response.DefaultPageSize)

	data, pagination, err := h.uc.Dashboard(c.UserContext(), page, pageSize)
	if err != nil {
		return respondError(c, "failed to load dashboard", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get dashboard",
		Data:       data,
		Pagination: &pagination,
	})
}

func (h *AdminHandler) ExportCSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.uc.ExportCSV(c.UserContext(), &buf); err != nil {
		return respondError(c, "failed to export report", err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, attachment("csv"))
	return c.Send(buf.Bytes())
}

func (h *AdminHandler) ExportXLSX(c *fiber.Ctx) error {
	buf, err := h.uc.ExportXLSX(c.UserContext())
	if err != nil {
		return respondError(c, "failed to export report", err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, attachment("xlsx"))
	return c.Send(buf.Bytes())
}

func attachment(ext string) string {
	return fmt.Sprintf(`attachment; filename="resume-report-%s.%s"`, time.Now().Format("20060102"), ext)
}
