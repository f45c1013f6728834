package controller

import (
	"strconv"

	"helpdesk-ai-be/internal/dto"
	"helpdesk-ai-be/internal/pkg/logger"
	"helpdesk-ai-be/internal/pkg/serverutils"
	"helpdesk-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IHelpdeskController interface {
	RegisterRoutes(r fiber.Router)
	ProcessRequest(ctx *fiber.Ctx) error
	Classify(ctx *fiber.Ctx) error
	EvaluateEscalation(ctx *fiber.Ctx) error
	ShowTicket(ctx *fiber.Ctx) error
	RecentTickets(ctx *fiber.Ctx) error
	Metrics(ctx *fiber.Ctx) error
	Logs(ctx *fiber.Ctx) error
}

type helpdeskController struct {
	helpdeskService service.IHelpdeskService
	metricsService  service.IMetricsService
	log             logger.ILogger
}

func NewHelpdeskController(helpdeskService service.IHelpdeskService, metricsService service.IMetricsService, log logger.ILogger) IHelpdeskController {
	return &helpdeskController{
		helpdeskService: helpdeskService,
		metricsService:  metricsService,
		log:             log,
	}
}

func (c *helpdeskController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/helpdesk/v1")
	h.Post("requests", c.ProcessRequest)
	h.Post("classify", c.Classify)
	h.Post("escalation/evaluate", c.EvaluateEscalation)
	h.Get("tickets", serverutils.JwtMiddleware, c.RecentTickets)
	h.Get("tickets/:id", serverutils.JwtMiddleware, c.ShowTicket)
	h.Get("metrics", c.Metrics)
	h.Get("logs", serverutils.JwtMiddleware, c.Logs)
}

func (c *helpdeskController) ProcessRequest(ctx *fiber.Ctx) error {
	var req dto.ProcessRequestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.helpdeskService.ProcessRequest(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Request processed", res))
}

func (c *helpdeskController) Classify(ctx *fiber.Ctx) error {
	var req dto.ClassifyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.helpdeskService.Classify(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Request classified", res))
}

func (c *helpdeskController) EvaluateEscalation(ctx *fiber.Ctx) error {
	var req dto.EvaluateEscalationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.helpdeskService.EvaluateEscalation(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Escalation evaluated", res))
}

func (c *helpdeskController) ShowTicket(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid ticket id"))
	}

	res, err := c.helpdeskService.ShowTicket(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Ticket detail", res))
}

func (c *helpdeskController) RecentTickets(ctx *fiber.Ctx) error {
	limit, err := strconv.Atoi(ctx.Query("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	res, err := c.helpdeskService.RecentTickets(ctx.Context(), limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Recent tickets", res))
}

func (c *helpdeskController) Metrics(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Helpdesk metrics", c.metricsService.Snapshot()))
}

func (c *helpdeskController) Logs(ctx *fiber.Ctx) error {
	level := ctx.Query("level", "")
	limit, err := strconv.Atoi(ctx.Query("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}
	offset, err := strconv.Atoi(ctx.Query("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	entries, err := c.log.GetLogs(level, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Application logs", entries))
}
