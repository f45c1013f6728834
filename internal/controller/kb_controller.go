package controller

import (
	"strconv"

	"helpdesk-ai-be/internal/dto"
	"helpdesk-ai-be/internal/pkg/serverutils"
	"helpdesk-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IKBController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	ListDocuments(ctx *fiber.Ctx) error
}

type kbController struct {
	kbService service.IKBService
}

func NewKBController(kbService service.IKBService) IKBController {
	return &kbController{
		kbService: kbService,
	}
}

func (c *kbController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/kb/v1")
	h.Get("search", c.Search)
	h.Post("documents", serverutils.JwtMiddleware, c.Ingest)
	h.Get("documents", serverutils.JwtMiddleware, c.ListDocuments)
}

func (c *kbController) Ingest(ctx *fiber.Ctx) error {
	var req dto.IngestDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.kbService.Ingest(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Document ingested", res))
}

func (c *kbController) Search(ctx *fiber.Ctx) error {
	query := ctx.Query("q")
	if query == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Query parameter 'q' is required"))
	}

	topK, err := strconv.Atoi(ctx.Query("top_k", "3"))
	if err != nil || topK <= 0 {
		topK = 3
	}

	res, err := c.kbService.Search(ctx.Context(), query, topK)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Knowledge search results", res))
}

func (c *kbController) ListDocuments(ctx *fiber.Ctx) error {
	res, err := c.kbService.ListDocuments(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Document list", res))
}
