package controller

import (
	"cutclub-be/internal/dto"
	"cutclub-be/internal/entity"
	"cutclub-be/internal/pkg/clock"
	"cutclub-be/internal/pkg/serverutils"
	"cutclub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISubscriberController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	GetSubscription(ctx *fiber.Ctx) error
	GenerateCode(ctx *fiber.Ctx) error
	GetCurrentCode(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	LinkSalon(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
}

type subscriberController struct {
	subscriptionService service.SubscriptionService
	codeService         service.CodeService
	historyService      service.HistoryService
	clock               clock.Clock
}

func NewSubscriberController(
	subscriptionService service.SubscriptionService,
	codeService service.CodeService,
	historyService service.HistoryService,
	clk clock.Clock,
) ISubscriberController {
	return &subscriberController{
		subscriptionService: subscriptionService,
		codeService:         codeService,
		historyService:      historyService,
		clock:               clk,
	}
}

func (c *subscriberController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/subscriber", jwtMiddleware, serverutils.RequireRole(entity.UserRoleSubscriber))
	h.Get("/subscription", c.GetSubscription)
	h.Post("/subscription/cancel", c.Cancel)
	h.Post("/salon", c.LinkSalon)
	h.Post("/codes", c.GenerateCode)
	h.Get("/codes/current", c.GetCurrentCode)
	h.Get("/history", c.GetHistory)
}

// GetSubscription returns the caller's credits, plan snapshot and linked salon
// @Summary Subscriber balance
// @Tags Subscriber
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.BalanceResponse
// @Router /api/subscriber/subscription [get]
func (c *subscriberController) GetSubscription(ctx *fiber.Ctx) error {
	identity, err := serverutils.Identity(ctx)
	if err != nil {
		return err
	}

	res, err := c.subscriptionService.GetBalance(ctx.Context(), identity.UserId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Subscription retrieved", res))
}

// GenerateCode issues a fresh five digit redemption code
// @Summary Generate redemption code
// @Tags Subscriber
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.CodeResponse
// @Router /api/subscriber/codes [post]
func (c *subscriberController) GenerateCode(ctx *fiber.Ctx) error {
	identity, err := serverutils.Identity(ctx)
	if err != nil {
		return err
	}

	code, err := c.codeService.GenerateCodeForSubscriber(ctx.Context(), identity.UserId)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Code generated", dto.NewCodeResponse(code, c.clock.Now())))
}

func (c *subscriberController) GetCurrentCode(ctx *fiber.Ctx) error {
	identity, err := serverutils.Identity(ctx)
	if err != nil {
		return err
	}

	code, err := c.codeService.CurrentCode(ctx.Context(), identity.UserId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Code retrieved", dto.NewCodeResponse(code, c.clock.Now())))
}

func (c *subscriberController) GetHistory(ctx *fiber.Ctx) error {
	identity, err := serverutils.Identity(ctx)
	if err != nil {
		return err
	}

	records, err := c.historyService.SubscriberHistory(ctx.Context(), identity.UserId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("History retrieved", dto.NewSettlementResponses(records)))
}

func (c *subscriberController) LinkSalon(ctx *fiber.Ctx) error {
	identity, err := serverutils.Identity(ctx)
	if err != nil {
		return err
	}

	var req dto.LinkSalonRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	sub, err := c.subscriptionService.LinkSalon(ctx.Context(), identity.UserId, req.SalonId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Salon linked", dto.NewSubscriptionResponse(sub, c.clock.Now())))
}

func (c *subscriberController) Cancel(ctx *fiber.Ctx) error {
	identity, err := serverutils.Identity(ctx)
	if err != nil {
		return err
	}

	sub, err := c.subscriptionService.Cancel(ctx.Context(), identity.UserId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Subscription cancelled", dto.NewSubscriptionResponse(sub, c.clock.Now())))
}
