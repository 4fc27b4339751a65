package controller

import (
	"cutclub-be/internal/dto"
	"cutclub-be/internal/entity"
	"cutclub-be/internal/pkg/serverutils"
	"cutclub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISalonController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	ListPublic(ctx *fiber.Ctx) error
	Register(ctx *fiber.Ctx) error
	GetMine(ctx *fiber.Ctx) error
	Validate(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	GetFinancial(ctx *fiber.Ctx) error
	RequestWithdrawal(ctx *fiber.Ctx) error
	ListWithdrawals(ctx *fiber.Ctx) error
}

type salonController struct {
	salonService      service.SalonService
	redemptionService service.RedemptionService
	historyService    service.HistoryService
	payoutService     service.PayoutService
}

func NewSalonController(
	salonService service.SalonService,
	redemptionService service.RedemptionService,
	historyService service.HistoryService,
	payoutService service.PayoutService,
) ISalonController {
	return &salonController{
		salonService:      salonService,
		redemptionService: redemptionService,
		historyService:    historyService,
		payoutService:     payoutService,
	}
}

func (c *salonController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	ownerOnly := serverutils.RequireRole(entity.UserRoleSalonOwner)

	r.Get("/salons", c.ListPublic)
	r.Post("/salons", jwtMiddleware, ownerOnly, c.Register)

	h := r.Group("/salon", jwtMiddleware, ownerOnly)
	h.Get("/me", c.GetMine)
	h.Post("/validate", c.Validate)
	h.Get("/history", c.GetHistory)
	h.Get("/financial", c.GetFinancial)
	h.Post("/withdrawals", c.RequestWithdrawal)
	h.Get("/withdrawals", c.ListWithdrawals)
}

func (c *salonController) ListPublic(ctx *fiber.Ctx) error {
	salons, err := c.salonService.ListPublic(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Salons retrieved", dto.NewPublicSalonResponses(salons)))
}

// Register creates the caller's salon, pending approval
// @Summary Register salon
// @Tags Salon
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.RegisterSalonRequest true "Salon data"
// @Success 201 {object} dto.SalonResponse
// @Router /api/salons [post]
func (c *salonController) Register(ctx *fiber.Ctx) error {
	identity, err := serverutils.Identity(ctx)
	if err != nil {
		return err
	}

	var req dto.RegisterSalonRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	salon, err := c.salonService.Register(ctx.Context(), identity.UserId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Salon registered", dto.NewSalonResponse(salon)))
}

func (c *salonController) GetMine(ctx *fiber.Ctx) error {
	identity, err := serverutils.Identity(ctx)
	if err != nil {
		return err
	}

	salon, err := c.salonService.GetByOwner(ctx.Context(), identity.UserId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Salon retrieved", dto.NewSalonResponse(salon)))
}

// Validate redeems a subscriber's code at the caller's salon
// @Summary Validate redemption code
// @Tags Salon
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ValidateCodeRequest true "Code"
// @Success 200 {object} dto.SettlementResponse
// @Router /api/salon/validate [post]
func (c *salonController) Validate(ctx *fiber.Ctx) error {
	identity, err := serverutils.Identity(ctx)
	if err != nil {
		return err
	}

	var req dto.ValidateCodeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	record, err := c.redemptionService.ValidateForOwner(ctx.Context(), req.Code, identity.UserId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Haircut confirmed", dto.NewSettlementResponse(record)))
}

func (c *salonController) GetHistory(ctx *fiber.Ctx) error {
	identity, err := serverutils.Identity(ctx)
	if err != nil {
		return err
	}

	var query dto.HistoryQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	from, to, err := query.Window()
	if err != nil {
		return err
	}

	records, totals, err := c.historyService.SalonHistory(ctx.Context(), identity.UserId, from, to)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("History retrieved", &dto.SalonHistoryResponse{
		Records:       dto.NewSettlementResponses(records),
		TotalToSalon:  totals.AmountToSalon.StringFixed(2),
		HaircutsCount: totals.HaircutCount,
	}))
}

func (c *salonController) GetFinancial(ctx *fiber.Ctx) error {
	identity, err := serverutils.Identity(ctx)
	if err != nil {
		return err
	}

	summary, err := c.payoutService.SummaryForOwner(ctx.Context(), identity.UserId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Financial summary retrieved", summary))
}

func (c *salonController) RequestWithdrawal(ctx *fiber.Ctx) error {
	identity, err := serverutils.Identity(ctx)
	if err != nil {
		return err
	}

	req, err := c.payoutService.RequestWithdrawal(ctx.Context(), identity.UserId)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Withdrawal requested", dto.NewWithdrawResponse(req)))
}

func (c *salonController) ListWithdrawals(ctx *fiber.Ctx) error {
	identity, err := serverutils.Identity(ctx)
	if err != nil {
		return err
	}

	requests, err := c.payoutService.ListForOwner(ctx.Context(), identity.UserId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Withdrawals retrieved", dto.NewWithdrawResponses(requests)))
}
