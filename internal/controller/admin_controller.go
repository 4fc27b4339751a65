package controller

import (
	"cutclub-be/internal/dto"
	"cutclub-be/internal/entity"
	"cutclub-be/internal/pkg/serverutils"
	"cutclub-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)

	// Salon Management
	GetAllSalons(ctx *fiber.Ctx) error
	SetSalonApproval(ctx *fiber.Ctx) error
	SetSalonActive(ctx *fiber.Ctx) error
	SetSalonCommission(ctx *fiber.Ctx) error
	GetSalonFinancial(ctx *fiber.Ctx) error

	// Plan Management
	GetAllPlans(ctx *fiber.Ctx) error
	CreatePlan(ctx *fiber.Ctx) error
	UpdatePlan(ctx *fiber.Ctx) error

	// Withdrawal Management
	GetWithdrawals(ctx *fiber.Ctx) error
	ApproveWithdrawal(ctx *fiber.Ctx) error
	PayWithdrawal(ctx *fiber.Ctx) error
	RejectWithdrawal(ctx *fiber.Ctx) error

	GetFinancial(ctx *fiber.Ctx) error
}

type adminController struct {
	salonService   service.SalonService
	planService    service.PlanService
	payoutService  service.PayoutService
	historyService service.HistoryService
}

func NewAdminController(
	salonService service.SalonService,
	planService service.PlanService,
	payoutService service.PayoutService,
	historyService service.HistoryService,
) IAdminController {
	return &adminController{
		salonService:   salonService,
		planService:    planService,
		payoutService:  payoutService,
		historyService: historyService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/admin", jwtMiddleware, serverutils.RequireRole(entity.UserRoleAdmin))

	h.Get("/salons", c.GetAllSalons)
	h.Patch("/salons/:id/approval", c.SetSalonApproval)
	h.Patch("/salons/:id/active", c.SetSalonActive)
	h.Patch("/salons/:id/commission", c.SetSalonCommission)
	h.Get("/salons/:id/financial", c.GetSalonFinancial)

	h.Get("/plans", c.GetAllPlans)
	h.Post("/plans", c.CreatePlan)
	h.Put("/plans/:id", c.UpdatePlan)

	h.Get("/withdrawals", c.GetWithdrawals)
	h.Post("/withdrawals/:id/approve", c.ApproveWithdrawal)
	h.Post("/withdrawals/:id/pay", c.PayWithdrawal)
	h.Post("/withdrawals/:id/reject", c.RejectWithdrawal)

	h.Get("/financial", c.GetFinancial)
}

func pathId(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid ID")
	}
	return id, nil
}

func (c *adminController) GetAllSalons(ctx *fiber.Ctx) error {
	salons, err := c.salonService.ListAll(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Salons retrieved", dto.NewSalonResponses(salons)))
}

func (c *adminController) SetSalonApproval(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return err
	}

	var req dto.SetApprovalRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	salon, err := c.salonService.SetApproval(ctx.Context(), id, *req.Approved)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Salon approval updated", dto.NewSalonResponse(salon)))
}

func (c *adminController) SetSalonActive(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return err
	}

	var req dto.SetActiveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	salon, err := c.salonService.SetActive(ctx.Context(), id, *req.Active)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Salon status updated", dto.NewSalonResponse(salon)))
}

func (c *adminController) SetSalonCommission(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return err
	}

	var req dto.SetCommissionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	salon, err := c.salonService.SetCommissionRate(ctx.Context(), id, req.CommissionRate)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Commission updated", dto.NewSalonResponse(salon)))
}

func (c *adminController) GetSalonFinancial(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return err
	}

	summary, err := c.payoutService.Summary(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Financial summary retrieved", summary))
}

func (c *adminController) GetAllPlans(ctx *fiber.Ctx) error {
	plans, err := c.planService.ListAll(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Plans retrieved", dto.NewPlanResponses(plans)))
}

// CreatePlan adds a plan to the catalog
// @Summary Create plan
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.PlanRequest true "Plan"
// @Success 201 {object} dto.PlanResponse
// @Router /api/admin/plans [post]
func (c *adminController) CreatePlan(ctx *fiber.Ctx) error {
	var req dto.PlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	plan, err := c.planService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Plan created", dto.NewPlanResponse(plan)))
}

func (c *adminController) UpdatePlan(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return err
	}

	var req dto.PlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	plan, err := c.planService.Update(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Plan updated", dto.NewPlanResponse(plan)))
}

func (c *adminController) GetWithdrawals(ctx *fiber.Ctx) error {
	status := entity.WithdrawStatus(ctx.Query("status"))
	switch status {
	case "", entity.WithdrawStatusPending, entity.WithdrawStatusApproved, entity.WithdrawStatusPaid, entity.WithdrawStatusRejected:
	default:
		return fiber.NewError(fiber.StatusBadRequest, "Invalid status filter")
	}

	requests, err := c.payoutService.ListAll(ctx.Context(), status)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Withdrawals retrieved", dto.NewWithdrawResponses(requests)))
}

func (c *adminController) ApproveWithdrawal(ctx *fiber.Ctx) error {
	identity, err := serverutils.Identity(ctx)
	if err != nil {
		return err
	}
	id, err := pathId(ctx)
	if err != nil {
		return err
	}

	req, err := c.payoutService.Approve(ctx.Context(), identity.UserId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Withdrawal approved", dto.NewWithdrawResponse(req)))
}

func (c *adminController) PayWithdrawal(ctx *fiber.Ctx) error {
	identity, err := serverutils.Identity(ctx)
	if err != nil {
		return err
	}
	id, err := pathId(ctx)
	if err != nil {
		return err
	}

	req, err := c.payoutService.MarkPaid(ctx.Context(), identity.UserId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Withdrawal paid", dto.NewWithdrawResponse(req)))
}

func (c *adminController) RejectWithdrawal(ctx *fiber.Ctx) error {
	identity, err := serverutils.Identity(ctx)
	if err != nil {
		return err
	}
	id, err := pathId(ctx)
	if err != nil {
		return err
	}

	var body dto.RejectWithdrawalRequest
	if err := ctx.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(body); err != nil {
		return err
	}

	req, err := c.payoutService.Reject(ctx.Context(), identity.UserId, id, body.Reason)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Withdrawal rejected", dto.NewWithdrawResponse(req)))
}

func (c *adminController) GetFinancial(ctx *fiber.Ctx) error {
	var query dto.HistoryQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	from, to, err := query.Window()
	if err != nil {
		return err
	}

	logs, err := c.payoutService.FinancialLogs(ctx.Context(), from, to)
	if err != nil {
		return err
	}
	records, err := c.historyService.ListAll(ctx.Context(), from, to)
	if err != nil {
		return err
	}

	platform := decimal.Zero
	salons := decimal.Zero
	for _, r := range records {
		platform = platform.Add(r.AmountToPlatform)
		salons = salons.Add(r.AmountToSalon)
	}

	return ctx.JSON(serverutils.SuccessResponse("Financial report retrieved", &dto.AdminFinancialResponse{
		Logs:             dto.NewFinancialLogResponses(logs),
		Settlements:      dto.NewSettlementResponses(records),
		PlatformRevenue:  platform.StringFixed(2),
		SalonPayouts:     salons.StringFixed(2),
		HaircutsRedeemed: len(records),
	}))
}
