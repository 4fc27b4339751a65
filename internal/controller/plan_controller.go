package controller

import (
	"cutclub-be/internal/dto"
	"cutclub-be/internal/pkg/serverutils"
	"cutclub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PlanController interface {
	RegisterRoutes(api fiber.Router)
}

type planController struct {
	planService service.PlanService
}

func NewPlanController(planService service.PlanService) PlanController {
	return &planController{
		planService: planService,
	}
}

func (c *planController) RegisterRoutes(api fiber.Router) {
	api.Get("/plans", c.GetAllPlans)
}

// GetAllPlans returns the active catalog for the pricing page
// @Summary Get all subscription plans
// @Tags Plans
// @Produce json
// @Success 200 {object} []dto.PlanResponse
// @Router /api/plans [get]
func (c *planController) GetAllPlans(ctx *fiber.Ctx) error {
	plans, err := c.planService.ListActive(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Plans retrieved", dto.NewPlanResponses(plans)))
}
