package controller

import (
	"cutclub-be/internal/dto"
	"cutclub-be/internal/eventbus"
	"cutclub-be/internal/pkg/logger"
	"cutclub-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	ConfirmPayment(ctx *fiber.Ctx) error
}

type paymentController struct {
	bus           *eventbus.LocalBus
	webhookSecret string
	logger        logger.ILogger
}

func NewPaymentController(bus *eventbus.LocalBus, webhookSecret string, logger logger.ILogger) IPaymentController {
	return &paymentController{
		bus:           bus,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payments")
	h.Post("/confirmations", serverutils.VerifySignature(c.webhookSecret), c.ConfirmPayment)
}

// ConfirmPayment accepts a signed settlement notice and queues the activation
// @Summary Payment confirmation webhook
// @Tags Payment
// @Accept json
// @Produce json
// @Param X-Signature header string true "hex HMAC-SHA256 of the body"
// @Success 202
// @Router /api/payments/confirmations [post]
func (c *paymentController) ConfirmPayment(ctx *fiber.Ctx) error {
	var req dto.PaymentConfirmationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if !req.Amount.IsPositive() {
		return fiber.NewError(fiber.StatusBadRequest, "Amount must be positive")
	}

	msg := eventbus.PaymentConfirmedMessage{
		UserId:        req.UserId,
		PlanId:        req.PlanId,
		Amount:        req.Amount.String(),
		ExternalId:    req.ExternalId,
		PaymentMethod: req.PaymentMethod,
		PaidAt:        req.PaidAt,
	}
	if err := c.bus.Send(eventbus.TopicPaymentConfirmed, msg); err != nil {
		return err
	}

	c.logger.Info("PAYMENT", "Confirmation queued", map[string]interface{}{
		"external_id": req.ExternalId,
		"user_id":     req.UserId.String(),
	})

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Confirmation accepted", fiber.Map{"external_id": req.ExternalId}))
}
