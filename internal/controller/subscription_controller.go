// FILE: internal/controller/subscription_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"subhub-be/internal/dto"
	"subhub-be/internal/pkg/serverutils"
	"subhub-be/internal/service"
)

type ISubscriptionController interface {
	RegisterRoutes(r fiber.Router)
	Subscribe(ctx *fiber.Ctx) error
	GetById(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
}

type subscriptionController struct {
	service service.ISubscriptionService
}

func NewSubscriptionController(service service.ISubscriptionService) ISubscriptionController {
	return &subscriptionController{service: service}
}

func (c *subscriptionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/subscriptions")
	h.Post("/", c.Subscribe)
	h.Get("/:id", c.GetById)
	h.Post("/:id/cancel", c.Cancel)
}

func (c *subscriptionController) Subscribe(ctx *fiber.Ctx) error {
	var req dto.CreateSubscriptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ValidationErrorResponse([]serverutils.FieldError{
			{Field: "", Message: "Invalid request body"},
		}))
	}
	if fieldErrors := serverutils.ValidateRequest(req); fieldErrors != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ValidationErrorResponse(fieldErrors))
	}

	res, err := c.service.Subscribe(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse(res))
}

func (c *subscriptionController) GetById(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ValidationErrorResponse([]serverutils.FieldError{
			{Field: "id", Message: "Invalid subscription ID format"},
		}))
	}

	res, err := c.service.GetSubscription(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse(res))
}

func (c *subscriptionController) Cancel(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ValidationErrorResponse([]serverutils.FieldError{
			{Field: "id", Message: "Invalid subscription ID format"},
		}))
	}

	res, err := c.service.CancelSubscription(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse(res))
}
