package controller

import (
	"hustle-mentor-be/internal/dto"
	"hustle-mentor-be/internal/pkg/serverutils"
	"hustle-mentor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGuidanceController interface {
	RegisterRoutes(r fiber.Router)
	Guide(ctx *fiber.Ctx) error
}

type guidanceController struct {
	guidanceService service.IGuidanceService
}

func NewGuidanceController(guidanceService service.IGuidanceService) IGuidanceController {
	return &guidanceController{
		guidanceService: guidanceService,
	}
}

func (c *guidanceController) RegisterRoutes(r fiber.Router) {
	r.Post("/ai", c.Guide)
}

// Guide proxies one stage context to the completion provider. The response
// body is the public contract: {message} on success, {error} otherwise.
func (c *guidanceController) Guide(ctx *fiber.Ctx) error {
	var req dto.GuidanceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewInvalidPayload()
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.guidanceService.RequestGuidance(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
