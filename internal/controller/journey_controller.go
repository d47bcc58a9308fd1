package controller

import (
	"hustle-mentor-be/internal/dto"
	"hustle-mentor-be/internal/pkg/serverutils"
	"hustle-mentor-be/internal/service"
	"hustle-mentor-be/pkg/journey"

	"github.com/gofiber/fiber/v2"
)

type IJourneyController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Stages(ctx *fiber.Ctx) error
	SetNote(ctx *fiber.Ctx) error
	Advance(ctx *fiber.Ctx) error
	Retreat(ctx *fiber.Ctx) error
	Jump(ctx *fiber.Ctx) error
	RequestGuidance(ctx *fiber.Ctx) error
	ToggleItem(ctx *fiber.Ctx) error
	ItemAdvice(ctx *fiber.Ctx) error
	Activity(ctx *fiber.Ctx) error
}

type journeyController struct {
	journeyService service.IJourneyService
}

func NewJourneyController(journeyService service.IJourneyService) IJourneyController {
	return &journeyController{
		journeyService: journeyService,
	}
}

func (c *journeyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/journey/v1")
	h.Use(serverutils.IdentityMiddleware)
	h.Get("", c.Show)
	h.Get("stages", c.Stages)
	h.Get("activity", c.Activity)
	h.Put("note", c.SetNote)
	h.Post("advance", c.Advance)
	h.Post("retreat", c.Retreat)
	h.Post("jump", c.Jump)
	h.Post("guidance", c.RequestGuidance)
	h.Post("checklist/:itemId/toggle", c.ToggleItem)
	h.Post("checklist/:itemId/advice", c.ItemAdvice)
}

func (c *journeyController) Show(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	res, err := c.journeyService.GetJourney(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show journey", res))
}

func (c *journeyController) Stages(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success list stages", journey.Stages()))
}

func (c *journeyController) SetNote(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.SetNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewInvalidPayload()
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.journeyService.SetNote(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update note", res))
}

func (c *journeyController) Advance(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	res, err := c.journeyService.Advance(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success advance stage", res))
}

func (c *journeyController) Retreat(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	res, err := c.journeyService.Retreat(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success retreat stage", res))
}

func (c *journeyController) Jump(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.JumpRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewInvalidPayload()
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.journeyService.JumpTo(ctx.Context(), userId, *req.Index)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success jump to stage", res))
}

func (c *journeyController) RequestGuidance(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	res, err := c.journeyService.RequestGuidance(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success request guidance", res))
}

func (c *journeyController) ToggleItem(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)
	itemId := ctx.Params("itemId")

	res, err := c.journeyService.ToggleItem(ctx.Context(), userId, itemId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success toggle checklist item", res))
}

func (c *journeyController) ItemAdvice(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)
	itemId := ctx.Params("itemId")

	res, err := c.journeyService.RequestItemAdvice(ctx.Context(), userId, itemId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success fetch item advice", res))
}

func (c *journeyController) Activity(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)
	eventType := ctx.Query("type")
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.journeyService.Activity(ctx.Context(), userId, eventType, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list activity", res))
}
