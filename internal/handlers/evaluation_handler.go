package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"resumatch/resume-matcher/internal/services"
)

type EvaluationHandler struct {
	evalService services.EvaluationService
}

func NewEvaluationHandler(evalService services.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{
		evalService: evalService,
	}
}

// HandleList handles GET /api/evaluations
func (h *EvaluationHandler) HandleList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", services.DefaultPageLimit)

	result, err := h.evalService.List(page, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(result)
}

// HandleDelete handles DELETE /api/evaluations/:id
func (h *EvaluationHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid evaluation ID format",
		})
	}

	if err := h.evalService.Delete(id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Evaluation and resume deleted successfully",
	})
}

// HandleDownload handles GET /api/resume/:id
func (h *EvaluationHandler) HandleDownload(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid evaluation ID format",
		})
	}

	path, filename, err := h.evalService.Download(id)
	if err != nil {
		return writeError(c, err)
	}

	return c.Download(path, filename)
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
