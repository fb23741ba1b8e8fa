package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"resumatch/resume-matcher/internal/errs"
	"resumatch/resume-matcher/internal/services"
)

type MatchHandler struct {
	evalService services.EvaluationService
	storage     services.StorageService
	maxFileSize int64
}

func NewMatchHandler(
	evalService services.EvaluationService,
	storage services.StorageService,
	maxFileSize int64,
) *MatchHandler {
	return &MatchHandler{
		evalService: evalService,
		storage:     storage,
		maxFileSize: maxFileSize,
	}
}

// HandleMatch handles POST /api/match
func (h *MatchHandler) HandleMatch(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Resume file is required",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	jobDescription := c.FormValue("jobDescription")

	resumePath, err := h.storage.SaveUpload(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume file: %v", err),
		})
	}

	result, err := h.evalService.Submit(
		c.UserContext(),
		resumePath,
		file.Header.Get("Content-Type"),
		jobDescription,
	)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(result)
}

func writeError(c *fiber.Ctx, err error) error {
	return c.Status(errs.HTTPStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
