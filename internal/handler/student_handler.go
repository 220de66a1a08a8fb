package handler

import (
	"errors"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/eduresult/eduresult-go-api/internal/dto"
	"github.com/eduresult/eduresult-go-api/internal/service"
	"github.com/eduresult/eduresult-go-api/internal/utils"
)

// StudentHandler manages the admin-facing record endpoints.
type StudentHandler struct {
	students   service.StudentService
	export     service.ExportService
	extraction service.ExtractionService
	logger     zerolog.Logger
}

// NewStudentHandler builds a student handler instance.
func NewStudentHandler(students service.StudentService, export service.ExportService, extraction service.ExtractionService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		students:   students,
		export:     export,
		extraction: extraction,
		logger:     logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Delete("/:id", h.remove)
	router.Get("/export", h.exportCSV)
	router.Post("/extract", h.extract)
}

func (h *StudentHandler) create(c *fiber.Ctx) error {
	var payload dto.StudentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	student, err := h.students.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "student result generated", student)
}

func (h *StudentHandler) list(c *fiber.Ctx) error {
	students := h.students.List(c.Context())
	return utils.SendSuccess(c, "students retrieved", dto.StudentListResponse{
		Students: students,
		Count:    len(students),
	})
}

func (h *StudentHandler) remove(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "student id is required")
	}

	if err := h.students.Delete(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "student deleted", nil)
}

func (h *StudentHandler) exportCSV(c *fiber.Ctx) error {
	filename, data, err := h.export.ExportCSV(h.students.List(c.Context()))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendCSV(c, filename, data)
}

func (h *StudentHandler) extract(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "image file is required")
	}

	reader, err := file.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "could not open uploaded file")
	}
	defer reader.Close()

	image, err := io.ReadAll(reader)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "could not read uploaded file")
	}

	extraction, err := h.extraction.Extract(c.Context(), image)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "report card extracted", extraction)
}

func (h *StudentHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student not found")
	case errors.Is(err, service.ErrUnreadableImage):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrUnsupportedImage), errors.Is(err, service.ErrImageTooLarge):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAdvisorUnavailable):
		return utils.SendError(c, fiber.StatusServiceUnavailable, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
