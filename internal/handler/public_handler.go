package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/eduresult/eduresult-go-api/internal/dto"
	"github.com/eduresult/eduresult-go-api/internal/models"
	"github.com/eduresult/eduresult-go-api/internal/observability"
	"github.com/eduresult/eduresult-go-api/internal/service"
	"github.com/eduresult/eduresult-go-api/internal/utils"
)

// PublicHandler exposes the unauthenticated student portal endpoints.
type PublicHandler struct {
	students    service.StudentService
	institution service.InstitutionService
	logger      zerolog.Logger
}

// NewPublicHandler creates a new handler instance.
func NewPublicHandler(students service.StudentService, institution service.InstitutionService, logger zerolog.Logger) *PublicHandler {
	return &PublicHandler{
		students:    students,
		institution: institution,
		logger:      logger.With().Str("component", "public_handler").Logger(),
	}
}

// Register attaches the public endpoints.
func (h *PublicHandler) Register(router fiber.Router) {
	router.Get("/results/:rollNo", h.lookup)
	router.Get("/subjects/template", h.subjectTemplate)
}

// lookup serves the report card for a roll number. A miss is a distinct,
// user-addressable condition, not a system error.
func (h *PublicHandler) lookup(c *fiber.Ctx) error {
	student, err := h.students.FindByRoll(c.Context(), c.Params("rollNo"))
	if err != nil {
		if errors.Is(err, service.ErrRollNotFound) {
			observability.LookupMisses().Inc()
			return utils.SendError(c, fiber.StatusNotFound, "Invalid Roll Number. Please check and try again.")
		}
		h.logger.Error().Err(err).Msg("public lookup failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "result retrieved", dto.PublicResultResponse{
		Student:     student,
		Institution: h.institution.Get(c.Context()),
	})
}

func (h *PublicHandler) subjectTemplate(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "subject template", models.DefaultSubjects())
}
