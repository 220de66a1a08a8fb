package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/eduresult/eduresult-go-api/internal/dto"
	"github.com/eduresult/eduresult-go-api/internal/service"
	"github.com/eduresult/eduresult-go-api/internal/utils"
)

// InstitutionHandler manages the institution settings endpoints.
type InstitutionHandler struct {
	institution service.InstitutionService
	logger      zerolog.Logger
}

// NewInstitutionHandler creates a new handler instance.
func NewInstitutionHandler(institution service.InstitutionService, logger zerolog.Logger) *InstitutionHandler {
	return &InstitutionHandler{
		institution: institution,
		logger:      logger.With().Str("component", "institution_handler").Logger(),
	}
}

// Register attaches the settings endpoints.
func (h *InstitutionHandler) Register(router fiber.Router) {
	router.Get("", h.get)
	router.Put("", h.update)
	router.Post("/logo", h.uploadLogo)
}

func (h *InstitutionHandler) get(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "institution retrieved", h.institution.Get(c.Context()))
}

func (h *InstitutionHandler) update(c *fiber.Ctx) error {
	var payload dto.InstitutionUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	info, err := h.institution.Update(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "institution updated", info)
}

func (h *InstitutionHandler) uploadLogo(c *fiber.Ctx) error {
	file, err := c.FormFile("logo")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "logo file is required")
	}

	reader, err := file.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "could not open uploaded file")
	}
	defer reader.Close()

	url, err := h.institution.UploadLogo(c.Context(), file.Filename, reader)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "logo uploaded", dto.LogoUploadResponse{LogoURL: url})
}

func (h *InstitutionHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrUploaderUnavailable):
		return utils.SendError(c, fiber.StatusServiceUnavailable, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
