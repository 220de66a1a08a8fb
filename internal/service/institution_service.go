package service

import (
	"context"
	"errors"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/eduresult/eduresult-go-api/internal/dto"
	"github.com/eduresult/eduresult-go-api/internal/models"
	"github.com/eduresult/eduresult-go-api/internal/repository"
)

// ErrUploaderUnavailable indicates no asset host is configured.
var ErrUploaderUnavailable = errors.New("logo uploader is not configured")

// LogoUploader abstracts the branding asset destination.
type LogoUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// InstitutionService reads and wholesale-replaces the institution profile.
type InstitutionService interface {
	Get(ctx context.Context) models.Institution
	Update(ctx context.Context, req dto.InstitutionUpdateRequest) (models.Institution, error)
	UploadLogo(ctx context.Context, filename string, file io.Reader) (string, error)
}

type institutionService struct {
	store    repository.RecordStore
	uploader LogoUploader
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewInstitutionService constructs the institution settings service. The
// uploader may be nil when no asset host is configured.
func NewInstitutionService(store repository.RecordStore, uploader LogoUploader, validate *validator.Validate, logger zerolog.Logger) InstitutionService {
	return &institutionService{
		store:    store,
		uploader: uploader,
		validate: validate,
		logger:   logger.With().Str("component", "institution_service").Logger(),
	}
}

func (s *institutionService) Get(ctx context.Context) models.Institution {
	return s.store.LoadInstitution(ctx)
}

func (s *institutionService) Update(ctx context.Context, req dto.InstitutionUpdateRequest) (models.Institution, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.Institution{}, err
	}

	info := models.Institution{
		Name:    req.Name,
		Address: req.Address,
		Email:   req.Email,
		Phone:   req.Phone,
		LogoURL: req.LogoURL,
	}
	if info.LogoURL == "" {
		info.LogoURL = s.store.LoadInstitution(ctx).LogoURL
	}

	if err := s.store.SaveInstitution(ctx, info); err != nil {
		// Same policy as result records: the in-memory profile stays
		// usable, the persistence loss is logged.
		s.logger.Error().Err(err).Msg("institution profile not persisted")
	}

	return info, nil
}

func (s *institutionService) UploadLogo(ctx context.Context, filename string, file io.Reader) (string, error) {
	if s.uploader == nil {
		return "", ErrUploaderUnavailable
	}

	url, err := s.uploader.Upload(ctx, filename, file)
	if err != nil {
		return "", err
	}

	info := s.store.LoadInstitution(ctx)
	info.LogoURL = url
	if err := s.store.SaveInstitution(ctx, info); err != nil {
		s.logger.Error().Err(err).Msg("logo url not persisted")
	}

	return url, nil
}
