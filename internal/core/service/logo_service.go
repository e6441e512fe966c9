package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/consultia/expense-system/internal/core/domain"
	"github.com/consultia/expense-system/internal/core/policy"
	"github.com/consultia/expense-system/internal/core/ports"
)

const logoURLTTL = 365 * 24 * time.Hour

// LogoService manages the application logo singleton.
type LogoService struct {
	logos ports.LogoRepository
	blobs ports.BlobStore
	log   zerolog.Logger
}

func NewLogoService(logos ports.LogoRepository, blobs ports.BlobStore, log zerolog.Logger) *LogoService {
	return &LogoService{logos: logos, blobs: blobs, log: log}
}

// Get returns the current logo URL, or "" when no logo has been uploaded.
func (s *LogoService) Get(ctx context.Context) (string, error) {
	logo, err := s.logos.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrLogoNotFound) {
			return "", nil
		}
		return "", err
	}
	return logo.URL, nil
}

func (s *LogoService) Update(ctx context.Context, principal domain.Principal, upload ports.FileUpload) (string, error) {
	if !policy.CanUpdateLogo(principal) {
		return "", domain.ErrForbidden
	}
	if upload.FileName == "" || len(upload.Content) == 0 {
		return "", fmt.Errorf("%w: logo file is required", domain.ErrValidation)
	}

	fileName := fmt.Sprintf("logo-%s%s", uuid.NewString(), fileExtension(upload.FileName))
	if err := s.blobs.Put(ctx, ports.BucketLogos, fileName, upload.Content, upload.ContentType); err != nil {
		return "", fmt.Errorf("store logo: %w", err)
	}
	url, err := s.blobs.SignedURL(ports.BucketLogos, fileName, logoURLTTL)
	if err != nil {
		return "", fmt.Errorf("sign logo url: %w", err)
	}

	logo := &domain.Logo{
		URL:        url,
		FileName:   fileName,
		UploadedBy: principal.Email,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.logos.Put(ctx, logo); err != nil {
		return "", err
	}

	s.log.Info().Str("uploaded_by", principal.Email).Msg("logo updated")
	return url, nil
}
