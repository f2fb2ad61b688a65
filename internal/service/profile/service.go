package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/herahealth/portal-api/internal/model"
	"github.com/herahealth/portal-api/internal/repository"
	apperrors "github.com/herahealth/portal-api/pkg/errors"
)

const doctorsCacheKey = "doctors"

type Service struct {
	repo  repository.ProfileRepository
	cache *gocache.Cache
}

func NewService(repo repository.ProfileRepository) *Service {
	return &Service{
		repo:  repo,
		cache: gocache.New(time.Minute, 5*time.Minute),
	}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	profile, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("profile", err)
	}
	return profile, nil
}

// Update applies only the fields present in the request.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateProfileRequest) (*model.Profile, error) {
	profile, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("profile", err)
	}

	if req.FullName != nil {
		profile.FullName = req.FullName
	}
	if req.PhoneNumber != nil {
		profile.PhoneNumber = req.PhoneNumber
	}
	if req.DateOfBirth != nil {
		profile.DateOfBirth = req.DateOfBirth
	}
	if req.CycleLength != nil {
		profile.CycleLength = req.CycleLength
	}
	if req.Specialization != nil {
		profile.Specialization = req.Specialization
	}
	if req.LicenseNumber != nil {
		profile.LicenseNumber = req.LicenseNumber
	}
	if req.ConsultationFee != nil {
		profile.ConsultationFee = req.ConsultationFee
	}
	if req.YearsOfExperience != nil {
		profile.YearsOfExperience = req.YearsOfExperience
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	// Doctor directory may now be stale
	if profile.IsDoctor {
		s.cache.Delete(doctorsCacheKey)
	}

	return profile, nil
}

// ListDoctors returns the doctor directory. The list is read-mostly and
// cached briefly.
func (s *Service) ListDoctors(ctx context.Context) ([]*model.DoctorProfile, error) {
	if cached, found := s.cache.Get(doctorsCacheKey); found {
		if doctors, ok := cached.([]*model.DoctorProfile); ok {
			return doctors, nil
		}
	}

	doctors, err := s.repo.ListDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}

	s.cache.Set(doctorsCacheKey, doctors, gocache.DefaultExpiration)
	return doctors, nil
}
