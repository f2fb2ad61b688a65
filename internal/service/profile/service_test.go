package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herahealth/portal-api/internal/model"
	apperrors "github.com/herahealth/portal-api/pkg/errors"
)

type fakeProfileRepo struct {
	profiles        map[uuid.UUID]*model.Profile
	listDoctorCalls int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*model.Profile)}
}

func (r *fakeProfileRepo) Create(_ context.Context, p *model.Profile) error {
	r.profiles[p.ID] = p
	return nil
}

func (r *fakeProfileRepo) Get(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) GetByEmail(_ context.Context, email string) (*model.Profile, error) {
	for _, p := range r.profiles {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeProfileRepo) Update(_ context.Context, p *model.Profile) error {
	if _, ok := r.profiles[p.ID]; !ok {
		return errors.New("not found")
	}
	cp := *p
	r.profiles[p.ID] = &cp
	return nil
}

func (r *fakeProfileRepo) ListDoctors(_ context.Context) ([]*model.DoctorProfile, error) {
	r.listDoctorCalls++
	var doctors []*model.DoctorProfile
	for _, p := range r.profiles {
		if p.IsDoctor {
			doctors = append(doctors, &model.DoctorProfile{
				ID:              p.ID,
				FullName:        p.FullName,
				Specialization:  p.Specialization,
				ConsultationFee: p.ConsultationFee,
			})
		}
	}
	return doctors, nil
}

func strPtr(s string) *string { return &s }

func TestGetUnknownProfile(t *testing.T) {
	svc := NewService(newFakeProfileRepo())

	_, err := svc.Get(context.Background(), uuid.New())
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewService(repo)

	id := uuid.New()
	fee := 50.0
	repo.profiles[id] = &model.Profile{
		Base:            model.Base{ID: id},
		Email:           "doc@example.com",
		FullName:        strPtr("Dr. Old Name"),
		IsDoctor:        true,
		Specialization:  strPtr("Gynecology"),
		ConsultationFee: &fee,
	}

	updated, err := svc.Update(context.Background(), id, &model.UpdateProfileRequest{
		FullName: strPtr("Dr. New Name"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Dr. New Name", *updated.FullName)
	assert.Equal(t, "Gynecology", *updated.Specialization)
	assert.Equal(t, 50.0, *updated.ConsultationFee)
}

func TestListDoctorsOmitsPatients(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewService(repo)

	doctorID := uuid.New()
	repo.profiles[doctorID] = &model.Profile{
		Base:     model.Base{ID: doctorID},
		Email:    "doc@example.com",
		IsDoctor: true,
	}
	repo.profiles[uuid.New()] = &model.Profile{
		Base:  model.Base{ID: uuid.New()},
		Email: "pat@example.com",
	}

	doctors, err := svc.ListDoctors(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, doctorID, doctors[0].ID)
}

func TestListDoctorsCached(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewService(repo)

	_, err := svc.ListDoctors(context.Background())
	require.NoError(t, err)
	_, err = svc.ListDoctors(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.listDoctorCalls)
}

func TestDoctorUpdateInvalidatesDirectory(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewService(repo)

	id := uuid.New()
	repo.profiles[id] = &model.Profile{
		Base:     model.Base{ID: id},
		Email:    "doc@example.com",
		FullName: strPtr("Dr. A"),
		IsDoctor: true,
	}

	_, err := svc.ListDoctors(context.Background())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), id, &model.UpdateProfileRequest{
		FullName: strPtr("Dr. B"),
	})
	require.NoError(t, err)

	doctors, err := svc.ListDoctors(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "Dr. B", *doctors[0].FullName)
	assert.Equal(t, 2, repo.listDoctorCalls)
}
