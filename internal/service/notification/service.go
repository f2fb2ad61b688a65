package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/herahealth/portal-api/internal/email"
	"github.com/herahealth/portal-api/internal/model"
	"github.com/herahealth/portal-api/internal/repository"
	apperrors "github.com/herahealth/portal-api/pkg/errors"
)

// Service records an in-app notification and buffers an outbox event for
// asynchronous publication. Failures never propagate to the caller's
// user-facing operation.
type Service interface {
	Notify(ctx context.Context, userID uuid.UUID, typ model.NotificationType, title, message string)
	List(ctx context.Context, userID uuid.UUID) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
}

type service struct {
	repo        repository.NotificationRepository
	outboxRepo  repository.OutboxRepository
	profileRepo repository.ProfileRepository
	emailSvc    email.Service
}

func NewService(repo repository.NotificationRepository, outboxRepo repository.OutboxRepository,
	profileRepo repository.ProfileRepository, emailSvc email.Service) Service {
	return &service{
		repo:        repo,
		outboxRepo:  outboxRepo,
		profileRepo: profileRepo,
		emailSvc:    emailSvc,
	}
}

func (s *service) Notify(ctx context.Context, userID uuid.UUID, typ model.NotificationType, title, message string) {
	notification := &model.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to create notification")
		return
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal notification payload")
		return
	}

	if err := s.outboxRepo.Create(ctx, &model.OutboxEvent{
		EventType: "notification." + string(typ),
		Payload:   payload,
	}); err != nil {
		log.Error().Err(err).Msg("failed to enqueue notification event")
	}

	s.sendEmail(ctx, userID, title, message)
}

// List returns the caller's notifications, newest first.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]*model.Notification, error) {
	notifications, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flags one of the caller's notifications as read. Ownership is
// enforced in the query.
func (s *service) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		return apperrors.NotFound("notification", err)
	}
	return nil
}

func (s *service) sendEmail(ctx context.Context, userID uuid.UUID, subject, body string) {
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("skipping notification email, profile lookup failed")
		return
	}

	start := time.Now()
	if err := s.emailSvc.Send(profile.Email, subject, body); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Dur("elapsed", time.Since(start)).Msg("failed to send notification email")
	}
}
