package assistant

import (
	"context"
	"time"

	"github.com/herahealth/portal-api/internal/model"
)

const defaultReply = "Thank you for your message. Our health assistant is " +
	"here to help with general wellness questions. For medical concerns, " +
	"please book an appointment with one of our doctors."

type Config struct {
	// ReplyDelay is how long the assistant appears to think before
	// answering.
	ReplyDelay time.Duration `yaml:"reply_delay"`
	Reply      string        `yaml:"reply"`
}

// Service answers patient chat messages with a fixed reply after a fixed
// delay. No model is consulted and no conversation state is kept.
type Service struct {
	cfg Config
}

func NewService(cfg Config) *Service {
	if cfg.ReplyDelay == 0 {
		cfg.ReplyDelay = time.Second
	}
	if cfg.Reply == "" {
		cfg.Reply = defaultReply
	}
	return &Service{cfg: cfg}
}

// Reply waits out the configured delay, then returns the canned answer. The
// wait is cancellable through the context.
func (s *Service) Reply(ctx context.Context, req *model.AssistantMessageRequest) (*model.AssistantMessage, error) {
	select {
	case <-time.After(s.cfg.ReplyDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return &model.AssistantMessage{
		Role:      model.AssistantRoleAssistant,
		Content:   s.cfg.Reply,
		CreatedAt: time.Now(),
	}, nil
}
