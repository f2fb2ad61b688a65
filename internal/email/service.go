package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Service sends transactional mail. Delivery is best-effort; callers log and
// swallow failures.
type Service interface {
	Send(to, subject, body string) error
}

type Config struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type smtpService struct {
	cfg    Config
	dialer *gomail.Dialer
}

func NewService(cfg Config) Service {
	if !cfg.Enabled {
		return &noopService{}
	}
	return &smtpService{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *smtpService) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

type noopService struct{}

func (s *noopService) Send(to, subject, body string) error {
	return nil
}
