package mailer

import (
	"fmt"
	"log"

	"github.com/Nuga25/interneefy-backend/config"

	"github.com/google/uuid"
	gomail "github.com/wneessen/go-mail"
)

type EmailData struct {
	To      string
	From    string
	Subject string
	HTML    string
	Text    string
}

type EmailResult struct {
	Success   bool
	MessageID string
	Provider  string
}

type Provider interface {
	Send(data *EmailData) (*EmailResult, error)
	Name() string
}

// SMTPProvider delivers mail over SMTP.
type SMTPProvider struct {
	client *gomail.Client
}

func NewSMTPProvider(cfg *config.Config) (*SMTPProvider, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("mailer: EMAIL_HOST is not configured")
	}
	client, err := gomail.NewClient(cfg.SMTPHost,
		gomail.WithPort(cfg.SMTPPort),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.SMTPUser),
		gomail.WithPassword(cfg.SMTPPassword),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("mailer: %w", err)
	}
	return &SMTPProvider{client: client}, nil
}

func (p *SMTPProvider) Send(data *EmailData) (*EmailResult, error) {
	msg := gomail.NewMsg()
	if err := msg.From(data.From); err != nil {
		return nil, err
	}
	if err := msg.To(data.To); err != nil {
		return nil, err
	}
	msg.Subject(data.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, data.Text)
	msg.AddAlternativeString(gomail.TypeTextHTML, data.HTML)

	if err := p.client.DialAndSend(msg); err != nil {
		return nil, err
	}
	return &EmailResult{Success: true, MessageID: uuid.NewString(), Provider: p.Name()}, nil
}

func (p *SMTPProvider) Name() string {
	return "smtp"
}

// Service dispatches mail off the request path. Enqueue never blocks and
// never returns an error: delivery failure is an operational concern, not a
// caller-visible one.
type Service struct {
	provider Provider
	from     string
	queue    chan *EmailData
}

const queueSize = 64

func NewService(provider Provider, from string) *Service {
	s := &Service{
		provider: provider,
		from:     from,
		queue:    make(chan *EmailData, queueSize),
	}
	go s.worker()
	return s
}

func (s *Service) worker() {
	for data := range s.queue {
		result, err := s.provider.Send(data)
		if err != nil {
			log.Printf("mailer: failed to send %q to %s: %v", data.Subject, data.To, err)
			continue
		}
		log.Printf("mailer: sent %q to %s via %s (id %s)", data.Subject, data.To, result.Provider, result.MessageID)
	}
}

func (s *Service) Enqueue(data *EmailData) {
	if data.From == "" {
		data.From = s.from
	}
	select {
	case s.queue <- data:
	default:
		log.Printf("mailer: queue full, dropping %q to %s", data.Subject, data.To)
	}
}

// Close stops the worker after the queue drains.
func (s *Service) Close() {
	close(s.queue)
}
