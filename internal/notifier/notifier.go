// Package notifier e-mails run reports.
package notifier

import (
	"fmt"

	"github.com/ibeckermayer/syndicate/internal/config"
	"github.com/ibeckermayer/syndicate/internal/notifier/providers"
	"github.com/ibeckermayer/syndicate/internal/report"
)

//go:generate mockgen -source=notifier.go -destination=mocks/mocks.go -package=mocks

// Notifier handles sending report notifications
type Notifier struct {
	sender Sender
}

// Sender defines the interface for email sending
type Sender interface {
	Send(to, subject, htmlBody, plainBody string) error
}

// New creates a new notifier with the given sender
func New(sender Sender) *Notifier {
	return &Notifier{sender: sender}
}

// NewFromConfig creates a notifier based on configuration
func NewFromConfig(cfg config.EmailConfig) (*Notifier, error) {
	var sender Sender

	switch cfg.Provider {
	case "smtp", "":
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("smtp_host is required")
		}
		sender = providers.NewSMTPSender(
			cfg.SMTPHost,
			cfg.SMTPPort,
			cfg.SMTPUser,
			cfg.SMTPPass,
			cfg.FromAddr,
		)
	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.Provider)
	}

	return New(sender), nil
}

// SendReport sends a run report
func (n *Notifier) SendReport(r *report.Report, toAddr string) error {
	if toAddr == "" {
		return fmt.Errorf("no recipient configured")
	}
	return n.sender.Send(toAddr, r.Subject, r.HTMLBody, r.PlainBody)
}
