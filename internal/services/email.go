package services

import (
	"context"
	"fmt"
	"log"

	"eventadmissions/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendOrderConfirmation sends the registration receipt using the
// "order_confirmation" template and the given data.
func (s *emailService) SendOrderConfirmation(ctx context.Context, data *domain.OrderConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("order confirmation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("order_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render order_confirmation template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send order confirmation email: %w", err)
	}
	log.Printf("[EMAIL] Order confirmation for %s sent to %s", data.TransactionID, data.Email)
	return nil
}
