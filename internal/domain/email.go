package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeMessageEmailData holds data for the onboarding email.
type WelcomeMessageEmailData struct {
	Email     string
	Name      string
	InventoID string
}

// RegistrationEmailData holds data for the registration confirmation email.
type RegistrationEmailData struct {
	Email        string
	Name         string
	InventoID    string
	EventName    string
	TeamName     string
	IsOfficial   bool
	WhatsAppLink string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendWelcomeMessage(ctx context.Context, data *WelcomeMessageEmailData) error
	SendRegistrationConfirmation(ctx context.Context, data *RegistrationEmailData) error
}
