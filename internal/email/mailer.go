package email

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Mailer arma los links de los flujos single-use y delega el envío al Sender.
type Mailer struct {
	sender      Sender
	frontendURL string // base del frontend, sin slash final
}

// NewMailer crea un Mailer. frontendURL es la base pública del frontend
// (ej: https://app.example.com).
func NewMailer(sender Sender, frontendURL string) *Mailer {
	return &Mailer{
		sender:      sender,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// SendPasswordReset envía el link de reset con el token firmado.
func (m *Mailer) SendPasswordReset(to, name, token string, ttl time.Duration) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, url.QueryEscape(token))
	subject, html, text, err := renderReset(name, link, ttl)
	if err != nil {
		return fmt.Errorf("email: renderizando template de reset: %w", err)
	}
	return m.sender.Send(to, subject, html, text)
}

// SendVerification envía el link de verificación de email.
func (m *Mailer) SendVerification(to, name, token string, ttl time.Duration) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", m.frontendURL, url.QueryEscape(token))
	subject, html, text, err := renderVerify(name, link, ttl)
	if err != nil {
		return fmt.Errorf("email: renderizando template de verificación: %w", err)
	}
	return m.sender.Send(to, subject, html, text)
}
