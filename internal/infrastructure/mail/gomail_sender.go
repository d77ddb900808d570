// Package mail implementa el envío de correo saliente sobre SMTP.
package mail

import (
	"gopkg.in/gomail.v2"

	"github.com/tu-usuario/pos-inventario/internal/application/notification"
	"github.com/tu-usuario/pos-inventario/pkg/config"
	"github.com/tu-usuario/pos-inventario/pkg/logger"
)

var _ notification.EmailSender = (*GomailSender)(nil)

// GomailSender envía correos vía SMTP con gomail. Si el host SMTP no está
// configurado, cada envío se loguea y se da por hecho: los entornos de
// desarrollo no necesitan un servidor de correo.
type GomailSender struct {
	cfg config.SMTPConfig
	log *logger.Logger
}

// NewGomailSender construye el sender.
func NewGomailSender(cfg config.SMTPConfig, log *logger.Logger) *GomailSender {
	return &GomailSender{cfg: cfg, log: log}
}

// Send entrega el mensaje. Un destinatario vacío también se omite con log.
func (s *GomailSender) Send(msg notification.EmailMessage) error {
	if s.cfg.Host == "" || msg.To == "" {
		s.log.Info().
			Str("to", msg.To).
			Str("subject", msg.Subject).
			Msg("SMTP no configurado; correo omitido")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return err
	}
	s.log.Debug().Str("to", msg.To).Str("subject", msg.Subject).Msg("correo enviado")
	return nil
}
