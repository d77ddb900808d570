// Package notification implementa el pipeline de alertas de stock bajo y la
// gestión de notificaciones (lectura por rol, purga por fecha de corte).
package notification

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
	"github.com/tu-usuario/pos-inventario/pkg/logger"
)

// EmailMessage contrato con el sink de correo externo.
type EmailMessage struct {
	To      string
	Subject string
	Body    string
	// Fields campos de plantilla que el sink puede interpolar.
	Fields map[string]string
}

// EmailSender puerto hacia el transporte de correo saliente.
type EmailSender interface {
	Send(msg EmailMessage) error
}

// settingsProvider lo implementa *settings.Service; interfaz mínima para
// desacoplar y facilitar fakes en tests.
type settingsProvider interface {
	Get() (*entity.Settings, error)
}

// Pipeline emite la alerta de stock bajo: una escritura de Notification y un
// único intento de correo. El fallo del correo se loguea y jamás se propaga a
// la operación de inventario o venta que lo disparó.
type Pipeline struct {
	repo     repository.NotificationRepository
	settings settingsProvider
	mail     EmailSender
	log      *logger.Logger
}

// NewPipeline construye el pipeline.
func NewPipeline(repo repository.NotificationRepository, settings settingsProvider, mail EmailSender, log *logger.Logger) *Pipeline {
	return &Pipeline{repo: repo, settings: settings, mail: mail, log: log}
}

// LowStock evalúa la cantidad resultante contra el límite de alerta del
// producto y, solo si quedó por debajo, registra la notificación e intenta el
// envío. Se invoca tras cada mutación de cantidad (set, incremento, venta).
func (p *Pipeline) LowStock(product *entity.Product, remaining int64) {
	limit := product.AlertLimit
	if limit <= 0 {
		limit = entity.DefaultAlertLimit
	}
	if remaining >= limit {
		return
	}

	msg := lowStockMessage(product.Name, product.SKU, remaining, limit)
	n := &entity.Notification{
		ID:        uuid.New().String(),
		Message:   msg,
		Timestamp: time.Now(),
	}
	if err := p.repo.Create(n); err != nil {
		p.log.Error().Err(err).Str("product_id", product.ID).Msg("no se pudo registrar la notificación de stock bajo")
		return
	}

	p.sendEmail(product, remaining, limit, msg)
}

// sendEmail un solo intento, sin reintentos ni cola. El fallo solo se loguea.
func (p *Pipeline) sendEmail(product *entity.Product, remaining, limit int64, body string) {
	s, err := p.settings.Get()
	if err != nil {
		p.log.Warn().Err(err).Msg("no se pudo leer el email de alertas; correo omitido")
		return
	}
	err = p.mail.Send(EmailMessage{
		To:      s.AlertEmail,
		Subject: "Alerta de stock bajo - " + product.Name,
		Body:    body,
		Fields: map[string]string{
			"product_name":     product.Name,
			"sku":              product.SKU,
			"current_quantity": formatInt(remaining),
			"alert_limit":      formatInt(limit),
		},
	})
	if err != nil {
		p.log.Warn().Err(err).
			Str("product_id", product.ID).
			Str("to", s.AlertEmail).
			Msg("fallo el envío del correo de stock bajo")
	}
}
