package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/teasoo/esg-platform-api/internal/application/ports"
	"github.com/teasoo/esg-platform-api/pkg/logger"
)

const brevoBaseURL = "https://api.brevo.com/v3"

var _ ports.Mailer = (*Brevo)(nil)

// Brevo adaptador del puerto Mailer sobre la API transaccional de Brevo.
// El contenido vive en plantillas administradas en el panel de Brevo; aquí
// solo se referencian por ID y se inyectan los parámetros.
type Brevo struct {
	client      *resty.Client
	senderEmail string
	log         *logger.Logger
}

// NewBrevo construye el cliente de email transaccional.
func NewBrevo(apiKey, senderEmail string, log *logger.Logger) *Brevo {
	client := resty.New().
		SetBaseURL(brevoBaseURL).
		SetTimeout(10 * time.Second).
		SetHeader("api-key", apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Brevo{client: client, senderEmail: senderEmail, log: log}
}

type brevoRecipient struct {
	Email string `json:"email"`
}

type brevoSendRequest struct {
	Sender     brevoRecipient   `json:"sender"`
	To         []brevoRecipient `json:"to"`
	TemplateID int              `json:"templateId"`
	Params     map[string]any   `json:"params,omitempty"`
}

// Send envía la plantilla indicada al destinatario vía Brevo.
func (b *Brevo) Send(ctx context.Context, to string, templateID int, params map[string]any) error {
	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(brevoSendRequest{
			Sender:     brevoRecipient{Email: b.senderEmail},
			To:         []brevoRecipient{{Email: to}},
			TemplateID: templateID,
			Params:     params,
		}).
		Post("/smtp/email")
	if err != nil {
		return fmt.Errorf("brevo send: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("brevo send: status %d: %s", resp.StatusCode(), resp.String())
	}
	b.log.Debug().
		Str("to", to).
		Int("template_id", templateID).
		Msg("Email transaccional enviado")
	return nil
}
