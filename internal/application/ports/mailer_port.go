package ports

import "context"

// Mailer define el puerto de salida para email transaccional templado.
// Cualquier adaptador (Brevo, consola, mock) debe implementar esta interfaz.
// El contrato es best-effort: los llamadores registran el error y continúan;
// la entrega de correo nunca forma parte del contrato de éxito de una operación.
type Mailer interface {
	// Send envía la plantilla templateID al destinatario con el mapa de
	// parámetros que la plantilla espera. El proveedor renderiza el contenido.
	Send(ctx context.Context, to string, templateID int, params map[string]any) error
}
