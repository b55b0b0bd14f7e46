// Package email envía los correos transaccionales del servicio (reset de
// password y verificación de email).
//
// El envío es un colaborador inyectado: las fallas de SMTP se propagan al
// caller, nunca se tragan — un flujo que no pudo mandar el correo no puede
// reportar éxito.
package email

// Sender envía un correo con cuerpo HTML y texto plano.
type Sender interface {
	Send(to, subject, htmlBody, textBody string) error
}
