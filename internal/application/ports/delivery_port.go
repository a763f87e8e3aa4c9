package ports

import "context"

// EmailCredentials credenciales del proveedor de email (Resend).
type EmailCredentials struct {
	APIKey    string
	FromEmail string // vacío → dirección sandbox del proveedor
}

// EmailMessage contenido de un correo de recordatorio.
type EmailMessage struct {
	To      string
	Subject string
	HTML    string
}

// TwilioCredentials credenciales compartidas por mensajería y voz.
type TwilioCredentials struct {
	AccountSID  string
	AuthToken   string
	PhoneNumber string // número origen
}

// Adaptadores de canal: una función estrecha por canal, un intento por
// llamada, sin retries ni rate limiting. Devuelven el message id del
// proveedor o un *domain.DeliveryError / error de transporte.

// EmailSender puerto del canal email.
type EmailSender interface {
	Send(ctx context.Context, creds EmailCredentials, msg EmailMessage) (messageID string, err error)
}

// MessagingSender puerto del canal whatsapp.
type MessagingSender interface {
	SendWhatsApp(ctx context.Context, creds TwilioCredentials, to, body string) (messageID string, err error)
}

// VoiceCaller puerto del canal voice. El mensaje se convierte a markup de voz
// (TwiML) en el adaptador.
type VoiceCaller interface {
	Call(ctx context.Context, creds TwilioCredentials, to, message string) (callID string, err error)
}
