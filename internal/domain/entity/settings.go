package entity

import "time"

// ProviderSettings guarda las credenciales de proveedores externos y las
// preferencias de automatización de un usuario. A lo sumo un registro por
// owner (upsert: leer por owner, actualizar si existe, insertar si no).
type ProviderSettings struct {
	ID      string
	OwnerID string

	// Credenciales de proveedores
	OpenAIAPIKey      string
	ResendAPIKey      string
	FromEmail         string // remitente por defecto; vacío → sandbox del proveedor
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string

	// Preferencias de automatización (solo almacenadas; no hay scheduler)
	AutomationEnabled bool
	DefaultTone       string
	ReminderSchedule  string
	EscalationRules   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasEmailCredentials indica si el canal email puede usarse.
func (s *ProviderSettings) HasEmailCredentials() bool {
	return s != nil && s.ResendAPIKey != ""
}

// HasTwilioCredentials indica si los canales whatsapp y voice pueden usarse.
func (s *ProviderSettings) HasTwilioCredentials() bool {
	return s != nil && s.TwilioAccountSID != "" && s.TwilioAuthToken != "" && s.TwilioPhoneNumber != ""
}
