package dto

import "time"

// SettingsRequest credenciales de proveedores y preferencias de automatización.
// Upsert: el primer guardado crea el registro, los siguientes lo actualizan.
type SettingsRequest struct {
	OpenAIAPIKey      string `json:"openai_api_key"`
	ResendAPIKey      string `json:"resend_api_key"`
	FromEmail         string `json:"from_email"`
	TwilioAccountSID  string `json:"twilio_account_sid"`
	TwilioAuthToken   string `json:"twilio_auth_token"`
	TwilioPhoneNumber string `json:"twilio_phone_number"`
	AutomationEnabled bool   `json:"automation_enabled"`
	DefaultTone       string `json:"default_ai_tone"`
	ReminderSchedule  string `json:"reminder_schedule"`
	EscalationRules   string `json:"escalation_rules"`
}

// SettingsResponse settings del owner. Las keys son del propio usuario, así
// que se devuelven completas para que el formulario pueda editarlas.
type SettingsResponse struct {
	ID                string    `json:"id"`
	OpenAIAPIKey      string    `json:"openai_api_key"`
	ResendAPIKey      string    `json:"resend_api_key"`
	FromEmail         string    `json:"from_email"`
	TwilioAccountSID  string    `json:"twilio_account_sid"`
	TwilioAuthToken   string    `json:"twilio_auth_token"`
	TwilioPhoneNumber string    `json:"twilio_phone_number"`
	AutomationEnabled bool      `json:"automation_enabled"`
	DefaultTone       string    `json:"default_ai_tone"`
	ReminderSchedule  string    `json:"reminder_schedule"`
	EscalationRules   string    `json:"escalation_rules"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
