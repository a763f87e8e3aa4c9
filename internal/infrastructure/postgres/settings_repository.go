package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cobranza-api/internal/domain"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación de SettingsRepository. La tabla tiene un
// constraint único sobre owner_id: a lo sumo un registro por owner.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

const settingsColumns = `id, owner_id, openai_api_key, resend_api_key, from_email,
		twilio_account_sid, twilio_auth_token, twilio_phone_number,
		automation_enabled, default_tone, reminder_schedule, escalation_rules,
		created_at, updated_at`

// GetByOwner obtiene los settings del owner; nil si nunca los guardó.
func (r *SettingsRepo) GetByOwner(ownerID string) (*entity.ProviderSettings, error) {
	query := `SELECT ` + settingsColumns + ` FROM provider_settings WHERE owner_id = $1`
	var s entity.ProviderSettings
	err := r.q.QueryRow(context.Background(), query, ownerID).Scan(
		&s.ID, &s.OwnerID, &s.OpenAIAPIKey, &s.ResendAPIKey, &s.FromEmail,
		&s.TwilioAccountSID, &s.TwilioAuthToken, &s.TwilioPhoneNumber,
		&s.AutomationEnabled, &s.DefaultTone, &s.ReminderSchedule, &s.EscalationRules,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Create persiste los settings de un owner por primera vez.
func (r *SettingsRepo) Create(settings *entity.ProviderSettings) error {
	query := `
		INSERT INTO provider_settings (` + settingsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		settings.ID, settings.OwnerID, settings.OpenAIAPIKey, settings.ResendAPIKey,
		settings.FromEmail, settings.TwilioAccountSID, settings.TwilioAuthToken,
		settings.TwilioPhoneNumber, settings.AutomationEnabled, settings.DefaultTone,
		settings.ReminderSchedule, settings.EscalationRules,
		settings.CreatedAt, settings.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert settings: %w", err)
	}
	return nil
}

// Update reemplaza los settings existentes del owner.
func (r *SettingsRepo) Update(settings *entity.ProviderSettings) error {
	query := `
		UPDATE provider_settings SET openai_api_key = $2, resend_api_key = $3,
			from_email = $4, twilio_account_sid = $5, twilio_auth_token = $6,
			twilio_phone_number = $7, automation_enabled = $8, default_tone = $9,
			reminder_schedule = $10, escalation_rules = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		settings.ID, settings.OpenAIAPIKey, settings.ResendAPIKey, settings.FromEmail,
		settings.TwilioAccountSID, settings.TwilioAuthToken, settings.TwilioPhoneNumber,
		settings.AutomationEnabled, settings.DefaultTone, settings.ReminderSchedule,
		settings.EscalationRules, settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}
