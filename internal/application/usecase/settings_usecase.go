package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cobranza-api/internal/application/dto"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
)

// Dirección sandbox del proveedor de email, usada cuando el owner no
// configura un remitente propio.
const defaultFromEmail = "onboarding@resend.dev"

// SettingsUseCase lectura y guardado de credenciales de proveedores y
// preferencias de automatización. A lo sumo un registro por owner.
type SettingsUseCase struct {
	repo repository.SettingsRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// Get devuelve los settings del owner, o nil si nunca guardó.
func (uc *SettingsUseCase) Get(ownerID string) (*dto.SettingsResponse, error) {
	settings, err := uc.repo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, nil
	}
	return toSettingsResponse(settings), nil
}

// Save hace upsert: lee el registro del owner, actualiza si existe e inserta
// si no. El remitente vacío cae a la dirección sandbox del proveedor.
func (uc *SettingsUseCase) Save(ownerID string, in dto.SettingsRequest) (*dto.SettingsResponse, error) {
	fromEmail := in.FromEmail
	if fromEmail == "" {
		fromEmail = defaultFromEmail
	}

	now := time.Now()
	existing, err := uc.repo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	settings := &entity.ProviderSettings{
		OwnerID:           ownerID,
		OpenAIAPIKey:      in.OpenAIAPIKey,
		ResendAPIKey:      in.ResendAPIKey,
		FromEmail:         fromEmail,
		TwilioAccountSID:  in.TwilioAccountSID,
		TwilioAuthToken:   in.TwilioAuthToken,
		TwilioPhoneNumber: in.TwilioPhoneNumber,
		AutomationEnabled: in.AutomationEnabled,
		DefaultTone:       in.DefaultTone,
		ReminderSchedule:  in.ReminderSchedule,
		EscalationRules:   in.EscalationRules,
		UpdatedAt:         now,
	}

	if existing != nil {
		settings.ID = existing.ID
		settings.CreatedAt = existing.CreatedAt
		if err := uc.repo.Update(settings); err != nil {
			return nil, err
		}
	} else {
		settings.ID = uuid.New().String()
		settings.CreatedAt = now
		if err := uc.repo.Create(settings); err != nil {
			return nil, err
		}
	}
	return toSettingsResponse(settings), nil
}

func toSettingsResponse(s *entity.ProviderSettings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		ID:                s.ID,
		OpenAIAPIKey:      s.OpenAIAPIKey,
		ResendAPIKey:      s.ResendAPIKey,
		FromEmail:         s.FromEmail,
		TwilioAccountSID:  s.TwilioAccountSID,
		TwilioAuthToken:   s.TwilioAuthToken,
		TwilioPhoneNumber: s.TwilioPhoneNumber,
		AutomationEnabled: s.AutomationEnabled,
		DefaultTone:       s.DefaultTone,
		ReminderSchedule:  s.ReminderSchedule,
		EscalationRules:   s.EscalationRules,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}
