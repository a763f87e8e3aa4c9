package repository

import "github.com/jhoicas/Cobranza-api/internal/domain/entity"

// SettingsRepository puerto de persistencia de ProviderSettings.
type SettingsRepository interface {
	GetByOwner(ownerID string) (*entity.ProviderSettings, error)
	Create(settings *entity.ProviderSettings) error
	Update(settings *entity.ProviderSettings) error
}
