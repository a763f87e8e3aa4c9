package repository

import "github.com/jhoicas/Cobranza-api/internal/domain/entity"

// ReminderRepository puerto de persistencia de recordatorios.
// Los recordatorios nunca se borran en el flujo normal; solo se crean y se
// actualiza su estado de entrega.
type ReminderRepository interface {
	Create(reminder *entity.Reminder) error
	GetByID(id string) (*entity.Reminder, error)
	ListByOwner(ownerID string) ([]*entity.Reminder, error)
	UpdateStatus(id, status string) error
}
