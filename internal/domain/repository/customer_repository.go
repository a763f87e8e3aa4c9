package repository

import "github.com/jhoicas/Cobranza-api/internal/domain/entity"

// CustomerRepository puerto de persistencia de clientes.
// Los listados se ordenan por created_at descendente.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	ListByOwner(ownerID string) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	// UpdateStatusAndRisk persiste solo los atributos derivados.
	UpdateStatusAndRisk(id, status, riskLevel string) error
	Delete(id string) error
}
