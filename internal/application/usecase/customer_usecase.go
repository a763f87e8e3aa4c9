package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cobranza-api/internal/application/dto"
	"github.com/jhoicas/Cobranza-api/internal/application/importer"
	"github.com/jhoicas/Cobranza-api/internal/application/ports"
	"github.com/jhoicas/Cobranza-api/internal/application/watch"
	"github.com/jhoicas/Cobranza-api/internal/domain"
	"github.com/jhoicas/Cobranza-api/internal/domain/collections"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
)

// ImportTxRunner ejecuta la inserción masiva dentro de una transacción:
// o entran todos los clientes del lote o no entra ninguno.
type ImportTxRunner interface {
	RunCustomerBatch(ctx context.Context, fn func(repo repository.CustomerRepository) error) error
}

// CustomerUseCase casos de uso de clientes: CRUD, pago, importación masiva y
// estado de cartera. Status y risk_level se recalculan en cada lectura para
// presentación; se persisten al registrar pagos o enviar recordatorios.
type CustomerUseCase struct {
	repo repository.CustomerRepository
	tx   ImportTxRunner
	pdf  ports.StatementPDFGenerator
	hub  *watch.Hub
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, tx ImportTxRunner, pdf ports.StatementPDFGenerator, hub *watch.Hub) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, tx: tx, pdf: pdf, hub: hub}
}

// Create crea un cliente con status y risk iniciales derivados.
func (uc *CustomerUseCase) Create(ownerID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.Email == "" || in.DueDate == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.AmountDue.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	dueDate, err := importer.ParseDueDate(in.DueDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Company:   in.Company,
		AmountDue: in.AmountDue,
		DueDate:   dueDate,
		Status:    collections.ComputeStatus(dueDate, collections.StatusPending, now),
		RiskLevel: collections.ComputeRisk(dueDate, in.AmountDue, collections.StatusPending, now),
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	uc.hub.Publish(ownerID, watch.CollectionCustomers)
	return toCustomerResponse(customer, now), nil
}

// List lista los clientes del owner (created_at descendente) con los
// atributos derivados recalculados para presentación.
func (uc *CustomerUseCase) List(ownerID string) ([]*dto.CustomerResponse, error) {
	list, err := uc.repo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c, now))
	}
	return out, nil
}

// Get obtiene un cliente del owner.
func (uc *CustomerUseCase) Get(ownerID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.ownedCustomer(ownerID, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer, time.Now()), nil
}

// Update edita un cliente y recalcula sus atributos derivados.
func (uc *CustomerUseCase) Update(ownerID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.ownedCustomer(ownerID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		customer.Name = in.Name
	}
	if in.Email != "" {
		customer.Email = in.Email
	}
	if in.Phone != "" {
		customer.Phone = in.Phone
	}
	if in.Company != "" {
		customer.Company = in.Company
	}
	if in.Notes != "" {
		customer.Notes = in.Notes
	}
	if !in.AmountDue.IsZero() {
		if !in.AmountDue.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		customer.AmountDue = in.AmountDue
	}
	if in.DueDate != "" {
		dueDate, err := importer.ParseDueDate(in.DueDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		customer.DueDate = dueDate
	}
	now := time.Now()
	// Editar fecha o monto puede cambiar el estado; un cliente pagado se queda pagado.
	customer.Status = collections.ComputeStatus(customer.DueDate, customer.Status, now)
	customer.RiskLevel = collections.ComputeRisk(customer.DueDate, customer.AmountDue, customer.Status, now)
	customer.UpdatedAt = now
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	uc.hub.Publish(ownerID, watch.CollectionCustomers)
	return toCustomerResponse(customer, now), nil
}

// MarkPaid registra el pago: status "paid", riesgo "low", ambos terminales.
func (uc *CustomerUseCase) MarkPaid(ownerID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.ownedCustomer(ownerID, id)
	if err != nil {
		return nil, err
	}
	customer.Status = collections.StatusPaid
	customer.RiskLevel = collections.RiskLow
	customer.UpdatedAt = time.Now()
	if err := uc.repo.UpdateStatusAndRisk(customer.ID, customer.Status, customer.RiskLevel); err != nil {
		return nil, err
	}
	uc.hub.Publish(ownerID, watch.CollectionCustomers)
	return toCustomerResponse(customer, customer.UpdatedAt), nil
}

// Delete elimina un cliente del owner.
func (uc *CustomerUseCase) Delete(ownerID, id string) error {
	if _, err := uc.ownedCustomer(ownerID, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.hub.Publish(ownerID, watch.CollectionCustomers)
	return nil
}

// BulkImport inserta el lote validado en una sola transacción (todo o nada).
func (uc *CustomerUseCase) BulkImport(ctx context.Context, ownerID string, inputs []importer.CustomerInput) (int, error) {
	if len(inputs) == 0 {
		return 0, nil
	}
	now := time.Now()
	batch := make([]*entity.Customer, 0, len(inputs))
	for _, in := range inputs {
		batch = append(batch, &entity.Customer{
			ID:        uuid.New().String(),
			OwnerID:   ownerID,
			Name:      in.Name,
			Email:     in.Email,
			Phone:     in.Phone,
			Company:   in.Company,
			AmountDue: in.AmountDue,
			DueDate:   in.DueDate,
			Status:    collections.ComputeStatus(in.DueDate, collections.StatusPending, now),
			RiskLevel: collections.ComputeRisk(in.DueDate, in.AmountDue, collections.StatusPending, now),
			Notes:     in.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	err := uc.tx.RunCustomerBatch(ctx, func(repo repository.CustomerRepository) error {
		for _, c := range batch {
			if err := repo.Create(c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	uc.hub.Publish(ownerID, watch.CollectionCustomers)
	return len(batch), nil
}

// Statement genera el PDF de estado de cartera con los clientes no pagados.
func (uc *CustomerUseCase) Statement(ctx context.Context, ownerID, ownerName string) ([]byte, error) {
	list, err := uc.repo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	var unpaid []*entity.Customer
	for _, c := range list {
		c.Status = collections.ComputeStatus(c.DueDate, c.Status, now)
		c.RiskLevel = collections.ComputeRisk(c.DueDate, c.AmountDue, c.Status, now)
		if c.Status != collections.StatusPaid {
			unpaid = append(unpaid, c)
		}
	}
	return uc.pdf.GenerateStatementPDF(ctx, ownerName, unpaid)
}

func (uc *CustomerUseCase) ownedCustomer(ownerID, id string) (*entity.Customer, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return customer, nil
}

// toCustomerResponse recalcula los derivados con el reloj actual; la lectura
// es idempotente: un registro ya correcto produce los mismos valores.
func toCustomerResponse(c *entity.Customer, now time.Time) *dto.CustomerResponse {
	status := collections.ComputeStatus(c.DueDate, c.Status, now)
	risk := collections.ComputeRisk(c.DueDate, c.AmountDue, c.Status, now)
	days := 0
	if status == collections.StatusOverdue {
		days = collections.DaysOverdue(c.DueDate, now)
	}
	return &dto.CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		Company:     c.Company,
		AmountDue:   c.AmountDue,
		DueDate:     c.DueDate.Format("2006-01-02"),
		Status:      status,
		RiskLevel:   risk,
		DaysOverdue: days,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
