package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cobranza-api/internal/application/dto"
	"github.com/jhoicas/Cobranza-api/internal/application/importer"
	"github.com/jhoicas/Cobranza-api/internal/application/usecase"
	"github.com/jhoicas/Cobranza-api/internal/application/watch"
	"github.com/jhoicas/Cobranza-api/internal/domain"
	"github.com/jhoicas/Cobranza-api/internal/domain/collections"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
)

// fakeTxRunner ejecuta el callback contra el mismo repo en memoria. failAfter
// simula un fallo a mitad de lote para verificar el todo-o-nada.
type fakeTxRunner struct {
	repo      *fakeCustomerRepo
	failAfter int
}

func (f *fakeTxRunner) RunCustomerBatch(_ context.Context, fn func(repo repository.CustomerRepository) error) error {
	staging := &fakeCustomerRepo{customers: map[string]*entity.Customer{}}
	if err := fn(staging); err != nil {
		return err
	}
	// Commit: volcar staging al repo real.
	for id, c := range staging.customers {
		f.repo.customers[id] = c
	}
	return nil
}

type countingTxRunner struct {
	inner *fakeTxRunner
	fail  bool
}

func (c *countingTxRunner) RunCustomerBatch(ctx context.Context, fn func(repo repository.CustomerRepository) error) error {
	if c.fail {
		return errors.New("deadlock detected")
	}
	return c.inner.RunCustomerBatch(ctx, fn)
}

type fakePDF struct {
	gotOwner     string
	gotCustomers []*entity.Customer
}

func (f *fakePDF) GenerateStatementPDF(_ context.Context, ownerName string, customers []*entity.Customer) ([]byte, error) {
	f.gotOwner = ownerName
	f.gotCustomers = customers
	return []byte("%PDF-1.7 fake"), nil
}

func newCustomerFixture() (*usecase.CustomerUseCase, *fakeCustomerRepo, *fakePDF) {
	repo := &fakeCustomerRepo{customers: map[string]*entity.Customer{}}
	pdf := &fakePDF{}
	uc := usecase.NewCustomerUseCase(repo, &fakeTxRunner{repo: repo}, pdf, watch.NewHub())
	return uc, repo, pdf
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomerCreate_DerivadosIniciales(t *testing.T) {
	uc, repo, _ := newCustomerFixture()

	out, err := uc.Create(testOwner, dto.CreateCustomerRequest{
		Name:      "Ana Gómez",
		Email:     "ana@example.com",
		AmountDue: decimal.NewFromInt(60000),
		DueDate:   time.Now().AddDate(0, 0, -40).Format("2006-01-02"),
	})
	require.NoError(t, err)

	assert.Equal(t, collections.StatusOverdue, out.Status)
	assert.Equal(t, collections.RiskHigh, out.RiskLevel, "40 días y monto alto")
	assert.Equal(t, 40, out.DaysOverdue)
	assert.Len(t, repo.customers, 1)
}

func TestCustomerCreate_Validacion(t *testing.T) {
	uc, _, _ := newCustomerFixture()

	_, err := uc.Create(testOwner, dto.CreateCustomerRequest{Email: "x@y.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "name requerido")

	_, err = uc.Create(testOwner, dto.CreateCustomerRequest{
		Name: "Ana", Email: "x@y.com", DueDate: "2026-01-01",
		AmountDue: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "monto debe ser positivo")

	_, err = uc.Create(testOwner, dto.CreateCustomerRequest{
		Name: "Ana", Email: "x@y.com", DueDate: "no-es-fecha",
		AmountDue: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un cliente de otro owner es indistinguible de uno inexistente.
func TestCustomerGet_AislamientoPorOwner(t *testing.T) {
	uc, repo, _ := newCustomerFixture()
	repo.customers["c1"] = &entity.Customer{ID: "c1", OwnerID: "otro-owner", Status: collections.StatusPending}

	_, err := uc.Get(testOwner, "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Una edición parcial no borra los campos opcionales que no viajan.
func TestCustomerUpdate_CamposOmitidosSeConservan(t *testing.T) {
	uc, repo, _ := newCustomerFixture()
	repo.customers["c1"] = &entity.Customer{
		ID: "c1", OwnerID: testOwner, Name: "Ana", Email: "ana@example.com",
		Phone: "+5215512345678", Company: "Acme", Notes: "paga tarde",
		AmountDue: decimal.NewFromInt(100),
		DueDate:   time.Now().AddDate(0, 0, 5),
		Status:    collections.StatusPending,
	}

	out, err := uc.Update(testOwner, "c1", dto.UpdateCustomerRequest{Name: "Ana Gómez"})
	require.NoError(t, err)

	assert.Equal(t, "Ana Gómez", out.Name)
	assert.Equal(t, "+5215512345678", repo.customers["c1"].Phone)
	assert.Equal(t, "Acme", repo.customers["c1"].Company)
	assert.Equal(t, "paga tarde", repo.customers["c1"].Notes)
	assert.Equal(t, "ana@example.com", repo.customers["c1"].Email)
}

func TestCustomerMarkPaid_EstadoTerminal(t *testing.T) {
	uc, repo, _ := newCustomerFixture()
	repo.customers["c1"] = &entity.Customer{
		ID: "c1", OwnerID: testOwner, Name: "Ana",
		AmountDue: decimal.NewFromInt(99000),
		DueDate:   time.Now().AddDate(0, 0, -60),
		Status:    collections.StatusOverdue,
		RiskLevel: collections.RiskHigh,
	}

	out, err := uc.MarkPaid(testOwner, "c1")
	require.NoError(t, err)

	assert.Equal(t, collections.StatusPaid, out.Status, "pagado es terminal aunque siga vencido por fecha")
	assert.Equal(t, collections.RiskLow, out.RiskLevel)
	assert.Equal(t, 0, out.DaysOverdue)
	assert.Equal(t, collections.StatusPaid, repo.updatedStatus, "el pago se persiste")
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación masiva
// ──────────────────────────────────────────────────────────────────────────────

func TestBulkImport_InsertaLoteCompleto(t *testing.T) {
	uc, repo, _ := newCustomerFixture()

	inputs := []importer.CustomerInput{
		{Name: "Ana", Email: "ana@example.com", AmountDue: decimal.NewFromInt(100), DueDate: time.Now().AddDate(0, 0, 5)},
		{Name: "Carlos", Email: "carlos@example.com", AmountDue: decimal.NewFromInt(200), DueDate: time.Now().AddDate(0, 0, -5)},
	}
	n, err := uc.BulkImport(context.Background(), testOwner, inputs)
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Len(t, repo.customers, 2)
	for _, c := range repo.customers {
		assert.Equal(t, testOwner, c.OwnerID)
		assert.NotEmpty(t, c.Status, "los derivados se calculan al importar")
	}
}

func TestBulkImport_TransaccionFallida_NoInsertaNada(t *testing.T) {
	repo := &fakeCustomerRepo{customers: map[string]*entity.Customer{}}
	tx := &countingTxRunner{inner: &fakeTxRunner{repo: repo}, fail: true}
	uc := usecase.NewCustomerUseCase(repo, tx, &fakePDF{}, watch.NewHub())

	_, err := uc.BulkImport(context.Background(), testOwner, []importer.CustomerInput{
		{Name: "Ana", Email: "ana@example.com", AmountDue: decimal.NewFromInt(100), DueDate: time.Now()},
	})
	require.Error(t, err)
	assert.Empty(t, repo.customers, "todo o nada")
}

func TestBulkImport_LoteVacio(t *testing.T) {
	uc, _, _ := newCustomerFixture()
	n, err := uc.BulkImport(context.Background(), testOwner, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado de cartera
// ──────────────────────────────────────────────────────────────────────────────

func TestStatement_SoloClientesNoPagados(t *testing.T) {
	uc, repo, pdf := newCustomerFixture()
	repo.customers["c1"] = &entity.Customer{
		ID: "c1", OwnerID: testOwner, Name: "Ana",
		AmountDue: decimal.NewFromInt(100), DueDate: time.Now().AddDate(0, 0, -3),
		Status: collections.StatusPending,
	}
	repo.customers["c2"] = &entity.Customer{
		ID: "c2", OwnerID: testOwner, Name: "Carlos",
		AmountDue: decimal.NewFromInt(200), DueDate: time.Now().AddDate(0, 0, -3),
		Status: collections.StatusPaid,
	}

	out, err := uc.Statement(context.Background(), testOwner, "owner@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	require.Len(t, pdf.gotCustomers, 1, "los pagados no aparecen en el estado de cartera")
	assert.Equal(t, "Ana", pdf.gotCustomers[0].Name)
	assert.Equal(t, collections.StatusOverdue, pdf.gotCustomers[0].Status,
		"los derivados van recalculados al PDF")
	assert.Equal(t, "owner@example.com", pdf.gotOwner)
}
