package usecase_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cobranza-api/internal/application/dto"
	"github.com/jhoicas/Cobranza-api/internal/application/ports"
	"github.com/jhoicas/Cobranza-api/internal/application/usecase"
	"github.com/jhoicas/Cobranza-api/internal/application/watch"
	"github.com/jhoicas/Cobranza-api/internal/domain"
	"github.com/jhoicas/Cobranza-api/internal/domain/collections"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de repositorios y puertos
// ──────────────────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer

	updatedStatus string
	updatedRisk   string
}

func (f *fakeCustomerRepo) Create(c *entity.Customer) error { f.customers[c.ID] = c; return nil }
func (f *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return f.customers[id], nil
}
func (f *fakeCustomerRepo) ListByOwner(ownerID string) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range f.customers {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (f *fakeCustomerRepo) Update(c *entity.Customer) error { f.customers[c.ID] = c; return nil }
func (f *fakeCustomerRepo) UpdateStatusAndRisk(id, status, risk string) error {
	f.updatedStatus, f.updatedRisk = status, risk
	return nil
}
func (f *fakeCustomerRepo) Delete(id string) error { delete(f.customers, id); return nil }

type fakeReminderRepo struct {
	created []*entity.Reminder
}

func (f *fakeReminderRepo) Create(r *entity.Reminder) error { f.created = append(f.created, r); return nil }
func (f *fakeReminderRepo) GetByID(string) (*entity.Reminder, error) { return nil, nil }
func (f *fakeReminderRepo) ListByOwner(string) ([]*entity.Reminder, error) {
	return f.created, nil
}
func (f *fakeReminderRepo) UpdateStatus(string, string) error { return nil }

type fakeSettingsRepo struct {
	settings *entity.ProviderSettings
}

func (f *fakeSettingsRepo) GetByOwner(string) (*entity.ProviderSettings, error) {
	return f.settings, nil
}
func (f *fakeSettingsRepo) Create(*entity.ProviderSettings) error { return nil }
func (f *fakeSettingsRepo) Update(*entity.ProviderSettings) error { return nil }

type fakeGenerator struct {
	calls   int32
	message string
	err     error

	gotTone string
}

func (f *fakeGenerator) GenerateReminderMessage(_ context.Context, _ string, p ports.ReminderPrompt) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	f.gotTone = p.Tone
	return f.message, f.err
}

type fakeEmail struct {
	calls int32
	id    string
	err   error
}

func (f *fakeEmail) Send(context.Context, ports.EmailCredentials, ports.EmailMessage) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.id, f.err
}

type fakeMessaging struct {
	calls int32
	id    string
	err   error
}

func (f *fakeMessaging) SendWhatsApp(context.Context, ports.TwilioCredentials, string, string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.id, f.err
}

type fakeVoice struct {
	calls int32
	id    string
	err   error
}

func (f *fakeVoice) Call(context.Context, ports.TwilioCredentials, string, string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.id, f.err
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	testOwner    = "owner-1"
	testCustomer = "customer-1"
)

type dispatchFixture struct {
	uc           *usecase.ReminderUseCase
	customerRepo *fakeCustomerRepo
	reminderRepo *fakeReminderRepo
	settingsRepo *fakeSettingsRepo
	generator    *fakeGenerator
	email        *fakeEmail
	messaging    *fakeMessaging
	voice        *fakeVoice
}

func fullSettings() *entity.ProviderSettings {
	return &entity.ProviderSettings{
		ID:                "settings-1",
		OwnerID:           testOwner,
		OpenAIAPIKey:      "sk-test",
		ResendAPIKey:      "re-test",
		FromEmail:         "cobros@example.com",
		TwilioAccountSID:  "AC123",
		TwilioAuthToken:   "secret",
		TwilioPhoneNumber: "+15550001111",
	}
}

func newFixture(settings *entity.ProviderSettings) *dispatchFixture {
	f := &dispatchFixture{
		customerRepo: &fakeCustomerRepo{customers: map[string]*entity.Customer{
			testCustomer: {
				ID:        testCustomer,
				OwnerID:   testOwner,
				Name:      "Ana Gómez",
				Email:     "ana@example.com",
				Phone:     "+573001112233",
				AmountDue: decimal.NewFromInt(1200),
				DueDate:   time.Now().AddDate(0, 0, -10),
				Status:    collections.StatusPending,
			},
		}},
		reminderRepo: &fakeReminderRepo{},
		settingsRepo: &fakeSettingsRepo{settings: settings},
		generator:    &fakeGenerator{message: "Estimada Ana, le recordamos su saldo pendiente."},
		email:        &fakeEmail{id: "email-id-1"},
		messaging:    &fakeMessaging{id: "wa-id-1"},
		voice:        &fakeVoice{id: "call-id-1"},
	}
	f.uc = usecase.NewReminderUseCase(
		f.reminderRepo, f.customerRepo, f.settingsRepo,
		f.generator, f.email, f.messaging, f.voice,
		watch.NewHub(),
	)
	return f
}

func (f *dispatchFixture) dispatch(t *testing.T, channels ...string) (*dto.DispatchResponse, error) {
	t.Helper()
	return f.uc.Dispatch(context.Background(), testOwner, dto.DispatchRequest{
		CustomerID: testCustomer,
		Channels:   channels,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Dispatch: aislamiento de fallos y orden de resultados
// ──────────────────────────────────────────────────────────────────────────────

// email ok + whatsapp falla: 2 resultados en el orden solicitado, el fallo de
// un canal no aborta el otro.
func TestDispatch_FalloParcialAislado(t *testing.T) {
	f := newFixture(fullSettings())
	f.messaging.err = &domain.DeliveryError{Provider: "twilio", StatusCode: 400, Message: "invalid To"}

	resp, err := f.dispatch(t, "email", "whatsapp")
	require.NoError(t, err, "un fallo parcial no es un fallo de la operación")

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "email", resp.Results[0].Channel, "el orden de resultados es el de los canales solicitados")
	assert.True(t, resp.Results[0].Success)
	assert.Equal(t, "email-id-1", resp.Results[0].MessageID)

	assert.Equal(t, "whatsapp", resp.Results[1].Channel)
	assert.False(t, resp.Results[1].Success)
	assert.Contains(t, resp.Results[1].Error, "invalid To")

	assert.Equal(t, 1, resp.SentCount)
	assert.Equal(t, 1, resp.FailCount)
}

func TestDispatch_MensajeGeneradoUnaSolaVez(t *testing.T) {
	f := newFixture(fullSettings())

	resp, err := f.dispatch(t, "email", "whatsapp", "voice")
	require.NoError(t, err)

	assert.EqualValues(t, 1, f.generator.calls,
		"la generación se invoca exactamente una vez por despacho, no por canal")
	assert.Len(t, resp.Results, 3)
	for _, r := range resp.Results {
		assert.True(t, r.Success)
	}
}

func TestDispatch_RegistroReminderPersistido(t *testing.T) {
	f := newFixture(fullSettings())

	resp, err := f.dispatch(t, "whatsapp", "email")
	require.NoError(t, err)

	require.Len(t, f.reminderRepo.created, 1, "un registro Reminder por despacho")
	rec := f.reminderRepo.created[0]
	assert.Equal(t, resp.ReminderID, rec.ID)
	assert.Equal(t, "whatsapp", rec.Channel, "el canal primario es el primero solicitado")
	assert.Equal(t, []string{"whatsapp", "email"}, rec.Channels)
	assert.Equal(t, entity.ReminderSent, rec.Status)
	assert.Equal(t, f.generator.message, rec.Message)
	assert.NotNil(t, rec.SentAt)
}

// Si todos los canales fallan, el registro queda "failed".
func TestDispatch_TodosLosCanalesFallan(t *testing.T) {
	f := newFixture(fullSettings())
	f.email.err = errors.New("connection refused")
	f.voice.err = &domain.DeliveryError{Provider: "twilio", StatusCode: 500, Message: "server error"}

	resp, err := f.dispatch(t, "email", "voice")
	require.NoError(t, err)

	assert.Equal(t, 0, resp.SentCount)
	assert.Equal(t, 2, resp.FailCount)
	require.Len(t, f.reminderRepo.created, 1)
	assert.Equal(t, entity.ReminderFailed, f.reminderRepo.created[0].Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dispatch: fail fast por credenciales
// ──────────────────────────────────────────────────────────────────────────────

// Sin resend_api_key el despacho por email falla con error de configuración
// ANTES de cualquier llamada de red (ni generación ni envío).
func TestDispatch_CredencialResendFaltante_FailFast(t *testing.T) {
	settings := fullSettings()
	settings.ResendAPIKey = ""
	f := newFixture(settings)

	_, err := f.dispatch(t, "email")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingCredential)
	assert.Contains(t, err.Error(), "resend_api_key")
	assert.Zero(t, f.generator.calls, "no debe intentarse la generación")
	assert.Zero(t, f.email.calls, "no debe intentarse ningún envío")
}

func TestDispatch_CredencialTwilioFaltante_FailFast(t *testing.T) {
	settings := fullSettings()
	settings.TwilioAuthToken = ""
	f := newFixture(settings)

	_, err := f.dispatch(t, "email", "voice")

	assert.ErrorIs(t, err, domain.ErrMissingCredential,
		"basta que falte la credencial de UNO de los canales pedidos")
	assert.Zero(t, f.generator.calls)
	assert.Zero(t, f.email.calls)
	assert.Zero(t, f.voice.calls)
}

func TestDispatch_SinSettings_FailFast(t *testing.T) {
	f := newFixture(nil)

	_, err := f.dispatch(t, "email")
	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dispatch: validaciones y efectos colaterales
// ──────────────────────────────────────────────────────────────────────────────

func TestDispatch_CanalDesconocido(t *testing.T) {
	f := newFixture(fullSettings())
	_, err := f.dispatch(t, "fax")
	assert.ErrorIs(t, err, domain.ErrUnsupportedChannel)
}

func TestDispatch_SinCanales(t *testing.T) {
	f := newFixture(fullSettings())
	_, err := f.dispatch(t)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDispatch_ClienteDeOtroOwner(t *testing.T) {
	f := newFixture(fullSettings())
	f.customerRepo.customers[testCustomer].OwnerID = "otro-owner"

	_, err := f.dispatch(t, "email")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Tras el despacho se recalculan y persisten los derivados del cliente:
// 10 días de mora → overdue / medium.
func TestDispatch_RecalculaEstadoDelCliente(t *testing.T) {
	f := newFixture(fullSettings())

	_, err := f.dispatch(t, "email")
	require.NoError(t, err)

	assert.Equal(t, collections.StatusOverdue, f.customerRepo.updatedStatus)
	assert.Equal(t, collections.RiskMedium, f.customerRepo.updatedRisk)
}

// El tono por defecto del owner se usa cuando la petición no trae tono.
func TestDispatch_TonoPorDefectoDelOwner(t *testing.T) {
	settings := fullSettings()
	settings.DefaultTone = "firm"
	f := newFixture(settings)

	_, err := f.dispatch(t, "email")
	require.NoError(t, err)
	assert.Equal(t, "firm", f.generator.gotTone)
}

// Error del generador aborta el despacho completo: sin mensaje no hay envíos.
func TestDispatch_ErrorDeGeneracionAbortaTodo(t *testing.T) {
	f := newFixture(fullSettings())
	f.generator.err = errors.New("model unavailable")
	f.generator.message = ""

	_, err := f.dispatch(t, "email", "whatsapp")
	require.Error(t, err)
	assert.Zero(t, f.email.calls)
	assert.Zero(t, f.messaging.calls)
	assert.Empty(t, f.reminderRepo.created)
}
