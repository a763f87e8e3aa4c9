package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cobranza-api/internal/application/dto"
	"github.com/jhoicas/Cobranza-api/internal/application/ports"
	"github.com/jhoicas/Cobranza-api/internal/application/watch"
	"github.com/jhoicas/Cobranza-api/internal/domain"
	"github.com/jhoicas/Cobranza-api/internal/domain/collections"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
)

// Timeout por llamada externa (generación de texto y cada canal).
const externalCallTimeout = 10 * time.Second

const defaultTone = "professional"

// ReminderUseCase despacho multicanal de recordatorios y consulta del
// historial. El despacho genera UN solo mensaje compartido, lo envía por cada
// canal solicitado de forma aislada (el fallo de un canal no aborta los
// demás) y persiste un registro Reminder por intento.
type ReminderUseCase struct {
	reminderRepo repository.ReminderRepository
	customerRepo repository.CustomerRepository
	settingsRepo repository.SettingsRepository
	generator    ports.MessageGenerator
	email        ports.EmailSender
	messaging    ports.MessagingSender
	voice        ports.VoiceCaller
	hub          *watch.Hub
}

// NewReminderUseCase construye el caso de uso.
func NewReminderUseCase(
	reminderRepo repository.ReminderRepository,
	customerRepo repository.CustomerRepository,
	settingsRepo repository.SettingsRepository,
	generator ports.MessageGenerator,
	email ports.EmailSender,
	messaging ports.MessagingSender,
	voice ports.VoiceCaller,
	hub *watch.Hub,
) *ReminderUseCase {
	return &ReminderUseCase{
		reminderRepo: reminderRepo,
		customerRepo: customerRepo,
		settingsRepo: settingsRepo,
		generator:    generator,
		email:        email,
		messaging:    messaging,
		voice:        voice,
		hub:          hub,
	}
}

// Dispatch envía un recordatorio por los canales solicitados.
//
//  1. Resuelve los settings del owner y falla rápido (sin llamadas de red) si
//     falta alguna credencial requerida por los canales pedidos.
//  2. Genera el mensaje exactamente una vez, compartido entre canales.
//  3. Fan-out por canal: los envíos corren en paralelo porque no comparten
//     estado mutable, pero la lista de resultados conserva el orden de los
//     canales solicitados, no el de finalización.
//  4. Persiste un Reminder por despacho (canal primario = primero solicitado)
//     y recalcula status/risk del cliente.
//
// Un fallo parcial no es un fallo de la operación: se devuelve la lista de
// resultados con los errores por canal.
func (uc *ReminderUseCase) Dispatch(ctx context.Context, ownerID string, in dto.DispatchRequest) (*dto.DispatchResponse, error) {
	if len(in.Channels) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, ch := range in.Channels {
		switch ch {
		case entity.ChannelEmail, entity.ChannelWhatsApp, entity.ChannelVoice:
		default:
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedChannel, ch)
		}
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}

	settings, err := uc.settingsRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if err := checkCredentials(settings, in.Channels); err != nil {
		return nil, err
	}

	tone := in.Tone
	if tone == "" {
		tone = settings.DefaultTone
	}
	if tone == "" {
		tone = defaultTone
	}

	// Una sola generación por despacho, compartida entre todos los canales.
	genCtx, cancel := context.WithTimeout(ctx, externalCallTimeout)
	defer cancel()
	message, err := uc.generator.GenerateReminderMessage(genCtx, settings.OpenAIAPIKey, ports.ReminderPrompt{
		CustomerName: customer.Name,
		AmountDue:    customer.AmountDue,
		DueDate:      customer.DueDate,
		Tone:         tone,
	})
	if err != nil {
		return nil, err
	}

	results := uc.fanOut(ctx, settings, customer, in.Channels, message)

	sent, failed := 0, 0
	for _, r := range results {
		if r.Success {
			sent++
		} else {
			failed++
		}
	}

	now := time.Now()
	status := entity.ReminderSent
	if sent == 0 {
		status = entity.ReminderFailed
	}
	reminder := &entity.Reminder{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		CustomerID: customer.ID,
		Channel:    in.Channels[0], // canal primario
		Channels:   in.Channels,
		Status:     status,
		Message:    message,
		Tone:       tone,
		SentAt:     &now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.reminderRepo.Create(reminder); err != nil {
		return nil, err
	}
	uc.hub.Publish(ownerID, watch.CollectionReminders)

	// El envío muta el cliente: se recalculan y persisten sus derivados.
	newStatus := collections.ComputeStatus(customer.DueDate, customer.Status, now)
	newRisk := collections.ComputeRisk(customer.DueDate, customer.AmountDue, customer.Status, now)
	if err := uc.customerRepo.UpdateStatusAndRisk(customer.ID, newStatus, newRisk); err != nil {
		return nil, err
	}
	uc.hub.Publish(ownerID, watch.CollectionCustomers)

	return &dto.DispatchResponse{
		ReminderID: reminder.ID,
		Message:    message,
		Results:    results,
		SentCount:  sent,
		FailCount:  failed,
	}, nil
}

// fanOut envía el mensaje por cada canal en paralelo. results[i] corresponde
// a channels[i]; cada goroutine escribe solo su índice.
func (uc *ReminderUseCase) fanOut(ctx context.Context, settings *entity.ProviderSettings, customer *entity.Customer, channels []string, message string) []dto.ChannelOutcome {
	results := make([]dto.ChannelOutcome, len(channels))
	var wg sync.WaitGroup
	for i, channel := range channels {
		wg.Add(1)
		go func(i int, channel string) {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, externalCallTimeout)
			defer cancel()

			id, err := uc.sendOne(callCtx, settings, customer, channel, message)
			if err != nil {
				results[i] = dto.ChannelOutcome{Channel: channel, Success: false, Error: err.Error()}
				return
			}
			results[i] = dto.ChannelOutcome{Channel: channel, Success: true, MessageID: id}
		}(i, channel)
	}
	wg.Wait()
	return results
}

func (uc *ReminderUseCase) sendOne(ctx context.Context, settings *entity.ProviderSettings, customer *entity.Customer, channel, message string) (string, error) {
	switch channel {
	case entity.ChannelEmail:
		return uc.email.Send(ctx, ports.EmailCredentials{
			APIKey:    settings.ResendAPIKey,
			FromEmail: settings.FromEmail,
		}, ports.EmailMessage{
			To:      customer.Email,
			Subject: "Payment Reminder - " + customer.Name,
			HTML:    message,
		})
	case entity.ChannelWhatsApp:
		if customer.Phone == "" {
			return "", fmt.Errorf("%w: el cliente no tiene teléfono", domain.ErrInvalidInput)
		}
		return uc.messaging.SendWhatsApp(ctx, twilioCreds(settings), customer.Phone, message)
	case entity.ChannelVoice:
		if customer.Phone == "" {
			return "", fmt.Errorf("%w: el cliente no tiene teléfono", domain.ErrInvalidInput)
		}
		return uc.voice.Call(ctx, twilioCreds(settings), customer.Phone, message)
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedChannel, channel)
	}
}

func twilioCreds(s *entity.ProviderSettings) ports.TwilioCredentials {
	return ports.TwilioCredentials{
		AccountSID:  s.TwilioAccountSID,
		AuthToken:   s.TwilioAuthToken,
		PhoneNumber: s.TwilioPhoneNumber,
	}
}

// checkCredentials valida antes de cualquier llamada de red que existan las
// credenciales de todos los canales solicitados más la de generación de texto.
func checkCredentials(settings *entity.ProviderSettings, channels []string) error {
	if settings == nil {
		return &domain.MissingCredentialError{Credential: "provider settings"}
	}
	if settings.OpenAIAPIKey == "" {
		return &domain.MissingCredentialError{Credential: "openai_api_key"}
	}
	for _, ch := range channels {
		switch ch {
		case entity.ChannelEmail:
			if !settings.HasEmailCredentials() {
				return &domain.MissingCredentialError{Credential: "resend_api_key"}
			}
		case entity.ChannelWhatsApp, entity.ChannelVoice:
			if !settings.HasTwilioCredentials() {
				return &domain.MissingCredentialError{Credential: "twilio_account_sid/twilio_auth_token/twilio_phone_number"}
			}
		}
	}
	return nil
}

// List devuelve los recordatorios del owner (created_at descendente). Con
// withCustomers se agregan nombre y email del cliente; los recordatorios son
// referencias débiles, así que un cliente borrado se reporta como "Unknown".
func (uc *ReminderUseCase) List(ownerID string, withCustomers bool) ([]*dto.ReminderResponse, error) {
	reminders, err := uc.reminderRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReminderResponse, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, toReminderResponse(r))
	}
	if !withCustomers {
		return out, nil
	}

	customers, err := uc.customerRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}
	for _, r := range out {
		if c, ok := byID[r.CustomerID]; ok {
			r.Customer = &dto.ReminderCustomer{Name: c.Name, Email: c.Email}
		} else {
			r.Customer = &dto.ReminderCustomer{Name: "Unknown", Email: "unknown@example.com"}
		}
	}
	return out, nil
}

// UpdateStatus actualiza el estado de entrega de un recordatorio.
func (uc *ReminderUseCase) UpdateStatus(ownerID, id, status string) error {
	switch status {
	case entity.ReminderPending, entity.ReminderSent, entity.ReminderDelivered, entity.ReminderFailed, entity.ReminderResponded:
	default:
		return domain.ErrInvalidInput
	}
	reminder, err := uc.reminderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if reminder == nil || reminder.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	if err := uc.reminderRepo.UpdateStatus(id, status); err != nil {
		return err
	}
	uc.hub.Publish(ownerID, watch.CollectionReminders)
	return nil
}

func toReminderResponse(r *entity.Reminder) *dto.ReminderResponse {
	return &dto.ReminderResponse{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		Channel:    r.Channel,
		Channels:   r.Channels,
		Status:     r.Status,
		Message:    r.Message,
		Tone:       r.Tone,
		SentAt:     r.SentAt,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
