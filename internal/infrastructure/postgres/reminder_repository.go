package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
)

var _ repository.ReminderRepository = (*ReminderRepo)(nil)

// ReminderRepo implementación de ReminderRepository (usable con pool o tx).
// La columna channels es text[]; pgx la mapea directo a []string.
type ReminderRepo struct {
	q Querier
}

// NewReminderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReminderRepository(q Querier) *ReminderRepo {
	return &ReminderRepo{q: q}
}

const reminderColumns = `id, owner_id, customer_id, channel, channels, status,
		message, tone, sent_at, created_at, updated_at`

// Create persiste un nuevo recordatorio.
func (r *ReminderRepo) Create(reminder *entity.Reminder) error {
	query := `
		INSERT INTO reminders (` + reminderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		reminder.ID, reminder.OwnerID, reminder.CustomerID,
		reminder.Channel, reminder.Channels, reminder.Status,
		reminder.Message, reminder.Tone, reminder.SentAt,
		reminder.CreatedAt, reminder.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reminder: %w", err)
	}
	return nil
}

// GetByID obtiene un recordatorio por ID.
func (r *ReminderRepo) GetByID(id string) (*entity.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE id = $1`
	rem, err := scanReminder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reminder: %w", err)
	}
	return rem, nil
}

// ListByOwner lista los recordatorios del owner, más recientes primero.
func (r *ReminderRepo) ListByOwner(ownerID string) ([]*entity.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders
		WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Reminder
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		list = append(list, rem)
	}
	return list, rows.Err()
}

// UpdateStatus actualiza el estado de entrega de un recordatorio.
func (r *ReminderRepo) UpdateStatus(id, status string) error {
	query := `UPDATE reminders SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update reminder status: %w", err)
	}
	return nil
}

func scanReminder(row pgx.Row) (*entity.Reminder, error) {
	var rem entity.Reminder
	err := row.Scan(
		&rem.ID, &rem.OwnerID, &rem.CustomerID, &rem.Channel, &rem.Channels,
		&rem.Status, &rem.Message, &rem.Tone, &rem.SentAt,
		&rem.CreatedAt, &rem.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rem, nil
}
