// Package importer mapea y valida filas de archivos de importación masiva de
// clientes (CSV o planilla). El mapeo de columnas es case-insensitive sobre
// una lista fija de alias; las filas que fallan la validación se reportan con
// su número (1-based sobre filas de datos) pero el subconjunto válido sigue
// siendo importable.
package importer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cobranza-api/internal/application/dto"
)

// Row una fila de datos del archivo, encabezado original → valor.
type Row map[string]string

// CustomerInput fila ya mapeada y validada, lista para insertar.
type CustomerInput struct {
	Name      string
	Email     string
	Phone     string
	Company   string
	AmountDue decimal.Decimal
	DueDate   time.Time
	Notes     string
}

// Alias aceptados por campo. Las claves se normalizan (minúsculas, espacios a
// guión bajo) antes de comparar, así "Customer Name" y "customer_name"
// resuelven igual.
var fieldAliases = map[string][]string{
	"name":       {"name", "customer_name"},
	"email":      {"email", "customer_email"},
	"phone":      {"phone", "customer_phone"},
	"company":    {"company", "customer_company"},
	"amount_due": {"amount_due", "amount"},
	"due_date":   {"due_date", "duedate", "date"},
	"notes":      {"notes", "description"},
}

// Formatos de fecha aceptados en due_date.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	time.RFC3339,
}

// MapAndValidate transforma las filas crudas en CustomerInput. Devuelve el
// subconjunto válido y los errores por fila; una fila con cualquier error se
// excluye del subconjunto válido.
func MapAndValidate(rows []Row) ([]CustomerInput, []dto.ImportRowError) {
	var valid []CustomerInput
	var rowErrors []dto.ImportRowError

	for i, row := range rows {
		rowNum := i + 1 // 1-based sobre filas de datos
		normalized := normalizeRow(row)

		in := CustomerInput{
			Name:    lookup(normalized, "name"),
			Email:   lookup(normalized, "email"),
			Phone:   lookup(normalized, "phone"),
			Company: lookup(normalized, "company"),
			Notes:   lookup(normalized, "notes"),
		}

		ok := true
		if in.Name == "" {
			rowErrors = append(rowErrors, dto.ImportRowError{Row: rowNum, Message: "falta el nombre del cliente"})
			ok = false
		}
		if in.Email == "" {
			rowErrors = append(rowErrors, dto.ImportRowError{Row: rowNum, Message: "falta el email"})
			ok = false
		}

		amount, amountErr := parseAmount(lookup(normalized, "amount_due"))
		if amountErr || !amount.IsPositive() {
			rowErrors = append(rowErrors, dto.ImportRowError{Row: rowNum, Message: "monto adeudado inválido"})
			ok = false
		}
		in.AmountDue = amount

		rawDate := lookup(normalized, "due_date")
		if rawDate == "" {
			rowErrors = append(rowErrors, dto.ImportRowError{Row: rowNum, Message: "falta la fecha de vencimiento"})
			ok = false
		} else {
			due, err := ParseDueDate(rawDate)
			if err != nil {
				rowErrors = append(rowErrors, dto.ImportRowError{Row: rowNum, Message: "fecha de vencimiento inválida: " + rawDate})
				ok = false
			}
			in.DueDate = due
		}

		if ok {
			valid = append(valid, in)
		}
	}
	return valid, rowErrors
}

// ParseDueDate interpreta una fecha de vencimiento en cualquiera de los
// formatos aceptados.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func normalizeRow(row Row) map[string]string {
	out := make(map[string]string, len(row))
	for k, v := range row {
		out[normalizeKey(k)] = strings.TrimSpace(v)
	}
	return out
}

func normalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	return strings.ReplaceAll(k, " ", "_")
}

func lookup(normalized map[string]string, field string) string {
	for _, alias := range fieldAliases[field] {
		if v, ok := normalized[alias]; ok && v != "" {
			return v
		}
	}
	return ""
}

// parseAmount acepta montos con símbolo de moneda y separador de miles.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, true
	}
	return d, false
}
