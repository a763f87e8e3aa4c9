package importer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cobranza-api/internal/application/importer"
)

func validRow(name, email string) importer.Row {
	return importer.Row{
		"name":       name,
		"email":      email,
		"amount_due": "1500.50",
		"due_date":   "2025-07-01",
	}
}

// 3 filas válidas y 1 sin email: exactamente 3 clientes validados y 1 error
// que referencia la fila 4 (1-based sobre filas de datos).
func TestMapAndValidate_SubconjuntoValidoImportable(t *testing.T) {
	rows := []importer.Row{
		validRow("Ana Gómez", "ana@example.com"),
		validRow("Luis Pérez", "luis@example.com"),
		validRow("Marta Ruiz", "marta@example.com"),
		{"name": "Sin Email", "amount_due": "100", "due_date": "2025-07-01"},
	}

	valid, errs := importer.MapAndValidate(rows)

	assert.Len(t, valid, 3, "las filas válidas deben sobrevivir aunque otra falle")
	require.Len(t, errs, 1)
	assert.Equal(t, 4, errs[0].Row, "el error debe referenciar la fila 4")
	assert.Contains(t, errs[0].Message, "email")
}

// Los encabezados se mapean case-insensitive vía la lista de alias.
func TestMapAndValidate_AliasDeEncabezados(t *testing.T) {
	rows := []importer.Row{
		{
			"Customer Name":  "Ana Gómez",
			"Customer Email": "ana@example.com",
			"Amount Due":     "$2,500.00",
			"Due Date":       "2025/08/15",
			"Description":    "saldo factura 44",
			"Customer Phone": "+573001112233",
		},
	}

	valid, errs := importer.MapAndValidate(rows)

	require.Empty(t, errs)
	require.Len(t, valid, 1)
	got := valid[0]
	assert.Equal(t, "Ana Gómez", got.Name)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, "+573001112233", got.Phone)
	assert.Equal(t, "2500", got.AmountDue.String(), "el monto debe parsear quitando símbolo y separador de miles")
	assert.Equal(t, "saldo factura 44", got.Notes)
	assert.Equal(t, 2025, got.DueDate.Year())
	assert.Equal(t, 8, int(got.DueDate.Month()))
}

func TestMapAndValidate_MontoNoPositivoEsInvalido(t *testing.T) {
	rows := []importer.Row{
		{"name": "Cero", "email": "c@example.com", "amount_due": "0", "due_date": "2025-07-01"},
		{"name": "Negativo", "email": "n@example.com", "amount_due": "-10", "due_date": "2025-07-01"},
		{"name": "NoNumérico", "email": "x@example.com", "amount_due": "abc", "due_date": "2025-07-01"},
	}

	valid, errs := importer.MapAndValidate(rows)

	assert.Empty(t, valid)
	assert.Len(t, errs, 3)
	for i, e := range errs {
		assert.Equal(t, i+1, e.Row)
		assert.Contains(t, e.Message, "monto")
	}
}

func TestMapAndValidate_FechaInvalidaReportada(t *testing.T) {
	rows := []importer.Row{
		{"name": "Ana", "email": "a@example.com", "amount_due": "50", "due_date": "no-es-fecha"},
	}

	valid, errs := importer.MapAndValidate(rows)

	assert.Empty(t, valid)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "fecha")
}

// Una fila con varios problemas genera un error por campo pero cuenta una vez.
func TestMapAndValidate_VariosErroresMismaFila(t *testing.T) {
	rows := []importer.Row{
		{"phone": "+57300"}, // sin nombre, sin email, sin monto, sin fecha
	}

	valid, errs := importer.MapAndValidate(rows)

	assert.Empty(t, valid)
	assert.Len(t, errs, 4)
	for _, e := range errs {
		assert.Equal(t, 1, e.Row)
	}
}
