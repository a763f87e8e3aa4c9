// Package fileparse extrae filas tabulares de archivos CSV y XLSX para la
// importación masiva de clientes. Solo parsea; el mapeo de columnas y la
// validación viven en el paquete importer.
package fileparse

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/Cobranza-api/internal/application/importer"
)

// ParseCSV lee un CSV con fila de cabecera y devuelve una fila por registro,
// con las celdas indexadas por el nombre de columna tal cual viene en el
// archivo. Filas completamente vacías se descartan.
func ParseCSV(r io.Reader) ([]importer.Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// Permitir filas con menos celdas que la cabecera.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv: archivo vacío")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: leer cabecera: %w", err)
	}

	var rows []importer.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: leer registro: %w", err)
		}
		row := recordToRow(header, record)
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func recordToRow(header, record []string) importer.Row {
	row := importer.Row{}
	for i, cell := range record {
		if i >= len(header) {
			break
		}
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		row[header[i]] = cell
	}
	return row
}
