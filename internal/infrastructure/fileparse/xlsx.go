package fileparse

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Cobranza-api/internal/application/importer"
)

// ParseXLSX lee la primera hoja de un libro XLSX con fila de cabecera y
// devuelve una fila por registro, igual que ParseCSV.
func ParseXLSX(r io.Reader) ([]importer.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: abrir libro: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx: libro sin hojas")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx: leer hoja %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("xlsx: hoja vacía")
	}

	header := records[0]
	var rows []importer.Row
	for _, record := range records[1:] {
		row := recordToRow(header, record)
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
