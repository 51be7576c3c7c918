package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jhoicas/taller-api/internal/application/ports"
)

var _ ports.Renderer = (*CSVRenderer)(nil)

// CSVRenderer escribe cada tabla como un bloque: título, cabecera y filas, separados por
// una línea vacía.
type CSVRenderer struct{}

// NewCSVRenderer construye el renderer.
func NewCSVRenderer() *CSVRenderer { return &CSVRenderer{} }

// Extension csv.
func (CSVRenderer) Extension() string { return "csv" }

// ContentType text/csv.
func (CSVRenderer) ContentType() string { return "text/csv; charset=utf-8" }

// Render genera el archivo completo en memoria.
func (CSVRenderer) Render(doc ports.Document) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	for i, t := range doc.Tables {
		if i > 0 {
			if err := w.Write([]string{}); err != nil {
				return nil, fmt.Errorf("csv: %w", err)
			}
		}
		if t.Title != "" {
			if err := w.Write([]string{t.Title}); err != nil {
				return nil, fmt.Errorf("csv: %w", err)
			}
		}
		if err := w.Write(t.Headers); err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		for _, r := range t.Rows {
			record := make([]string, len(r))
			for j, v := range r {
				record[j] = plain(v)
			}
			if err := w.Write(record); err != nil {
				return nil, fmt.Errorf("csv: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return buf.Bytes(), nil
}
