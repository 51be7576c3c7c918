package export

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/taller-api/internal/application/ports"
)

var _ ports.Renderer = (*ExcelRenderer)(nil)

// maxSheetName límite de Excel para nombres de hoja.
const maxSheetName = 31

// ExcelRenderer una hoja por tabla; los montos se escriben como números.
type ExcelRenderer struct{}

// NewExcelRenderer construye el renderer.
func NewExcelRenderer() *ExcelRenderer { return &ExcelRenderer{} }

// Extension xlsx.
func (ExcelRenderer) Extension() string { return "xlsx" }

// ContentType tipo MIME de OOXML.
func (ExcelRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render arma el libro en memoria.
func (ExcelRenderer) Render(doc ports.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetDocProps(&excelize.DocProperties{Title: doc.Title, Subject: doc.Subtitle}); err != nil {
		return nil, fmt.Errorf("excel: propiedades: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	const first = "Sheet1"
	if len(doc.Tables) == 0 {
		if err := f.SetCellValue(first, "A1", doc.Title); err != nil {
			return nil, fmt.Errorf("excel: %w", err)
		}
	}

	used := map[string]bool{}
	for i, t := range doc.Tables {
		sheet := sheetName(t.Title, i, used)
		if i == 0 {
			if err := f.SetSheetName(first, sheet); err != nil {
				return nil, fmt.Errorf("excel: hoja %q: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("excel: hoja %q: %w", sheet, err)
		}
		if err := writeTable(f, sheet, t, bold); err != nil {
			return nil, fmt.Errorf("excel: hoja %q: %w", sheet, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTable(f *excelize.File, sheet string, t ports.Table, headerStyle int) error {
	for c, h := range t.Headers {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	if len(t.Headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(t.Headers), 1)
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return err
		}
	}
	for r, row := range t.Rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, cellValue(v)); err != nil {
				return err
			}
		}
	}
	return nil
}

// cellValue deja los montos como float para que Excel pueda sumarlos.
func cellValue(v any) any {
	switch c := v.(type) {
	case decimal.Decimal:
		return c.InexactFloat64()
	case string, int:
		return c
	}
	return plain(v)
}

// sheetName nombre válido y único: sin caracteres reservados y con un máximo de 31.
func sheetName(title string, i int, used map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '-'
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		name = fmt.Sprintf("Tabla %d", i+1)
	}
	base := name
	name = truncate(base, maxSheetName)
	for n := 2; used[name]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		name = truncate(base, maxSheetName-len(suffix)) + suffix
	}
	used[name] = true
	return name
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
