package export

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/taller-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

var _ ports.Renderer = (*PDFRenderer)(nil)

// PDFRenderer implementa ports.Renderer usando Maroto v2. Página A4 vertical, una tabla
// tras otra con cabecera en el color primario.
type PDFRenderer struct {
	printer *message.Printer
}

// NewPDFRenderer construye el renderer. tag decide los separadores de miles y decimales.
func NewPDFRenderer(tag language.Tag) *PDFRenderer {
	return &PDFRenderer{printer: message.NewPrinter(tag)}
}

// Extension pdf.
func (*PDFRenderer) Extension() string { return "pdf" }

// ContentType application/pdf.
func (*PDFRenderer) ContentType() string { return "application/pdf" }

// Render genera el PDF y devuelve sus bytes.
func (g *PDFRenderer) Render(doc ports.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, t := range doc.Tables {
		m.AddRows(row.New(4))
		m.AddRows(row.New(7).Add(col.New(12).Add(
			text.New(t.Title, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 1}),
		)))
		m.AddRows(g.headerRow(t.Headers))
		if len(t.Rows) == 0 {
			m.AddRows(row.New(6).Add(col.New(12).Add(
				text.New("Sin datos", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
			)))
			continue
		}
		for i, r := range t.Rows {
			m.AddRows(g.dataRow(r, len(t.Headers), i%2 == 1))
		}
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRow(doc ports.Document) core.Row {
	return row.New(16).Add(col.New(12).Add(
		text.New(doc.Title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		text.New(doc.Subtitle, props.Text{Size: 9, Color: colorGray, Top: 9}),
	))
}

func (g *PDFRenderer) headerRow(headers []string) core.Row {
	sizes := widths(len(headers))
	cols := make([]core.Col, 0, len(sizes))
	for i, size := range sizes {
		cols = append(cols, col.New(size).Add(text.New(headers[i], props.Text{
			Style: fontstyle.Bold, Size: 8, Align: alignFor(i),
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (g *PDFRenderer) dataRow(values []any, n int, striped bool) core.Row {
	sizes := widths(n)
	cols := make([]core.Col, 0, len(sizes))
	for i, size := range sizes {
		var s string
		if i < len(values) {
			s = g.format(values[i])
		}
		cols = append(cols, col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: alignFor(i), Top: 1, Left: 1, Right: 1,
		})))
	}
	r := row.New(6).Add(cols...)
	if striped {
		r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

// ── helpers ───────────────────────────────────────────────────────────────────

// format números con separadores del idioma configurado; el resto como texto plano.
func (g *PDFRenderer) format(v any) string {
	switch c := v.(type) {
	case decimal.Decimal:
		return g.printer.Sprintf("%.2f", c.InexactFloat64())
	case int:
		return g.printer.Sprintf("%d", c)
	}
	return plain(v)
}

// alignFor primera columna a la izquierda (etiqueta), el resto a la derecha.
func alignFor(i int) align.Type {
	if i == 0 {
		return align.Left
	}
	return align.Right
}
