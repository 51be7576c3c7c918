package export_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"

	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/infrastructure/export"
)

func sampleDocument() ports.Document {
	return ports.Document{
		Title:    "Sales Report - 2024-06-15 08:00",
		Subtitle: "2024-05-16 a 2024-06-15",
		Tables: []ports.Table{
			{
				Title:   "Ventas por día",
				Headers: []string{"Fecha", "Total", "Pagos"},
				Rows: [][]any{
					{"2024-06-01", decimal.RequireFromString("1234.5"), 3},
					{"2024-06-02", decimal.RequireFromString("80"), 1},
				},
			},
			{
				Title:   "Medios de pago",
				Headers: []string{"Medio", "Total"},
				Rows:    [][]any{{"cash", decimal.RequireFromString("1314.5")}},
			},
		},
	}
}

func TestCSV_BloquesPorTabla(t *testing.T) {
	r := export.NewCSVRenderer()
	out, err := r.Render(sampleDocument())
	require.NoError(t, err)

	want := "Ventas por día\n" +
		"Fecha,Total,Pagos\n" +
		"2024-06-01,1234.50,3\n" +
		"2024-06-02,80.00,1\n" +
		"\n" +
		"Medios de pago\n" +
		"Medio,Total\n" +
		"cash,1314.50\n"
	assert.Equal(t, want, string(out))
	assert.Equal(t, "csv", r.Extension())
}

func TestCSV_EscapaComas(t *testing.T) {
	doc := ports.Document{Tables: []ports.Table{{
		Headers: []string{"Cliente"},
		Rows:    [][]any{{"Soto, Ana"}},
	}}}
	out, err := export.NewCSVRenderer().Render(doc)
	require.NoError(t, err)
	assert.Equal(t, "Cliente\n\"Soto, Ana\"\n", string(out))
}

func TestExcel_UnaHojaPorTabla(t *testing.T) {
	r := export.NewExcelRenderer()
	out, err := r.Render(sampleDocument())
	require.NoError(t, err)
	assert.Equal(t, "xlsx", r.Extension())

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Ventas por día", "Medios de pago"}, f.GetSheetList())

	v, err := f.GetCellValue("Ventas por día", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Total", v)

	v, err = f.GetCellValue("Ventas por día", "A3")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-02", v)

	v, err = f.GetCellValue("Ventas por día", "C2")
	require.NoError(t, err)
	assert.Equal(t, "3", v)
}

func TestExcel_NombresDeHojaRepetidos(t *testing.T) {
	doc := ports.Document{Tables: []ports.Table{
		{Title: "Stock", Headers: []string{"A"}},
		{Title: "Stock", Headers: []string{"A"}},
		{Title: "a/b", Headers: []string{"A"}},
	}}
	out, err := export.NewExcelRenderer().Render(doc)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Stock", "Stock (2)", "a-b"}, f.GetSheetList())
}

func TestPDF_GeneraDocumento(t *testing.T) {
	r := export.NewPDFRenderer(language.Spanish)
	out, err := r.Render(sampleDocument())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, "application/pdf", r.ContentType())
}

func TestPDF_TablaVacia(t *testing.T) {
	doc := ports.Document{Title: "Inventory Report", Tables: []ports.Table{{Title: "Stock bajo", Headers: []string{"SKU", "Repuesto"}}}}
	out, err := export.NewPDFRenderer(language.English).Render(doc)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
