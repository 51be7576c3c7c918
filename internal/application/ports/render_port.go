package ports

// Table datos tabulares listos para renderizar en un archivo. Las celdas son string, int
// o decimal.Decimal; cada renderer decide cómo formatear los números.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]any
}

// Document conjunto de tablas que forman un reporte.
type Document struct {
	Title    string
	Subtitle string
	Tables   []Table
}

// Renderer convierte un documento al formato de salida (pdf, excel, csv).
type Renderer interface {
	Render(doc Document) ([]byte, error)
	// Extension extensión del archivo sin punto.
	Extension() string
	// ContentType tipo MIME para la descarga.
	ContentType() string
}
