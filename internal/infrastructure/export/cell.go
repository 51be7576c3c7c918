// Package export convierte un ports.Document en archivos descargables: PDF con Maroto,
// Excel con excelize y CSV.
package export

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// plain texto de una celda sin separadores de miles; lo usan CSV y los textos de Excel.
func plain(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case int:
		return strconv.Itoa(c)
	case decimal.Decimal:
		return c.StringFixed(2)
	case *decimal.Decimal:
		if c == nil {
			return ""
		}
		return c.StringFixed(2)
	}
	return fmt.Sprint(v)
}

// widths reparte las 12 columnas de la grilla entre n columnas; el resto va a las primeras.
func widths(n int) []int {
	if n <= 0 {
		return nil
	}
	if n > 12 {
		n = 12
	}
	out := make([]int, n)
	base, extra := 12/n, 12%n
	for i := range out {
		out[i] = base
		if i < extra {
			out[i]++
		}
	}
	return out
}
