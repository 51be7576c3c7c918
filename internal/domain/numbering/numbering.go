// Package numbering genera los identificadores de negocio secuenciales
// (facturas, pagos, órdenes) con formato {PREFIJO}{AAAA}{MM}{NNNN}.
//
// El alcance de unicidad es prefijo + año + mes. El siguiente número se obtiene del
// identificador existente que ordena más alto dentro del alcance: se leen sus 4 últimos
// caracteres, se suma 1 y se rellena con ceros. Con más de 9999 números en un mes el sufijo
// pasa a 5 dígitos y el orden lexicográfico deja de coincidir con el numérico; el siguiente
// cálculo repite un número y la restricción única de la base de datos lo rechaza.
package numbering

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/taller-api/internal/domain"
)

// Prefix identifica el tipo de documento.
type Prefix string

// Prefijos persistidos; deben coincidir carácter a carácter con los datos existentes.
const (
	Invoice         Prefix = "INV"
	Payment         Prefix = "PAY"
	SupplierPayment Prefix = "SPAY"
	Expense         Prefix = "EXP"
	PurchaseOrder   Prefix = "PO"
	JobOrder        Prefix = "JO"
)

// SequenceWidth dígitos del consecutivo.
const SequenceWidth = 4

// Prefixes todos los prefijos conocidos.
var Prefixes = []Prefix{Invoice, Payment, SupplierPayment, Expense, PurchaseOrder, JobOrder}

// Scope devuelve el prefijo de alcance {PREFIJO}{AAAA}{MM} para la fecha dada.
func Scope(p Prefix, at time.Time) string {
	return fmt.Sprintf("%s%04d%02d", p, at.Year(), int(at.Month()))
}

// Next calcula el identificador siguiente. last es el identificador más alto existente
// dentro del alcance (cadena vacía si no hay ninguno); en ese caso se empieza en 0001.
func Next(p Prefix, at time.Time, last string) (string, error) {
	seq := 1
	if last != "" {
		if len(last) < SequenceWidth {
			return "", fmt.Errorf("numbering: identificador %q demasiado corto: %w", last, domain.ErrConflict)
		}
		n, err := strconv.Atoi(last[len(last)-SequenceWidth:])
		if err != nil {
			return "", fmt.Errorf("numbering: sufijo no numérico en %q: %w", last, domain.ErrConflict)
		}
		seq = n + 1
	}
	return Format(p, at, seq), nil
}

// Format arma el identificador para un consecutivo concreto.
func Format(p Prefix, at time.Time, seq int) string {
	return fmt.Sprintf("%s%0*d", Scope(p, at), SequenceWidth, seq)
}
