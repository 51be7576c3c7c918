// Package phone normaliza teléfonos a E.164 con libphonenumber.
package phone

import (
	"fmt"
	"strings"

	"github.com/ttacon/libphonenumber"

	"github.com/jhoicas/taller-api/internal/domain"
)

// DefaultRegion región usada cuando el número no trae prefijo internacional.
const DefaultRegion = "US"

// Normalizer convierte números locales o internacionales a E.164.
type Normalizer struct {
	region string
}

// NewNormalizer construye el normalizador para la región dada (ISO 3166-1 alfa-2).
func NewNormalizer(region string) *Normalizer {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = DefaultRegion
	}
	return &Normalizer{region: region}
}

// Normalize devuelve el número en E.164. Cadena vacía se devuelve tal cual.
func (n *Normalizer) Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	num, err := libphonenumber.Parse(raw, n.region)
	if err != nil {
		return "", fmt.Errorf("phone %q: %w", raw, domain.NewValidationError("phone", "número no reconocido"))
	}
	if !libphonenumber.IsValidNumber(num) {
		return "", domain.NewValidationError("phone", "número inválido para la región")
	}
	return libphonenumber.Format(num, libphonenumber.E164), nil
}
