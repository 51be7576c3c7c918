package inventory

// PhoneNormalizer normaliza el teléfono de proveedores a E.164 (pkg/phone).
type PhoneNormalizer interface {
	Normalize(raw string) (string, error)
}
