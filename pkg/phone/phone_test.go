package phone_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/pkg/phone"
)

func TestNormalize_NumeroLocalAE164(t *testing.T) {
	n := phone.NewNormalizer("US")
	got, err := n.Normalize("(415) 555-2671")
	require.NoError(t, err)
	assert.Equal(t, "+14155552671", got)
}

func TestNormalize_NumeroInternacionalIgnoraRegion(t *testing.T) {
	n := phone.NewNormalizer("CO")
	got, err := n.Normalize("+1 415 555 2671")
	require.NoError(t, err)
	assert.Equal(t, "+14155552671", got)
}

func TestNormalize_VacioSinError(t *testing.T) {
	got, err := phone.NewNormalizer("").Normalize("  ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNormalize_TextoNoNumerico(t *testing.T) {
	_, err := phone.NewNormalizer("US").Normalize("llamar luego")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
