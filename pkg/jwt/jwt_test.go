package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/pkg/jwt"
)

func TestGenerateParse_ConservaUsuarioYRol(t *testing.T) {
	token, err := jwt.Generate("secreto", "u-1", "technician", "taller-api", 5)
	require.NoError(t, err)

	userID, role, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "technician", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secreto", "u-1", "accountant", "taller-api", 5)
	require.NoError(t, err)
	_, _, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate("secreto", "u-1", "accountant", "taller-api", -1)
	require.NoError(t, err)
	_, _, err = jwt.Parse("secreto", token)
	assert.Error(t, err)
}

func TestGenerate_SinSecreto(t *testing.T) {
	_, err := jwt.Generate("", "u-1", "accountant", "taller-api", 5)
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)
}
