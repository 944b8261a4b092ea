package jwt_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/epi-control/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "usr-1", "maria", "tecnico", "epi-control-test", 60)
	require.NoError(t, err)

	id, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, pkgjwt.Identity{UserID: "usr-1", Username: "maria", Role: "tecnico"}, id)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "usr-1", "maria", "admin", "epi-control-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_SecretIncorreto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "usr-1", "maria", "admin", "epi-control-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("outro-secret", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVazio(t *testing.T) {
	_, err := pkgjwt.Generate("", "usr-1", "maria", "admin", "x", 60)
	assert.Error(t, err)
}

func TestParse_RejeitaOutroAlgoritmo(t *testing.T) {
	claims := pkgjwt.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "usr-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Username: "maria",
		Role:     "admin",
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_ExigeExpiracao(t *testing.T) {
	claims := pkgjwt.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "usr-1"}, Role: "admin"}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}
