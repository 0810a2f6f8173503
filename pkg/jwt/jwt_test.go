package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "secreto-de-prueba"

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	tok, err := Generate(secret, "u1", "c1", RoleBodeguero, "costeo-fifo", time.Hour)
	require.NoError(t, err)

	claims, err := Parse(secret, "costeo-fifo", tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID())
	assert.Equal(t, "c1", claims.CompanyID)
	assert.Equal(t, RoleBodeguero, claims.Role)
}

func TestParse_Rechazos(t *testing.T) {
	vencido, err := Generate(secret, "u1", "c1", RoleAdmin, "costeo-fifo", -time.Minute)
	require.NoError(t, err)
	_, err = Parse(secret, "costeo-fifo", vencido)
	assert.Error(t, err)

	tok, err := Generate(secret, "u1", "c1", RoleAdmin, "otro", time.Hour)
	require.NoError(t, err)
	_, err = Parse(secret, "costeo-fifo", tok)
	assert.Error(t, err, "emisor distinto")

	_, err = Parse("otro-secreto", "", tok)
	assert.Error(t, err, "firma inválida")

	_, err = Parse(secret, "", "no.es.jwt")
	assert.Error(t, err)
}

func TestGenerate_RequiereActor(t *testing.T) {
	_, err := Generate(secret, "", "c1", RoleAdmin, "", time.Hour)
	assert.Error(t, err)
	_, err = Generate("", "u1", "c1", RoleAdmin, "", time.Hour)
	assert.Error(t, err)
}
