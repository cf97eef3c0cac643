package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokens() TokenService {
	return TokenService{
		Secret:   []byte("test-secret"),
		Issuer:   "receptari-test",
		Duration: time.Hour,
	}
}

func TestSignAndParse(t *testing.T) {
	ts := testTokens()

	token, exp, err := ts.Sign()
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := ts.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "receptari-test", claims.Issuer)
	assert.Equal(t, "admin", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, _, err := testTokens().Sign()
	require.NoError(t, err)

	other := TokenService{Secret: []byte("other"), Issuer: "x", Duration: time.Hour}
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := testTokens().Parse("not.a.token")
	assert.Error(t, err)
}
