package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SelectsVariantByType(t *testing.T) {
	s, err := Parse("api_token", map[string]interface{}{"token": "tok-123"})
	require.NoError(t, err)
	assert.Equal(t, "tok-123", s.Value())

	s, err = Parse("basic_auth", map[string]interface{}{"username": "svc", "password": "pw"})
	require.NoError(t, err)
	assert.Equal(t, "pw", s.Value())

	s, err = Parse("ssh_key", map[string]interface{}{"private_key": "-----BEGIN KEY-----"})
	require.NoError(t, err)
	assert.Equal(t, "-----BEGIN KEY-----", s.Value())
}

func TestParse_RejectsMissingSubFields(t *testing.T) {
	_, err := Parse("api_token", map[string]interface{}{})
	assert.Error(t, err)

	_, err = Parse("basic_auth", map[string]interface{}{"username": "svc"})
	assert.Error(t, err)
}

func TestParse_RejectsUnknownType(t *testing.T) {
	_, err := Parse("carrier_pigeon", map[string]interface{}{"token": "x"})
	assert.Error(t, err)
}

func TestEncryptor_RoundTrip(t *testing.T) {
	enc, err := NewEncryptor("unit-test-key")
	require.NoError(t, err)

	original := BearerToken{Token: "bearer-abc"}
	ciphertext, err := enc.Encrypt(original)
	require.NoError(t, err)
	assert.NotContains(t, string(ciphertext), "bearer-abc")

	decrypted, err := enc.Decrypt("bearer_token", ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "bearer-abc", decrypted.Value())
}

func TestEncryptor_WrongKeyFails(t *testing.T) {
	enc1, err := NewEncryptor("key-one")
	require.NoError(t, err)
	enc2, err := NewEncryptor("key-two")
	require.NoError(t, err)

	ciphertext, err := enc1.Encrypt(ApiToken{Token: "tok"})
	require.NoError(t, err)

	_, err = enc2.Decrypt("api_token", ciphertext)
	assert.Error(t, err)
}

func TestEncryptor_RequiresKey(t *testing.T) {
	_, err := NewEncryptor("")
	assert.Error(t, err)
}
