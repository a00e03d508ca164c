package vault

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSealer(t *testing.T) *Sealer {
	t.Helper()
	key, err := GenerateKey()
	require.NoError(t, err)
	s, err := New(key)
	require.NoError(t, err)
	return s
}

func TestSealOpen(t *testing.T) {
	s := newSealer(t)

	sealed, err := s.Seal([]byte("4242424242424242"), []byte("user:7"))
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "4242424242424242")

	plain, err := s.Open(sealed, []byte("user:7"))
	require.NoError(t, err)
	assert.Equal(t, "4242424242424242", string(plain))
}

func TestOpen_WrongAdditionalData(t *testing.T) {
	s := newSealer(t)
	sealed, err := s.Seal([]byte("4242424242424242"), []byte("user:7"))
	require.NoError(t, err)

	_, err = s.Open(sealed, []byte("user:8"))
	assert.ErrorIs(t, err, ErrOpen)
}

func TestOpen_Tampered(t *testing.T) {
	s := newSealer(t)
	sealed, err := s.Seal([]byte("4242424242424242"), nil)
	require.NoError(t, err)

	sealed[len(sealed)-1] ^= 0xff
	_, err = s.Open(sealed, nil)
	assert.ErrorIs(t, err, ErrOpen)

	_, err = s.Open([]byte("short"), nil)
	assert.ErrorIs(t, err, ErrOpen)
}

func TestOpen_OtherKey(t *testing.T) {
	sealed, err := newSealer(t).Seal([]byte("secret"), nil)
	require.NoError(t, err)

	_, err = newSealer(t).Open(sealed, nil)
	assert.ErrorIs(t, err, ErrOpen)
}

func TestNewFromBase64(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)

	_, err = NewFromBase64(base64.StdEncoding.EncodeToString(key))
	assert.NoError(t, err)

	_, err = NewFromBase64(base64.StdEncoding.EncodeToString(key[:16]))
	assert.Error(t, err)

	_, err = NewFromBase64("not base64!")
	assert.Error(t, err)
}
