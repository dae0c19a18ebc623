package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCipher(t *testing.T) *FieldCipher {
	t.Helper()
	c, err := NewFieldCipher(bytes.Repeat([]byte("k"), 32))
	require.NoError(t, err)
	return c
}

func TestSealOpenRoundTrip(t *testing.T) {
	c := newCipher(t)

	sealed, err := c.Seal("phone", "010-1234-5678")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "1234")

	again, err := c.Seal("phone", "010-1234-5678")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce must differ per call")

	plain, err := c.Open("phone", sealed)
	require.NoError(t, err)
	assert.Equal(t, "010-1234-5678", plain)
}

func TestOpenRejectsOtherField(t *testing.T) {
	c := newCipher(t)
	sealed, err := c.Seal("phone", "010-1234-5678")
	require.NoError(t, err)

	_, err = c.Open("email", sealed)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestOpenMalformed(t *testing.T) {
	c := newCipher(t)
	_, err := c.Open("phone", "!!!")
	assert.Error(t, err)
	_, err = c.Open("phone", "AAAA")
	assert.ErrorIs(t, err, ErrCiphertextTooShort)
}

func TestEmptyValuesPassThrough(t *testing.T) {
	c := newCipher(t)
	s, err := c.Seal("email", "")
	require.NoError(t, err)
	assert.Empty(t, s)
	p, err := c.Open("email", "")
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestNewFieldCipherKeyLength(t *testing.T) {
	_, err := NewFieldCipher([]byte("short"))
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestMasking(t *testing.T) {
	assert.Equal(t, "010-****-5678", MaskPhone("010-1234-5678"))
	assert.Equal(t, "010-****-5678", MaskPhone("01012345678"))
	assert.Equal(t, "****", MaskPhone("1234"))
	assert.Equal(t, "h***@example.com", MaskEmail("hong@example.com"))
	assert.Equal(t, "***", MaskEmail("nope"))
}
