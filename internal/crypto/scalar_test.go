package crypto_test

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ristkey/internal/crypto"
	"ristkey/internal/crypto/keycodec"
	"ristkey/internal/domain"
)

func TestGenerateIdentity_DerivesPublicKey(t *testing.T) {
	id, err := crypto.GenerateIdentity(rand.Reader)
	require.NoError(t, err)
	require.NoError(t, crypto.VerifyIdentity(id))

	again, err := crypto.DeriveIdentity(id.Private)
	require.NoError(t, err)
	assert.Equal(t, id, again)
}

func TestGenerateIdentity_ShortReader(t *testing.T) {
	_, err := crypto.GenerateIdentity(bytes.NewReader(make([]byte, 10)))
	assert.Error(t, err)
}

func TestVerifyIdentity_Mismatch(t *testing.T) {
	id, err := crypto.GenerateIdentity(rand.Reader)
	require.NoError(t, err)

	other, err := crypto.GenerateIdentity(rand.Reader)
	require.NoError(t, err)

	id.Public = other.Public
	assert.ErrorIs(t, crypto.VerifyIdentity(id), crypto.ErrIdentityMismatch)
}

func TestDeriveIdentity_ZeroScalar(t *testing.T) {
	id, err := crypto.DeriveIdentity(domain.PrivateScalar{})
	require.NoError(t, err)
	assert.True(t, id.Public.IsZero())
	assert.Equal(t, keycodec.PublicKey{}, id.Public)
}

func TestFingerprint(t *testing.T) {
	a, err := crypto.GenerateIdentity(rand.Reader)
	require.NoError(t, err)
	b, err := crypto.GenerateIdentity(rand.Reader)
	require.NoError(t, err)

	fp := crypto.Fingerprint(a.Public)
	assert.Len(t, fp.String(), 20)
	assert.Equal(t, fp, crypto.Fingerprint(a.Public))
	assert.NotEqual(t, fp, crypto.Fingerprint(b.Public))
}
