package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ristkey/internal/crypto"
	"ristkey/internal/domain"
)

// memStore keeps the identity in memory, ignoring the passphrase.
type memStore struct {
	id  domain.Identity
	set bool
}

func (m *memStore) SaveIdentity(_ string, id domain.Identity) error {
	m.id, m.set = id, true
	return nil
}

func (m *memStore) LoadIdentity(string) (domain.Identity, error) {
	return m.id, nil
}

const goodPassphrase = "Correct-Horse-42"

func TestGenerateIdentity_SavesAndFingerprints(t *testing.T) {
	st := &memStore{}
	svc := New(st)

	id, fp, err := svc.GenerateIdentity(goodPassphrase)
	require.NoError(t, err)
	require.True(t, st.set)
	assert.Equal(t, id, st.id)
	assert.Equal(t, crypto.Fingerprint(id.Public), fp)

	got, err := svc.FingerprintIdentity(goodPassphrase)
	require.NoError(t, err)
	assert.Equal(t, fp, got)
}

func TestGenerateIdentity_WeakPassphrase(t *testing.T) {
	svc := New(&memStore{})
	for _, p := range []string{"", "short", "alllowercase-1", "NoDigitsHere!!", "NoSymbols1234"} {
		_, _, err := svc.GenerateIdentity(p)
		assert.ErrorIs(t, err, ErrWeakPassphrase, p)
	}
}

func TestLoadIdentity_RejectsMismatchedKey(t *testing.T) {
	st := &memStore{}
	svc := New(st)
	_, _, err := svc.GenerateIdentity(goodPassphrase)
	require.NoError(t, err)

	st.id.Public[0] ^= 0x02
	_, err = svc.LoadIdentity(goodPassphrase)
	assert.ErrorIs(t, err, crypto.ErrIdentityMismatch)
}
