package security

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateBase64SecretLength(t *testing.T) {
	secret, err := GenerateBase64Secret(32)
	require.NoError(t, err)
	// 32 bytes in unpadded base64.
	require.Len(t, secret, 43)
}

func TestGenerateBase64SecretUnique(t *testing.T) {
	a, err := GenerateBase64Secret(32)
	require.NoError(t, err)
	b, err := GenerateBase64Secret(32)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestGenerateBase64SecretRejectsShortLength(t *testing.T) {
	_, err := GenerateBase64Secret(8)
	require.Error(t, err)
}

func TestHashArgon2RoundTrip(t *testing.T) {
	hash, err := HashArgon2("correct horse battery staple")
	require.NoError(t, err)
	require.Contains(t, hash, "$argon2id$")

	require.True(t, VerifyArgon2("correct horse battery staple", hash))
	require.False(t, VerifyArgon2("correct horse battery stapl", hash))
}

func TestHashArgon2SaltsDiffer(t *testing.T) {
	a, err := HashArgon2("password")
	require.NoError(t, err)
	b, err := HashArgon2("password")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.True(t, VerifyArgon2("password", a))
	require.True(t, VerifyArgon2("password", b))
}

func TestVerifyArgon2MalformedDigest(t *testing.T) {
	require.False(t, VerifyArgon2("password", ""))
	require.False(t, VerifyArgon2("password", "$bcrypt$whatever"))
	require.False(t, VerifyArgon2("password", "$argon2id$v=19$m=65536,t=1,p=4$notbase64!$zzz"))
}
