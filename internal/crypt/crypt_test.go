package crypt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "short", data: "hello"},
		{name: "exact block", data: "0123456789abcdef"},
		{name: "multi block", data: "a somewhat longer secret spanning several AES blocks"},
		{name: "empty", data: ""},
		{name: "trailing zero byte", data: "ends in zero\x00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := Encrypt([]byte(tt.data), "shared secret")
			require.NoError(t, err)

			plain, err := Decrypt([]byte(blob), "shared secret")
			require.NoError(t, err)
			assert.Equal(t, tt.data, plain)
		})
	}
}

func TestEncrypt_BlobFraming(t *testing.T) {
	blob, err := Encrypt([]byte("buildbot auth token"), "test key")
	require.NoError(t, err)

	parts := strings.SplitN(blob, ".", 3)
	require.Len(t, parts, 3)
	assert.Equal(t, "19", parts[0])
	for _, b := range []byte(blob) {
		assert.Less(t, b, byte(0x80))
	}
}

func TestEncrypt_RandomIV(t *testing.T) {
	first, err := Encrypt([]byte("same input"), "test key")
	require.NoError(t, err)
	second, err := Encrypt([]byte("same input"), "test key")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

// TestDecrypt_PeerBlob decrypts a blob produced by the farm's Python
// peer (sha1("test key")[:16] key, fixed IV) to pin cross-implementation
// compatibility.
func TestDecrypt_PeerBlob(t *testing.T) {
	blob := "19.AAECAwQFBgcICQoLDA0ODw==.0P4RQCUqJxuRkRSsh0fk3vJR510Dmlt7Z9FzMHVXWl8="

	plain, err := Decrypt([]byte(blob), "test key")

	require.NoError(t, err)
	assert.Equal(t, "buildbot auth token", plain)
}

func TestDecrypt_WrongKey(t *testing.T) {
	blob, err := Encrypt([]byte("buildbot auth token"), "test key")
	require.NoError(t, err)

	plain, err := Decrypt([]byte(blob), "other key")

	require.NoError(t, err)
	assert.NotEqual(t, "buildbot auth token", plain)
}

func TestDecrypt_MalformedBlobs(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{name: "no separators", blob: "garbage"},
		{name: "missing ciphertext part", blob: "5.AAECAwQFBgcICQoLDA0ODw=="},
		{name: "length not a number", blob: "five.AAECAwQFBgcICQoLDA0ODw==.AAAAAAAAAAAAAAAAAAAAAA=="},
		{name: "bad iv base64", blob: "5.!!!.AAAAAAAAAAAAAAAAAAAAAA=="},
		{name: "bad ciphertext base64", blob: "5.AAECAwQFBgcICQoLDA0ODw==.!!!"},
		{name: "short iv", blob: "5.AAECAw==.AAAAAAAAAAAAAAAAAAAAAA=="},
		{name: "ragged ciphertext", blob: "5.AAECAwQFBgcICQoLDA0ODw==.AAAA"},
		{name: "length beyond ciphertext", blob: "99.AAECAwQFBgcICQoLDA0ODw==.AAAAAAAAAAAAAAAAAAAAAA=="},
		{name: "negative length", blob: "-1.AAECAwQFBgcICQoLDA0ODw==.AAAAAAAAAAAAAAAAAAAAAA=="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decrypt([]byte(tt.blob), "test key")
			assert.Error(t, err)
		})
	}
}
