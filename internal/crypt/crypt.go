// Package crypt implements the symmetric blob format shared with the
// build farm: AES-CBC under a SHA-1-derived key, zero padding, and a
// "<len>.<base64 iv>.<base64 ciphertext>" ASCII framing. The format
// predates this service and cannot change without migrating every peer.
package crypt

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// deriveKey stretches the shared secret the way the farm peers do.
// SHA-1 is part of the wire contract here, not an integrity choice.
func deriveKey(key string) []byte {
	sum := sha1.Sum([]byte(key))
	return sum[:16]
}

// Encrypt seals data under the shared key and returns the framed blob.
// The recorded length lets Decrypt strip the zero padding.
func Encrypt(data []byte, key string) (string, error) {
	block, err := aes.NewCipher(deriveKey(key))
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("rand iv: %w", err)
	}

	padded := data
	if rem := len(data) % aes.BlockSize; rem != 0 {
		padded = make([]byte, len(data)+aes.BlockSize-rem)
		copy(padded, data)
	}
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return strconv.Itoa(len(data)) + "." +
		base64.StdEncoding.EncodeToString(iv) + "." +
		base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt opens a framed blob produced by Encrypt or by a farm peer and
// returns the plaintext truncated to the recorded length.
func Decrypt(blob []byte, key string) (string, error) {
	parts := bytes.SplitN(blob, []byte("."), 3)
	if len(parts) != 3 {
		return "", errors.New("malformed blob: want <len>.<iv>.<ciphertext>")
	}

	length, err := strconv.Atoi(string(parts[0]))
	if err != nil {
		return "", fmt.Errorf("parse plaintext length: %w", err)
	}
	iv, err := base64.StdEncoding.DecodeString(string(parts[1]))
	if err != nil {
		return "", fmt.Errorf("base64 decode iv: %w", err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(string(parts[2]))
	if err != nil {
		return "", fmt.Errorf("base64 decode ciphertext: %w", err)
	}

	if len(iv) != aes.BlockSize {
		return "", fmt.Errorf("iv is %d bytes, want %d", len(iv), aes.BlockSize)
	}
	if len(ciphertext)%aes.BlockSize != 0 {
		return "", fmt.Errorf("ciphertext length %d is not a block multiple", len(ciphertext))
	}
	if length < 0 || length > len(ciphertext) {
		return "", fmt.Errorf("plaintext length %d out of range", length)
	}

	block, err := aes.NewCipher(deriveKey(key))
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	return string(plaintext[:length]), nil
}
