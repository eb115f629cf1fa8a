// Package crypto implements the platform's time-boxed auth token scheme:
// AES-128-CBC over "{till}.{password}" with a fresh random IV per token.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const keySize = 16 // AES-128

// CryptoError represents a cipher or key error.
type CryptoError struct {
	Message string
}

func (e *CryptoError) Error() string {
	return e.Message
}

// ErrCrypto checks if an error is a CryptoError.
func ErrCrypto(err error) bool {
	var ce *CryptoError
	return errors.As(err, &ce)
}

// Issue produces the auth token for a password and expiry.
// The secret is the account secret as hex; it must decode to exactly
// 16 bytes. The result is "ivHex.ciphertextHex". Two calls with the same
// inputs never produce the same token: the IV is fresh per call, so tokens
// are unlinkable across issuances.
func Issue(password, secretHex string, till int64) (string, error) {
	key, err := decodeKey(secretHex)
	if err != nil {
		return "", err
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", &CryptoError{Message: fmt.Sprintf("cipher init failed: %v", err)}
	}

	plaintext := pad([]byte(fmt.Sprintf("%d.%s", till, password)))
	ciphertext := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, plaintext)

	return hex.EncodeToString(iv) + "." + hex.EncodeToString(ciphertext), nil
}

// Decode recovers the "{till}.{password}" plaintext from a token. Used by
// tests and the tokendump tool; the platform side does the real decryption.
func Decode(token, secretHex string) (string, error) {
	key, err := decodeKey(secretHex)
	if err != nil {
		return "", err
	}

	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return "", &CryptoError{Message: "malformed token: expected ivHex.ciphertextHex"}
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != aes.BlockSize {
		return "", &CryptoError{Message: "malformed token: invalid IV segment"}
	}

	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", &CryptoError{Message: "malformed token: invalid ciphertext segment"}
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", &CryptoError{Message: fmt.Sprintf("malformed token: ciphertext length %d not a block multiple", len(ciphertext))}
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", &CryptoError{Message: fmt.Sprintf("cipher init failed: %v", err)}
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := unpad(plaintext)
	if err != nil {
		return "", err
	}
	return string(unpadded), nil
}

func decodeKey(secretHex string) ([]byte, error) {
	key, err := hex.DecodeString(secretHex)
	if err != nil {
		return nil, &CryptoError{Message: "invalid secret: not hex-encoded"}
	}
	if len(key) != keySize {
		return nil, &CryptoError{Message: fmt.Sprintf("invalid secret: must be %d bytes, got %d", keySize, len(key))}
	}
	return key, nil
}

// pad applies PKCS#7 padding to a full block multiple.
func pad(b []byte) []byte {
	n := aes.BlockSize - len(b)%aes.BlockSize
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return nil, &CryptoError{Message: "decryption failed: empty plaintext"}
	}
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, &CryptoError{Message: "decryption failed: invalid padding"}
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, &CryptoError{Message: "decryption failed: invalid padding"}
		}
	}
	return b[:len(b)-n], nil
}
