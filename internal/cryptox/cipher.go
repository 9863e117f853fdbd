// Package cryptox implements the symmetric cipher used to protect section
// story content at rest. Content is encrypted with AES-256-CBC under a fixed
// key and IV supplied by configuration, PKCS#7-padded, and stored hex-encoded.
//
// The static key/IV pair means identical plaintext always produces identical
// ciphertext. That property is pinned by tests; a per-record IV scheme would
// be a drop-in replacement behind this type without touching callers.
package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"fmt"

	"github.com/fablehq/fable-server/internal/common"
)

const (
	// KeySize is the required key length in bytes (AES-256).
	KeySize = 32
	// IVSize is the required initialization vector length in bytes.
	IVSize = aes.BlockSize
)

// Cipher encrypts and decrypts UTF-8 text with a fixed AES-256 key and IV.
// It is stateless after construction and safe for concurrent use.
type Cipher struct {
	block cipher.Block
	iv    []byte
}

// New validates the key material and returns a ready Cipher. The key must be
// exactly 32 bytes and the IV exactly 16 bytes; anything else fails with
// common.ErrConfiguration.
func New(key, iv string) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key must be exactly %d bytes, got %d", common.ErrConfiguration, KeySize, len(key))
	}
	if len(iv) != IVSize {
		return nil, fmt.Errorf("%w: iv must be exactly %d bytes, got %d", common.ErrConfiguration, IVSize, len(iv))
	}

	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrConfiguration, err)
	}

	return &Cipher{block: block, iv: []byte(iv)}, nil
}

// Encrypt encrypts arbitrary UTF-8 text, including the empty string, and
// returns the hex-encoded ciphertext.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(c.block, c.iv).CryptBlocks(out, padded)
	return hex.EncodeToString(out), nil
}

// Decrypt reverses Encrypt. Malformed hex, a length that is not a positive
// multiple of the block size, or bad padding all fail with common.ErrDecryption.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	raw, err := hex.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: invalid hex: %v", common.ErrDecryption, err)
	}
	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: ciphertext length %d is not a positive multiple of %d", common.ErrDecryption, len(raw), aes.BlockSize)
	}

	out := make([]byte, len(raw))
	cipher.NewCBCDecrypter(c.block, c.iv).CryptBlocks(out, raw)

	unpadded, err := pkcs7Unpad(out, aes.BlockSize)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}
	return string(unpadded), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(data))
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, fmt.Errorf("invalid padding byte %d", n)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("inconsistent padding")
		}
	}
	return data[:len(data)-n], nil
}
