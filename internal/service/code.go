package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
)

const codeDigits = 6

// Bytes at or above this are rejected so every digit is equally likely.
const digitByteLimit = 250

// GenerateCode returns a random 6-digit numeric code such as "042917".
func GenerateCode() (string, error) {
	return generateCode(rand.Reader)
}

func generateCode(r io.Reader) (string, error) {
	code := make([]byte, 0, codeDigits)
	buf := make([]byte, codeDigits)
	for len(code) < codeDigits {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= digitByteLimit {
				continue
			}
			code = append(code, '0'+b%10)
			if len(code) == codeDigits {
				break
			}
		}
	}
	return string(code), nil
}

// HashCode returns the hex SHA-256 of code; only the hash is kept in a session.
func HashCode(code string) string {
	h := sha256.Sum256([]byte(code))
	return hex.EncodeToString(h[:])
}

func CodeEqual(provided, storedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashCode(provided)), []byte(storedHash)) == 1
}
