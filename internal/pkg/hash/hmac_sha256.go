package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// Hash produces and checks keyed digests.
type Hash interface {
	Hash(str string) ([]byte, error)
	Verify(hashed, str string) bool
}

// HMACSHA256 implements Hash with a hex-encoded HMAC-SHA256.
type HMACSHA256 struct {
	secret []byte
}

// NewHMACSHA256 creates a new hasher with a secret.
func NewHMACSHA256(secret string) *HMACSHA256 {
	return &HMACSHA256{secret: []byte(secret)}
}

// Hash returns the hex-encoded digest of str.
func (s *HMACSHA256) Hash(str string) ([]byte, error) {
	return s.gen(str), nil
}

// Verify reports whether hashed is the digest of str, in constant time.
func (s *HMACSHA256) Verify(hashed, str string) bool {
	return subtle.ConstantTimeCompare([]byte(hashed), s.gen(str)) == 1
}

// Key digests parts joined by a NUL separator, so ("ab","c") and ("a","bc") differ.
func (s *HMACSHA256) Key(parts ...string) string {
	return string(s.gen(strings.Join(parts, "\x00")))
}

func (s *HMACSHA256) gen(str string) []byte {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(str))
	sum := h.Sum(nil)
	result := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(result, sum)
	return result
}
