package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator issues random (v4) UUIDs for user ids and request ids.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return v.String(), nil
}

// TokenGenerator issues hex-encoded secrets of Size random bytes.
type TokenGenerator struct {
	Size int
}

func NewTokenGenerator(size int) *TokenGenerator {
	if size < 16 {
		size = 32
	}
	return &TokenGenerator{Size: size}
}

func (g *TokenGenerator) NewID() (string, error) {
	buf := make([]byte, g.Size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
