package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

const randomBytes = 8

// Generator creates opaque identifiers, such as the run id of a rescrape.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator returns "<prefix>_<16 hex chars>", or just the hex part
// when the prefix is empty.
type RandomGenerator struct {
	prefix string
}

func NewRandomGenerator(prefix string) *RandomGenerator {
	return &RandomGenerator{prefix: strings.TrimSpace(prefix)}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, randomBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	suffix := hex.EncodeToString(buf)
	if g.prefix == "" {
		return suffix, nil
	}
	return g.prefix + "_" + suffix, nil
}
