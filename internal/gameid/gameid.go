// Package gameid generates table identifiers: a UUIDv7 encoded as a
// 26-character lower-case Crockford base32 string. IDs sort by creation time.
package gameid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the size of an encoded ID
const Length = 26

// Generator creates IDs, optionally drawing randomness from a fixed reader
type Generator struct {
	rand io.Reader
}

// NewGenerator creates a generator. A nil reader uses crypto/rand.
func NewGenerator(rand io.Reader) *Generator {
	return &Generator{rand: rand}
}

// Generate creates a new ID using crypto/rand
func Generate() string {
	return Encode(uuid.Must(uuid.NewV7()))
}

// Generate creates a new ID using the generator's randomness
func (g *Generator) Generate() (string, error) {
	var (
		u   uuid.UUID
		err error
	)
	if g.rand != nil {
		u, err = uuid.NewV7FromReader(g.rand)
	} else {
		u, err = uuid.NewV7()
	}
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return Encode(u), nil
}

// Encode renders a UUID as 26 base32 characters. The 128 bits are padded
// with two leading zero bits, so the first character is always 0-7.
func Encode(u uuid.UUID) string {
	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		var v byte
		for j := 0; j < 5; j++ {
			v = v<<1 | bit(u, i*5+j-2)
		}
		b.WriteByte(alphabet[v])
	}
	return b.String()
}

func bit(u uuid.UUID, k int) byte {
	if k < 0 {
		return 0
	}
	return (u[k/8] >> (7 - k%8)) & 1
}

// Parse decodes an ID back into its UUID
func Parse(id string) (uuid.UUID, error) {
	var u uuid.UUID
	if len(id) != Length {
		return u, fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return u, fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}

	for i := 0; i < Length; i++ {
		v := strings.IndexByte(alphabet, id[i])
		if v < 0 {
			return uuid.UUID{}, fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
		for j := 0; j < 5; j++ {
			k := i*5 + j - 2
			if k < 0 || (v>>(4-j))&1 == 0 {
				continue
			}
			u[k/8] |= 1 << (7 - k%8)
		}
	}
	return u, nil
}

// Validate checks if a game ID is valid (26 characters, valid base32)
func Validate(id string) error {
	_, err := Parse(id)
	return err
}
