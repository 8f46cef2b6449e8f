// Package identifier generates the canonical note identifiers used as
// filename stems: lowercase 8-4-4-4-12 dashed hex (UUID shape).
package identifier

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Pattern matches a full canonical identifier, case-insensitive.
var Pattern = regexp.MustCompile(`^(?i)[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// IsCanonical reports whether s is a canonical identifier.
// Matching is case-insensitive; generation always emits lowercase.
func IsCanonical(s string) bool {
	return Pattern.MatchString(s)
}

// Generate returns a fresh canonical identifier.
//
// It prefers the crypto-backed UUID v4 primitive. If the strong source is
// unavailable it falls back to a seeded pseudo-random synthesis with the
// same version/variant bits. The fallback is deliberate: some target
// environments lack a usable entropy source and the identifier only needs
// to be unique within one vault in practice.
func Generate() string {
	u, err := uuid.NewRandom()
	if err != nil {
		return generateFallback()
	}
	return u.String()
}

var (
	fallbackOnce sync.Once
	fallbackRand *rand.Rand
	fallbackMu   sync.Mutex
)

func generateFallback() string {
	fallbackOnce.Do(func() {
		now := uint64(time.Now().UnixNano())
		fallbackRand = rand.New(rand.NewPCG(now, now>>32|1))
	})

	fallbackMu.Lock()
	defer fallbackMu.Unlock()

	var b [16]byte
	hi, lo := fallbackRand.Uint64(), fallbackRand.Uint64()
	for i := 0; i < 8; i++ {
		b[i] = byte(hi >> (8 * i))
		b[8+i] = byte(lo >> (8 * i))
	}
	b[6] = (b[6] & 0x0f) | 0x40 // version 4
	b[8] = (b[8] & 0x3f) | 0x80 // variant 10

	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}
