package journey

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// Source is the single random source every stochastic draw in the
// engine goes through: pace variance, event selection, injury rolls,
// crew departure checks. Tests substitute a scripted implementation.
type Source interface {
	Float64() float64
	IntN(n int) int
}

func seededRNG(seed int64) *rand.Rand {
	// Non-cryptographic PRNG is intentional for deterministic simulation behavior.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// NewSource returns a deterministic source for the given seed.
func NewSource(seed int64) Source {
	return seededRNG(seed)
}

// NewSeed generates a high-entropy seed for runs where the caller did
// not supply one.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
