// Package rng derives independent deterministic random streams from a
// single root seed. Every component that consumes randomness gets its own
// stream, so parallel execution cannot change what any component draws.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Fixed stream identifiers. Catalog construction uses the low streams;
// generation loop iteration i uses StreamSessionBase+i. The base leaves
// room so iteration streams can never collide with catalog streams.
const (
	StreamCategories uint64 = 1
	StreamProducts   uint64 = 2
	StreamUsers      uint64 = 3

	StreamSessionBase uint64 = 1 << 32
)

// New returns the PCG stream selected by (seed, stream).
func New(seed int64, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), stream))
}

// NewRootSeed generates a root seed from crypto/rand, for runs where the
// caller did not pin one. The result is always positive so it passes config
// validation. The caller should log it so the run can be reproduced.
func NewRootSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("rng: read random seed: %w", err)
	}
	seed := int64(binary.LittleEndian.Uint64(b[:]) &^ (1 << 63))
	if seed == 0 {
		seed = 1
	}
	return seed, nil
}

// Reader adapts a rand stream to io.Reader so id generators that take an
// entropy source can draw from a deterministic stream.
type Reader struct {
	rng *rand.Rand
}

// NewReader wraps the given stream.
func NewReader(r *rand.Rand) *Reader {
	return &Reader{rng: r}
}

// Read fills p with bytes from the underlying stream. It never fails.
func (r *Reader) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		var chunk [8]byte
		binary.LittleEndian.PutUint64(chunk[:], r.rng.Uint64())
		copy(p[i:], chunk[:])
	}
	return len(p), nil
}
