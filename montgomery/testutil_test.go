package montgomery

import (
	"encoding/binary"
	"math/rand"

	"golang.org/x/crypto/blake2b"
)

// seededRand derives a deterministic *rand.Rand from a sub-test name by
// hashing it with blake2b. This keeps property tests reproducible: re-running
// `-run` on a single
// sub-test name always replays the same sequence.
func seededRand(name string) *rand.Rand {
	sum := blake2b.Sum256([]byte(name))
	seed := int64(binary.LittleEndian.Uint64(sum[:8]))
	return rand.New(rand.NewSource(seed))
}
