package matrix

import (
	"math/rand"
	"strconv"

	"github.com/vk/chipflow/internal/faults"
)

// ParseSeed parses an unsigned 32-bit seed from its string form.
func ParseSeed(s string) (*uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil, faults.Configurationf("invalid seed %q: must be an unsigned 32-bit integer", s)
	}
	seed := uint32(v)
	return &seed, nil
}

// RandomSeed draws a seed uniformly from the full 32-bit range.
func RandomSeed() *uint32 {
	seed := rand.Uint32()
	return &seed
}
