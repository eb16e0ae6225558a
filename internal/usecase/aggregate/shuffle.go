package aggregate

import (
	"math/rand"

	"research-radar/internal/domain/entity"
)

// Shuffle returns a uniformly random permutation of the headlines,
// leaving the input slice untouched. The shuffle exists purely for
// presentation variety across repeated requests; no ordering may be
// read into the result.
func Shuffle(headlines []entity.Headline) []entity.Headline {
	out := make([]entity.Headline, len(headlines))
	copy(out, headlines)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
