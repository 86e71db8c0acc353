package worker

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"tether/scene"
)

// Fingerprint summarizes the spatial state of every visible connectable
// shape as a single FNV-64a hash. Each numeric field is rounded to 0.5
// units so sub-pixel jitter does not perturb the value, and only spatial
// fields contribute: style, text and content changes leave the fingerprint
// untouched. The facade uses it both as a memoization key and as the
// trigger for re-pushing the obstacle snapshot to the worker.
func Fingerprint(shapes []scene.Shape) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for i := range shapes {
		s := &shapes[i]
		if !s.Visible || !s.Connectable() {
			continue
		}
		h.Write([]byte(s.ID))
		for _, v := range [...]float64{s.X, s.Y, s.Width, s.Height, s.Rotation} {
			binary.LittleEndian.PutUint64(buf[:], uint64(int64(math.Round(v*2))))
			h.Write(buf[:])
		}
	}
	return h.Sum64()
}
