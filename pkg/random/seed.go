package random

import (
	"encoding/binary"

	"github.com/spaolacci/murmur3"
)

// pixelSeedKey keys the hash so that PixelSeed(0, 0, 0, 0) is not a trivial value
const pixelSeedKey uint32 = 0x5bd1e995

// PixelSeed derives a generator seed for one ray from its pixel coordinates,
// sample index and frame index. Each coordinate is hashed as its own word, so
// neighbouring pixels or samples do not produce seeds that differ by a
// constant offset.
func PixelSeed(x, y, sample, frame int) uint32 {
	var buf [16]byte
	binary.LittleEndian.PutUint32(buf[0:], uint32(x))
	binary.LittleEndian.PutUint32(buf[4:], uint32(y))
	binary.LittleEndian.PutUint32(buf[8:], uint32(sample))
	binary.LittleEndian.PutUint32(buf[12:], uint32(frame))
	return murmur3.Sum32WithSeed(buf[:], pixelSeedKey)
}
