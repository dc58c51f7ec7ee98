// Package testdata generates synthetic inputs for tests, benchmarks and the
// seqcdc command.
package testdata

import (
	"fmt"
	"strings"
)

// Increasing returns size bytes of zeros with seqCount evenly spaced ramps
// 0, 1, 2, ... of seqLen bytes each.
func Increasing(size, seqLen, seqCount int) []byte {
	return ramps(size, seqLen, seqCount, 0x00, func(i int) byte { return byte(i) })
}

// Decreasing returns size bytes of 0xFF with seqCount evenly spaced ramps
// 255, 254, 253, ... of seqLen bytes each.
func Decreasing(size, seqLen, seqCount int) []byte {
	return ramps(size, seqLen, seqCount, 0xFF, func(i int) byte { return 255 - byte(i) })
}

func ramps(size, seqLen, seqCount int, fill byte, value func(int) byte) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = fill
	}

	spacing := size / max(seqCount, 1)

	for s := 0; s < seqCount; s++ {
		start := s * spacing
		end := min(start+seqLen, size)

		for i := start; i < end; i++ {
			data[i] = value(i - start)
		}
	}

	return data
}

// Mixed returns a repeating pattern of a 5-byte rising run, a 3-byte
// falling run and 2 scattered bytes.
func Mixed(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		switch i % 10 {
		case 0, 1, 2, 3, 4:
			data[i] = byte(i)
		case 5, 6, 7:
			data[i] = 255 - byte(i)
		default:
			data[i] = byte(i * 7)
		}
	}

	return data
}

// PseudoRandom returns size bytes from a linear congruential generator. The
// output depends only on size and seed.
func PseudoRandom(size int, seed uint64) []byte {
	data := make([]byte, size)
	state := seed

	for i := range data {
		state = state*1103515245 + 12345
		data[i] = byte(state >> 16)
	}

	return data
}

// Ramp returns size bytes that never decrease: each value repeats step
// times before moving to the next one, wrapping at 256 only every
// 256*step bytes.
func Ramp(size, step int) []byte {
	step = max(step, 1)

	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i / step)
	}

	return data
}

// Complement returns a copy of data with every byte inverted.
func Complement(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = ^b
	}

	return out
}

// Reverse returns a reversed copy of data.
func Reverse(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[len(data)-1-i] = b
	}

	return out
}

// Kinds lists the generator names understood by Generate.
var Kinds = []string{"random", "increasing", "decreasing", "mixed", "zeros"}

// Generate builds size bytes of the named kind. The increasing and
// decreasing kinds place one 16-byte ramp every 1 KiB.
func Generate(kind string, size int, seed uint64) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("negative size %d", size)
	}

	switch kind {
	case "random":
		return PseudoRandom(size, seed), nil
	case "increasing":
		return Increasing(size, 16, max(size/1024, 1)), nil
	case "decreasing":
		return Decreasing(size, 16, max(size/1024, 1)), nil
	case "mixed":
		return Mixed(size), nil
	case "zeros":
		return make([]byte, size), nil
	default:
		return nil, fmt.Errorf("unknown kind %q (want one of %s)", kind, strings.Join(Kinds, ", "))
	}
}
