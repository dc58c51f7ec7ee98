package seqcdc

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrCoverage is returned by ValidateCoverage when chunks do not form an
// exact partition of the source.
var ErrCoverage = errors.New("chunks do not cover the data")

// VerifyChunks reports whether concatenating the chunks' data in order
// reproduces original.
func VerifyChunks(original []byte, chunks []Chunk) bool {
	rest := original
	for _, c := range chunks {
		if len(c.Data) > len(rest) || !bytes.Equal(c.Data, rest[:len(c.Data)]) {
			return false
		}

		rest = rest[len(c.Data):]
	}

	return len(rest) == 0
}

// ValidateCoverage checks that chunks are non-empty, contiguous, start at
// offset 0 and end at dataLen.
func ValidateCoverage(dataLen int, chunks []Chunk) error {
	if len(chunks) == 0 {
		if dataLen == 0 {
			return nil
		}

		return fmt.Errorf("%w: no chunks for %d bytes", ErrCoverage, dataLen)
	}

	expected := 0

	for i, c := range chunks {
		if c.Offset != expected {
			return fmt.Errorf("%w: chunk %d starts at %d, expected %d", ErrCoverage, i, c.Offset, expected)
		}

		if c.IsEmpty() {
			return fmt.Errorf("%w: chunk %d is empty", ErrCoverage, i)
		}

		if len(c.Data) != c.Length {
			return fmt.Errorf("%w: chunk %d has %d data bytes for length %d", ErrCoverage, i, len(c.Data), c.Length)
		}

		expected = c.End()
	}

	if expected != dataLen {
		return fmt.Errorf("%w: chunks end at %d but data length is %d", ErrCoverage, expected, dataLen)
	}

	return nil
}
