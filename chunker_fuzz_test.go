package seqcdc_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/kalbasit/seqcdc"
)

func fuzzConfig(seq, minimum, maximum, trigger, jump uint16, decreasing bool) (*seqcdc.Config, error) {
	mode := seqcdc.Increasing
	if decreasing {
		mode = seqcdc.Decreasing
	}

	return seqcdc.NewConfig(
		seqcdc.WithSeqThreshold(int(seq)),
		seqcdc.WithMinBlockSize(int(minimum)),
		seqcdc.WithMaxBlockSize(int(maximum)),
		seqcdc.WithJumpTrigger(int(trigger)),
		seqcdc.WithJumpSize(int(jump)),
		seqcdc.WithMode(mode),
	)
}

func FuzzChunker(f *testing.F) {
	f.Add(
		[]byte("content to be chunked into multiple pieces to verify the chunker works correctly"),
		uint16(3), uint16(8), uint16(32), uint16(4), uint16(5), false,
	)
	f.Add(make([]byte, 1024), uint16(5), uint16(128), uint16(512), uint16(50), uint16(256), true)

	f.Fuzz(func(t *testing.T, data []byte, seq, minimum, maximum, trigger, jump uint16, decreasing bool) {
		cfg, err := fuzzConfig(seq, minimum, maximum, trigger, jump, decreasing)
		if err != nil {
			// Skip invalid configurations
			return
		}

		want := seqcdc.Collect(data, cfg)

		c := seqcdc.NewChunkerFromConfig(bytes.NewReader(data), cfg)

		var totalLength int

		for i := 0; ; i++ {
			chunk, err := c.Next()
			if err == io.EOF {
				break
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if chunk.Length == 0 {
				t.Fatal("chunk length is 0")
			}

			// Verify chunk size constraints
			if chunk.Length > int(maximum) {
				t.Fatalf("chunk length %d exceeds maximum size %d", chunk.Length, maximum)
			}
			// The last chunk is allowed to be smaller than the minimum size.
			isLastChunk := chunk.End() == len(data)
			if !isLastChunk && chunk.Length < int(minimum) {
				t.Fatalf("chunk length %d is less than minimum size %d", chunk.Length, minimum)
			}

			if chunk.End() > len(data) {
				t.Fatalf("chunk is out of bounds: offset %d, length %d, data size %d", chunk.Offset, chunk.Length, len(data))
			}

			if !bytes.Equal(data[chunk.Offset:chunk.End()], chunk.Data) {
				t.Fatal("chunk data does not match original data")
			}

			// Streaming and in-memory chunking must agree.
			if i >= len(want) || want[i].Offset != chunk.Offset || want[i].Length != chunk.Length {
				t.Fatalf("streaming chunk %d {%d, %d} differs from in-memory chunking", i, chunk.Offset, chunk.Length)
			}

			totalLength += chunk.Length
		}

		if len(data) != totalLength {
			t.Errorf("total length mismatch: got %d, want %d", totalLength, len(data))
		}
	})
}

func FuzzScanner(f *testing.F) {
	f.Add([]byte("some data to find boundary in"), uint16(5), uint16(8), uint16(16), uint16(2), uint16(3), uint16(0))
	f.Fuzz(func(t *testing.T, data []byte, seq, minimum, maximum, trigger, jump, start uint16) {
		cfg, err := fuzzConfig(seq, minimum, maximum, trigger, jump, false)
		if err != nil {
			return
		}

		scanner := cfg.Scanner()

		s := int(start)

		boundary := scanner.FindBoundary(data, s)
		if boundary > len(data) {
			t.Fatalf("boundary %d exceeds data length %d", boundary, len(data))
		}

		if s >= len(data) {
			if boundary != len(data) {
				t.Fatalf("boundary %d for start past end, want %d", boundary, len(data))
			}

			return
		}

		if boundary <= s {
			t.Fatalf("boundary %d does not advance past start %d", boundary, s)
		}

		if boundary-s > int(maximum) {
			t.Errorf("chunk %d exceeds maximum size %d", boundary-s, maximum)
		}

		if boundary < len(data) && boundary-s < int(minimum) {
			t.Errorf("chunk %d is less than minimum size %d", boundary-s, minimum)
		}
	})
}
