package seqcdc

import "iter"

// Chunk is a view of one content-defined chunk. It never owns its bytes:
// Data aliases the buffer that was chunked, so that buffer must outlive the
// chunk and must not be modified while chunks referencing it are in use.
type Chunk struct {
	Offset int    // Offset of the first byte in the source
	Length int    // Chunk size in bytes
	Data   []byte // Chunk data (points into the source buffer)
}

// End returns the offset one past the last byte of the chunk.
func (c Chunk) End() int {
	return c.Offset + c.Length
}

// IsEmpty reports whether the chunk covers no bytes.
func (c Chunk) IsEmpty() bool {
	return c.Length == 0
}

// Sequence lazily partitions an in-memory buffer into chunks. It holds only
// the current offset, so iterating over any buffer size uses constant
// memory. A Sequence is forward-only and not safe for concurrent use; build
// a new one to start over.
type Sequence struct {
	scanner Scanner
	data    []byte
	offset  int
}

// NewSequence returns a Sequence over data. The data slice is not copied.
func NewSequence(data []byte, cfg *Config) *Sequence {
	return &Sequence{
		scanner: NewScanner(cfg),
		data:    data,
	}
}

// Next returns the next chunk. The second result is false once every byte
// of the buffer has been returned.
func (s *Sequence) Next() (Chunk, bool) {
	if s.offset >= len(s.data) {
		return Chunk{}, false
	}

	end := s.scanner.FindBoundary(s.data, s.offset)

	chunk := Chunk{
		Offset: s.offset,
		Length: end - s.offset,
		Data:   s.data[s.offset:end:end],
	}

	s.offset = end

	return chunk, true
}

// All returns an iterator over the chunks not yet returned by Next.
func (s *Sequence) All() iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		for {
			chunk, ok := s.Next()
			if !ok || !yield(chunk) {
				return
			}
		}
	}
}

// Offset returns the offset of the next chunk.
func (s *Sequence) Offset() int {
	return s.offset
}

// Remaining returns the number of bytes not yet covered by a chunk.
func (s *Sequence) Remaining() int {
	return len(s.data) - s.offset
}

// ChunkAll returns an iterator over the chunks of data. Every call of the
// returned iterator starts again from the beginning of data, and breaking
// out of a range loop simply stops the scan.
//
//	for chunk := range seqcdc.ChunkAll(data, cfg) {
//	    process(chunk.Data)
//	}
func ChunkAll(data []byte, cfg *Config) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		NewSequence(data, cfg).All()(yield)
	}
}

// Collect chunks the whole buffer and returns the chunks in order. For
// large inputs prefer ChunkAll, which never holds more than one chunk.
func Collect(data []byte, cfg *Config) []Chunk {
	var chunks []Chunk
	for chunk := range ChunkAll(data, cfg) {
		chunks = append(chunks, chunk)
	}

	return chunks
}

// First returns the first chunk of data, or false if data is empty.
func First(data []byte, cfg *Config) (Chunk, bool) {
	return NewSequence(data, cfg).Next()
}

// Boundaries returns the end offsets of all chunks of data.
func Boundaries(data []byte, cfg *Config) []int {
	var ends []int
	for chunk := range ChunkAll(data, cfg) {
		ends = append(ends, chunk.End())
	}

	return ends
}
