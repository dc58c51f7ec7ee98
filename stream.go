package seqcdc

import (
	"errors"
	"io"
)

// Chunker provides a streaming API for slope chunking over an io.Reader.
// It returns the same chunks as ChunkAll would over the full content, while
// holding at most BufferSize bytes in memory.
//
// A Chunker is not safe for concurrent use. Use one Chunker per goroutine,
// or recycle them with ChunkerPool.
type Chunker struct {
	scanner Scanner   // Slope scanner (embedded to avoid pointer allocation)
	reader  io.Reader // Input stream

	buf    []byte // Internal buffer
	cursor int    // Current position in buffer
	offset int    // Absolute offset in stream
	eof    bool   // EOF reached
}

// maxInitialBuffer caps the buffer allocated up front. A Chunker whose
// configured buffer is larger grows on demand, up to MaxBlockSize.
const maxInitialBuffer = 4 << 20

// NewChunker creates a new Chunker that reads from the given io.Reader.
func NewChunker(r io.Reader, opts ...Option) (*Chunker, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return NewChunkerFromConfig(r, cfg), nil
}

// NewChunkerFromConfig creates a new Chunker using an existing Config.
func NewChunkerFromConfig(r io.Reader, cfg *Config) *Chunker {
	size := min(cfg.BufferSize(), maxInitialBuffer)

	return &Chunker{
		scanner: NewScanner(cfg),
		reader:  r,
		buf:     make([]byte, size),
		cursor:  size, // Start with empty buffer (triggers initial read)
	}
}

// fillBuffer makes sure at least maxSize bytes are available past the
// cursor unless the reader is exhausted. The scanner never looks further
// than maxSize bytes ahead, so boundaries do not depend on how the reader
// splits its output.
func (c *Chunker) fillBuffer() error {
	n := len(c.buf) - c.cursor
	if c.eof || n >= c.scanner.MaxBlockSize() {
		return nil
	}

	// Move unconsumed data to the front of buffer
	copy(c.buf[:n], c.buf[c.cursor:])
	c.cursor = 0
	c.buf = c.buf[:cap(c.buf)]

	// Fill the rest of the buffer
	m, err := io.ReadFull(c.reader, c.buf[n:])
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		c.buf = c.buf[:n+m]
		c.eof = true
	} else if err != nil {
		c.buf = c.buf[:n+m]

		return err
	}

	return nil
}

// grow moves the unconsumed bytes into a buffer twice as large, without
// exceeding MaxBlockSize.
func (c *Chunker) grow() {
	size := c.scanner.MaxBlockSize()
	if cap(c.buf) <= size/2 {
		size = 2 * cap(c.buf)
	}

	buf := make([]byte, len(c.buf)-c.cursor, size)
	copy(buf, c.buf[c.cursor:])

	c.buf = buf
	c.cursor = 0
}

// Next returns the next chunk from the stream.
// Returns io.EOF when the stream is exhausted.
//
// The returned Chunk.Data slice is valid until the next call to Next.
// If you need to keep the data, copy it to your own buffer.
func (c *Chunker) Next() (Chunk, error) {
	var (
		available []byte
		boundary  int
	)

	for {
		if err := c.fillBuffer(); err != nil {
			return Chunk{}, err
		}

		available = c.buf[c.cursor:]
		if len(available) == 0 {
			return Chunk{}, io.EOF
		}

		boundary = c.scanner.FindBoundary(available, 0)

		// A cut before the end of the window only depends on the bytes up
		// to it. A cut at the end may be the buffer edge rather than a
		// real boundary.
		if boundary < len(available) || c.eof || len(available) >= c.scanner.MaxBlockSize() {
			break
		}

		c.grow()
	}

	chunk := Chunk{
		Offset: c.offset,
		Length: boundary,
		Data:   available[:boundary:boundary],
	}

	c.cursor += boundary
	c.offset += boundary

	return chunk, nil
}

// Reset resets the chunker to start processing a new stream.
// The reader is replaced with the provided one, and all state is cleared.
func (c *Chunker) Reset(r io.Reader) {
	c.reader = r
	c.buf = c.buf[:cap(c.buf)] // Restore buffer to full capacity
	c.cursor = len(c.buf)      // Start with empty buffer
	c.offset = 0
	c.eof = false
}

// Offset returns the current absolute offset in the stream.
func (c *Chunker) Offset() int {
	return c.offset
}
