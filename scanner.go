package seqcdc

// Scanner implements the slope scan: it finds chunk boundaries by looking
// for runs of bytes that move in the configured direction. A Scanner holds
// no per-scan state, so one value can serve any number of goroutines.
//
// For iterating over a whole buffer, use Sequence or ChunkAll instead.
type Scanner struct {
	// Config fields (read-only after initialization)
	minSize   int  // Earliest cut offset from the chunk start
	maxSize   int  // Forced cut offset from the chunk start
	threshold int  // Matching bytes needed to cut
	trigger   int  // Opposing bytes tolerated before a jump
	jump      int  // Bytes skipped by a jump
	mask      byte // 0x00 for Increasing, 0xFF for Decreasing
}

// NewScanner returns a Scanner for cfg.
func NewScanner(cfg *Config) Scanner {
	return Scanner{
		minSize:   cfg.params.MinBlockSize,
		maxSize:   cfg.params.MaxBlockSize,
		threshold: cfg.params.SeqThreshold,
		trigger:   cfg.params.JumpTrigger,
		jump:      cfg.params.JumpSize,
		mask:      cfg.mask,
	}
}

// Scanner returns a Scanner for c.
func (c *Config) Scanner() Scanner {
	return NewScanner(c)
}

// FindBoundary returns the exclusive end offset of the chunk that begins at
// start. The result is always in (start, len(data)] unless start is at or
// past the end of data, in which case len(data) is returned.
//
// The scan works on the window data[start+min : start+max]:
//  1. If no more than min bytes remain, the rest of data is one chunk.
//  2. The byte at start+min anchors the scan; nothing before it is compared.
//  3. Each following byte is compared with its predecessor. It matches when
//     it is >= (Increasing) or <= (Decreasing); equal bytes match in both
//     modes.
//  4. The threshold-th consecutive match cuts the chunk right before the
//     byte that completed the run.
//  5. After jumpTrigger mismatches without a cut, the cursor skips jumpSize
//     bytes and both counters reset. The landing byte becomes the new
//     anchor: it is not compared with the byte before it, so the first
//     match after a jump is the byte following the landing byte.
//  6. Reaching start+max (or the end of data) forces a cut there.
//
// FindBoundary never fails and never allocates.
func (s *Scanner) FindBoundary(data []byte, start int) int {
	dataLen := len(data)
	if start >= dataLen || dataLen-start <= s.minSize {
		return dataLen
	}

	// Compared as a difference so that huge sizes cannot overflow.
	limit := dataLen
	if s.maxSize < dataLen-start {
		limit = start + s.maxSize
	}

	// Capture state into local variables
	mask := s.mask
	threshold := s.threshold
	trigger := s.trigger
	jump := s.jump

	var run, opposing int

	prev := data[start+s.minSize] ^ mask
	for pos := start + s.minSize + 1; pos < limit; pos++ {
		cur := data[pos] ^ mask
		if cur >= prev {
			run++
			if run >= threshold {
				return pos
			}
		} else {
			run = 0
			opposing++

			if opposing >= trigger {
				if jump >= limit-pos {
					return limit
				}

				pos += jump

				opposing = 0
				cur = data[pos] ^ mask
			}
		}

		prev = cur
	}

	return limit
}

// MinBlockSize returns the minimum chunk size.
func (s *Scanner) MinBlockSize() int {
	return s.minSize
}

// MaxBlockSize returns the maximum chunk size.
func (s *Scanner) MaxBlockSize() int {
	return s.maxSize
}
