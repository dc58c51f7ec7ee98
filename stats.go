package seqcdc

import (
	"iter"
	"math"
)

// Stats summarizes a sequence of chunks. The zero value is an empty summary
// ready for Add.
type Stats struct {
	Count      int     // Number of chunks
	TotalBytes int     // Sum of chunk lengths
	MinLength  int     // Shortest chunk, 0 when Count is 0
	MaxLength  int     // Longest chunk
	Mean       float64 // Mean chunk length
	StdDev     float64 // Population standard deviation of chunk lengths

	m2 float64 // Sum of squared deviations from the running mean
}

// Add folds one chunk into the summary.
func (s *Stats) Add(c Chunk) {
	s.Count++
	s.TotalBytes += c.Length

	if s.Count == 1 || c.Length < s.MinLength {
		s.MinLength = c.Length
	}

	if c.Length > s.MaxLength {
		s.MaxLength = c.Length
	}

	// Welford's online update
	x := float64(c.Length)
	delta := x - s.Mean
	s.Mean += delta / float64(s.Count)
	s.m2 += delta * (x - s.Mean)
	s.StdDev = math.Sqrt(s.m2 / float64(s.Count))
}

// CollectStats drains chunks into a Stats.
func CollectStats(chunks iter.Seq[Chunk]) Stats {
	var s Stats
	for c := range chunks {
		s.Add(c)
	}

	return s
}

// Stats chunks data with c and summarizes the result.
func (c *Config) Stats(data []byte) Stats {
	return CollectStats(ChunkAll(data, c))
}
