// Package metrics exports chunking statistics as Prometheus metrics.
package metrics

import (
	"iter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kalbasit/seqcdc"
)

const namespace = "seqcdc"

// lengthBuckets is the number of histogram buckets spread between the
// minimum and maximum chunk size.
const lengthBuckets = 8

// Recorder counts chunks and their sizes for one chunking configuration.
// It is safe for concurrent use.
type Recorder struct {
	maxSize int

	ChunksTotal prometheus.Counter
	BytesTotal  prometheus.Counter

	// ForcedCutsTotal counts chunks exactly MaxBlockSize long. A run never
	// ends a chunk at that length, but a jump reaching the limit or a final
	// chunk of exactly that size does, and both are counted.
	ForcedCutsTotal prometheus.Counter

	ChunkLength       prometheus.Histogram
	InputsTotal       prometheus.Counter
	InputScanDuration prometheus.Histogram
}

// NewRecorder registers the chunking metrics with registerer. The length
// histogram buckets span cfg's minimum to maximum chunk size, and every
// metric carries the mode as a constant label.
func NewRecorder(registerer prometheus.Registerer, cfg *seqcdc.Config) *Recorder {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	factory := promauto.With(prometheus.WrapRegistererWith(prometheus.Labels{"mode": cfg.Mode().String()}, registerer))

	minSize := float64(cfg.MinBlockSize())
	width := float64(cfg.MaxBlockSize()-cfg.MinBlockSize()) / lengthBuckets

	return &Recorder{
		maxSize: cfg.MaxBlockSize(),

		ChunksTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_total",
			Help:      "Total number of chunks produced",
		}),
		BytesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_total",
			Help:      "Total number of bytes chunked",
		}),
		ForcedCutsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forced_cuts_total",
			Help:      "Number of chunks exactly the maximum block size long, including jumps reaching the limit and final chunks of that size",
		}),
		ChunkLength: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chunk_length_bytes",
			Help:      "Chunk length in bytes",
			Buckets:   prometheus.LinearBuckets(minSize, width, lengthBuckets+1),
		}),
		InputsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inputs_total",
			Help:      "Number of inputs chunked",
		}),
		InputScanDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "input_scan_duration_seconds",
			Help:      "Time spent chunking one input",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100us to 26s
		}),
	}
}

// Observe records one chunk.
func (r *Recorder) Observe(c seqcdc.Chunk) {
	r.ChunksTotal.Inc()
	r.BytesTotal.Add(float64(c.Length))
	r.ChunkLength.Observe(float64(c.Length))

	if c.Length == r.maxSize {
		r.ForcedCutsTotal.Inc()
	}
}

// ObserveInput records that one whole input was chunked in elapsed.
func (r *Recorder) ObserveInput(elapsed time.Duration) {
	r.InputsTotal.Inc()
	r.InputScanDuration.Observe(elapsed.Seconds())
}

// Wrap returns an iterator yielding the chunks of seq unchanged while
// recording each of them.
func (r *Recorder) Wrap(seq iter.Seq[seqcdc.Chunk]) iter.Seq[seqcdc.Chunk] {
	return func(yield func(seqcdc.Chunk) bool) {
		for c := range seq {
			r.Observe(c)

			if !yield(c) {
				return
			}
		}
	}
}
