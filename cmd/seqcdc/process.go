package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"time"

	"github.com/kalbasit/seqcdc"
	"github.com/kalbasit/seqcdc/chunkio"
	"github.com/kalbasit/seqcdc/internal/testdata"
	"github.com/kalbasit/seqcdc/metrics"
)

var errMismatch = errors.New("reconstruction differs from input")

// chunkSpan is the JSON form of a chunk.
type chunkSpan struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
}

// result is the outcome of chunking one input.
type result struct {
	Input      string        `json:"input"`
	Chunks     int           `json:"chunks"`
	Bytes      int           `json:"bytes"`
	MinLength  int           `json:"min_length"`
	MaxLength  int           `json:"max_length"`
	Mean       float64       `json:"mean_length"`
	StdDev     float64       `json:"stddev_length"`
	Elapsed    time.Duration `json:"elapsed_ns"`
	Throughput float64       `json:"throughput_bytes_per_second"`
	Verified   *bool         `json:"verified,omitempty"`
	Spans      []chunkSpan   `json:"spans,omitempty"`
}

// input is a named byte source.
type input struct {
	name string
	load func() ([]byte, error)
}

func fileInput(path string, stdin io.Reader) input {
	if path == "-" {
		return input{name: "stdin", load: func() ([]byte, error) { return chunkio.ReadAll(stdin, chunkio.CodecNone) }}
	}

	return input{name: path, load: func() ([]byte, error) { return chunkio.ReadFile(path) }}
}

func generatedInput(req generateRequest, seed uint64) input {
	return input{
		name: fmt.Sprintf("%s:%d", req.Kind, req.Size),
		load: func() ([]byte, error) { return testdata.Generate(req.Kind, req.Size, seed) },
	}
}

// processor chunks inputs with one configuration. It is shared by the
// worker goroutines; each call to process owns its own Sequence.
type processor struct {
	cfg      *seqcdc.Config
	recorder *metrics.Recorder
	logger   *slog.Logger

	list   bool
	verify bool
	output string
}

func (p *processor) process(in input) (*result, error) {
	data, err := in.load()
	if err != nil {
		return nil, err
	}

	p.logger.Debug("chunking input", "input", in.name, "bytes", len(data), "config", p.cfg.String())

	res := &result{Input: in.name}

	var stats seqcdc.Stats

	start := time.Now()

	for chunk := range p.recorder.Wrap(seqcdc.ChunkAll(data, p.cfg)) {
		stats.Add(chunk)

		if p.list {
			res.Spans = append(res.Spans, chunkSpan{Offset: chunk.Offset, Length: chunk.Length})
		}
	}

	res.Elapsed = time.Since(start)
	p.recorder.ObserveInput(res.Elapsed)

	res.Chunks = stats.Count
	res.Bytes = stats.TotalBytes
	res.MinLength = stats.MinLength
	res.MaxLength = stats.MaxLength
	res.Mean = stats.Mean
	res.StdDev = stats.StdDev

	if seconds := res.Elapsed.Seconds(); seconds > 0 {
		res.Throughput = float64(res.Bytes) / seconds
	}

	if p.verify {
		ok, err := verify(data, seqcdc.ChunkAll(data, p.cfg))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in.name, err)
		}

		res.Verified = &ok

		if !ok {
			p.logger.Error("verification failed", "input", in.name)
		}
	}

	if p.output != "" {
		written, err := chunkio.WriteChunksToFile(p.output, seqcdc.ChunkAll(data, p.cfg))
		if err != nil {
			return nil, err
		}

		p.logger.Info("wrote reconstruction", "path", p.output, "bytes", written)
	}

	p.logger.Debug("chunked input", "input", in.name, "chunks", res.Chunks, "elapsed", res.Elapsed)

	return res, nil
}

// verify writes the chunks through a comparing sink and reports whether
// they rebuild data exactly.
func verify(data []byte, chunks iter.Seq[seqcdc.Chunk]) (bool, error) {
	sink := &compareWriter{want: data}

	_, err := chunkio.WriteChunks(sink, chunks)
	if errors.Is(err, errMismatch) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return sink.offset == len(data), nil
}

// compareWriter checks written bytes against want instead of storing them.
type compareWriter struct {
	want   []byte
	offset int
}

func (w *compareWriter) Write(p []byte) (int, error) {
	end := w.offset + len(p)
	if end > len(w.want) || !bytes.Equal(p, w.want[w.offset:end]) {
		return 0, errMismatch
	}

	w.offset = end

	return len(p), nil
}
