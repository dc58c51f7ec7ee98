// Package seqcdc provides deterministic content-defined chunking (CDC)
// driven by slope detection: chunk boundaries are placed where the bytes
// form a monotonic run, instead of where a rolling hash matches a mask.
//
// # Overview
//
// Content-defined chunking divides data into variable-size chunks based on
// content rather than fixed offsets, so an insertion or deletion only moves
// the boundaries next to it. Slope chunking needs no hash table: it compares
// each byte with its predecessor and cuts once SeqThreshold consecutive
// bytes move in the configured direction.
//
// This implementation offers:
//   - Zero-copy chunks: Chunk.Data is a sub-slice of the input
//   - Lazy iteration: ChunkAll returns an iter.Seq and keeps O(1) state
//   - Thread-safety: Config and Scanner are immutable and shareable
//   - Streaming: Chunker reads from an io.Reader with identical boundaries
//
// # Quick Start
//
// In-memory API:
//
//	cfg, _ := seqcdc.NewConfig(seqcdc.WithMinBlockSize(2048))
//	for chunk := range seqcdc.ChunkAll(data, cfg) {
//	    // Process chunk.Data
//	}
//
// Streaming API:
//
//	chunker, _ := seqcdc.NewChunker(reader)
//	for {
//	    chunk, err := chunker.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    // Process chunk.Data
//	}
//
// # Algorithm
//
// For each chunk the scanner:
//  1. Skips MinBlockSize bytes without looking at them
//  2. Counts consecutive bytes that are >= (Increasing) or <= (Decreasing)
//     their predecessor; equal bytes count in both modes
//  3. Cuts when the count reaches SeqThreshold
//  4. Jumps JumpSize bytes ahead after JumpTrigger opposing bytes
//  5. Forces a cut at MaxBlockSize
//
// Treating equal bytes as matching (low-entropy absorption) means a flat
// region such as zero padding cuts at MinBlockSize+SeqThreshold in either
// mode instead of running to MaxBlockSize.
//
// # Thread Safety
//
// Config and Scanner values are read-only. Sequence and Chunker carry a
// cursor and belong to a single goroutine; use ChunkerPool to recycle
// streaming chunkers.
package seqcdc
