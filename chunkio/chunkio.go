// Package chunkio moves whole buffers and chunk sequences between files and
// memory. It is the byte source and sink around the seqcdc scanner: files
// are read completely, decompressed by extension, chunked in memory, and
// chunk ranges can be written back to rebuild the original content.
package chunkio

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/kalbasit/seqcdc"
)

// ReadAll reads r to the end, decompressing it with codec.
func ReadAll(r io.Reader, codec Codec) ([]byte, error) {
	decoded, err := codec.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer decoded.Close()

	data, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("read %s stream: %w", codec, err)
	}

	return data, nil
}

// ReadFile reads the whole file at path. Files ending in .zst or .lz4 are
// decompressed.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	data, err := ReadAll(f, CodecForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return data, nil
}

// WriteFile writes data to path, compressing it when the extension names a
// codec.
func WriteFile(path string, data []byte) error {
	return writeFile(path, func(w io.Writer) error {
		_, err := w.Write(data)

		return err
	})
}

// WriteChunks writes the data of every chunk to w in order and returns the
// number of bytes written. Writing the chunks of a buffer reproduces it.
func WriteChunks(w io.Writer, chunks iter.Seq[seqcdc.Chunk]) (int64, error) {
	var written int64

	for chunk := range chunks {
		n, err := w.Write(chunk.Data)
		written += int64(n)

		if err != nil {
			return written, fmt.Errorf("write chunk at offset %d: %w", chunk.Offset, err)
		}
	}

	return written, nil
}

// WriteChunksToFile is WriteChunks into the file at path, compressed by
// extension.
func WriteChunksToFile(path string, chunks iter.Seq[seqcdc.Chunk]) (int64, error) {
	var written int64

	err := writeFile(path, func(w io.Writer) error {
		var err error
		written, err = WriteChunks(w, chunks)

		return err
	})

	return written, err
}

func writeFile(path string, fill func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close output: %w", closeErr))
		}
	}()

	codec := CodecForPath(path)

	encoded, err := codec.NewWriter(f)
	if err != nil {
		return err
	}

	if err := fill(encoded); err != nil {
		_ = encoded.Close()

		return fmt.Errorf("%s: %w", path, err)
	}

	if err := encoded.Close(); err != nil {
		return fmt.Errorf("%s: flush %s: %w", path, codec, err)
	}

	return nil
}
