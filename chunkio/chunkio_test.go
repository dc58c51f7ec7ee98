package chunkio_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalbasit/seqcdc"
	"github.com/kalbasit/seqcdc/chunkio"
	"github.com/kalbasit/seqcdc/internal/testdata"
)

func TestCodecString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		codec chunkio.Codec
		want  string
	}{
		{chunkio.CodecNone, "none"},
		{chunkio.CodecZstd, "zstd"},
		{chunkio.CodecLZ4, "lz4"},
		{chunkio.Codec(42), "unknown(42)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.codec.String())
	}
}

func TestParseCodec(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"none", "zstd", "lz4"} {
		codec, err := chunkio.ParseCodec(name)
		require.NoError(t, err)
		assert.Equal(t, name, codec.String())
	}

	_, err := chunkio.ParseCodec("gzip")
	require.ErrorIs(t, err, chunkio.ErrUnknownCodec)
}

func TestCodecForPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, chunkio.CodecZstd, chunkio.CodecForPath("disk.img.zst"))
	assert.Equal(t, chunkio.CodecZstd, chunkio.CodecForPath("/tmp/A.ZSTD"))
	assert.Equal(t, chunkio.CodecLZ4, chunkio.CodecForPath("backup.tar.lz4"))
	assert.Equal(t, chunkio.CodecNone, chunkio.CodecForPath("notes.txt"))
	assert.Equal(t, chunkio.CodecNone, chunkio.CodecForPath("-"))
}

func TestUnknownCodecStreams(t *testing.T) {
	t.Parallel()

	_, err := chunkio.Codec(9).NewReader(bytes.NewReader(nil))
	require.ErrorIs(t, err, chunkio.ErrUnknownCodec)

	_, err = chunkio.Codec(9).NewWriter(&bytes.Buffer{})
	require.ErrorIs(t, err, chunkio.ErrUnknownCodec)
}

// TestFileRoundTrip writes a file with every codec and reads it back.
func TestFileRoundTrip(t *testing.T) {
	t.Parallel()

	data := testdata.Mixed(200 * 1024)

	for _, name := range []string{"plain.bin", "packed.zst", "packed.lz4"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, chunkio.WriteFile(path, data))

			got, err := chunkio.ReadFile(path)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(data, got), "content differs after round trip")

			if chunkio.CodecForPath(path) != chunkio.CodecNone {
				info, err := os.Stat(path)
				require.NoError(t, err)
				assert.Less(t, info.Size(), int64(len(data)), "compressed file is not smaller")
			}
		})
	}
}

// TestWriteChunksReconstructs verifies that writing every chunk rebuilds the
// chunked buffer.
func TestWriteChunksReconstructs(t *testing.T) {
	t.Parallel()

	data := testdata.PseudoRandom(300*1024, 21)
	cfg := seqcdc.MustConfig()

	var buf bytes.Buffer

	n, err := chunkio.WriteChunks(&buf, seqcdc.ChunkAll(data, cfg))
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)
	assert.True(t, bytes.Equal(data, buf.Bytes()), "reconstruction differs from input")
}

func TestWriteChunksToFile(t *testing.T) {
	t.Parallel()

	data := testdata.Increasing(128*1024, 16, 100)
	cfg := seqcdc.MustConfig(seqcdc.WithMode(seqcdc.Increasing))

	path := filepath.Join(t.TempDir(), "rebuilt.zst")

	n, err := chunkio.WriteChunksToFile(path, seqcdc.ChunkAll(data, cfg))
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)

	got, err := chunkio.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, got), "file content differs from input")
}

type failingWriter struct{}

var errDiskFull = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) { return 0, errDiskFull }

func TestWriteChunksError(t *testing.T) {
	t.Parallel()

	data := testdata.PseudoRandom(64*1024, 2)

	_, err := chunkio.WriteChunks(failingWriter{}, seqcdc.ChunkAll(data, seqcdc.MustConfig()))
	require.ErrorIs(t, err, errDiskFull)
}

func TestReadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := chunkio.ReadFile(filepath.Join(t.TempDir(), "missing.bin"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadAllCorrupt(t *testing.T) {
	t.Parallel()

	_, err := chunkio.ReadAll(bytes.NewReader([]byte("definitely not zstd")), chunkio.CodecZstd)
	require.Error(t, err)
}
