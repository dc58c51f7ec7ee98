package seqcdc_test

import (
	"errors"
	"testing"

	"github.com/kalbasit/seqcdc"
)

func TestVerifyChunks(t *testing.T) {
	t.Parallel()

	data := []byte("abcdefghij")

	good := []seqcdc.Chunk{
		{Offset: 0, Length: 4, Data: data[0:4]},
		{Offset: 4, Length: 6, Data: data[4:10]},
	}

	if !seqcdc.VerifyChunks(data, good) {
		t.Error("VerifyChunks() = false for a valid partition")
	}

	if seqcdc.VerifyChunks(data, good[:1]) {
		t.Error("VerifyChunks() = true for a partial partition")
	}

	swapped := []seqcdc.Chunk{good[1], good[0]}
	if seqcdc.VerifyChunks(data, swapped) {
		t.Error("VerifyChunks() = true for reordered chunks")
	}

	tooLong := append(good, seqcdc.Chunk{Offset: 10, Length: 1, Data: []byte("k")})
	if seqcdc.VerifyChunks(data, tooLong) {
		t.Error("VerifyChunks() = true for chunks past the end")
	}

	if !seqcdc.VerifyChunks(nil, nil) {
		t.Error("VerifyChunks() = false for empty data and no chunks")
	}
}

func TestValidateCoverage(t *testing.T) {
	t.Parallel()

	data := make([]byte, 10)

	tests := []struct {
		name    string
		dataLen int
		chunks  []seqcdc.Chunk
		wantErr bool
	}{
		{name: "empty", dataLen: 0},
		{name: "no chunks", dataLen: 10, wantErr: true},
		{
			name:    "exact",
			dataLen: 10,
			chunks: []seqcdc.Chunk{
				{Offset: 0, Length: 3, Data: data[:3]},
				{Offset: 3, Length: 7, Data: data[3:]},
			},
		},
		{
			name:    "gap",
			dataLen: 10,
			chunks: []seqcdc.Chunk{
				{Offset: 0, Length: 3, Data: data[:3]},
				{Offset: 4, Length: 6, Data: data[4:]},
			},
			wantErr: true,
		},
		{
			name:    "empty chunk",
			dataLen: 10,
			chunks: []seqcdc.Chunk{
				{Offset: 0, Length: 0},
				{Offset: 0, Length: 10, Data: data},
			},
			wantErr: true,
		},
		{
			name:    "short",
			dataLen: 10,
			chunks:  []seqcdc.Chunk{{Offset: 0, Length: 9, Data: data[:9]}},
			wantErr: true,
		},
		{
			name:    "data length mismatch",
			dataLen: 10,
			chunks:  []seqcdc.Chunk{{Offset: 0, Length: 10, Data: data[:5]}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := seqcdc.ValidateCoverage(tt.dataLen, tt.chunks)
			if tt.wantErr {
				if !errors.Is(err, seqcdc.ErrCoverage) {
					t.Errorf("ValidateCoverage() error = %v, want %v", err, seqcdc.ErrCoverage)
				}

				return
			}

			if err != nil {
				t.Errorf("ValidateCoverage() unexpected error: %v", err)
			}
		})
	}
}
