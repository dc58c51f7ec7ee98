package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

// printText writes a human readable summary of res, plus one line per chunk
// when spans were collected.
func printText(w io.Writer, res *result) error {
	for _, span := range res.Spans {
		if _, err := fmt.Fprintf(w, "%12d %8d\n", span.Offset, span.Length); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%s: %s chunks, %s (min %s, mean %s, max %s, stddev %s) in %s, %s/s",
		res.Input,
		humanize.Comma(int64(res.Chunks)),
		humanize.IBytes(uint64(res.Bytes)),
		humanize.IBytes(uint64(res.MinLength)),
		humanize.IBytes(uint64(res.Mean)),
		humanize.IBytes(uint64(res.MaxLength)),
		humanize.IBytes(uint64(res.StdDev)),
		res.Elapsed.Round(time.Microsecond),
		humanize.IBytes(uint64(res.Throughput)),
	)
	if err != nil {
		return err
	}

	if res.Verified != nil {
		status := "ok"
		if !*res.Verified {
			status = "FAILED"
		}

		if _, err := fmt.Fprintf(w, ", verify %s", status); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintln(w)

	return err
}

// printJSON writes res as a single JSON line.
func printJSON(w io.Writer, res *result) error {
	return json.NewEncoder(w).Encode(res)
}
