// seqcdc splits files into content-defined chunks by slope detection and
// reports chunk statistics.
//
// Each FILE is read completely (".zst" and ".lz4" files are decompressed
// first) and chunked in memory. Several files are chunked concurrently;
// results are printed in argument order. A FILE of "-" reads stdin.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/kalbasit/seqcdc"
	"github.com/kalbasit/seqcdc/metrics"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var (
		chunking    chunkingFlags
		configPath  string
		list        bool
		jsonOutput  bool
		verifyFlag  bool
		outputPath  string
		metricsFile string
		generate    string
		seed        uint64
		jobs        int
		logLevel    string
		showVersion bool
	)

	flagSet := pflag.NewFlagSet("seqcdc", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&configPath, "config", "c", "", "YAML configuration file (default: $"+configEnv+")")
	chunking.register(flagSet)
	flagSet.BoolVarP(&list, "list", "l", false, "print every chunk as offset and length")
	flagSet.BoolVar(&jsonOutput, "json", false, "print one JSON object per input")
	flagSet.BoolVar(&verifyFlag, "verify", false, "check that the chunks rebuild the input")
	flagSet.StringVarP(&outputPath, "output", "o", "", "write the chunks back to this file (.zst and .lz4 are compressed)")
	flagSet.StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics in text format to this file")
	flagSet.StringVarP(&generate, "generate", "g", "", "chunk generated data instead of files, as KIND:SIZE (random, increasing, decreasing, mixed, zeros)")
	flagSet.Uint64Var(&seed, "seed", 1, "seed for --generate random")
	flagSet.IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "number of inputs chunked concurrently")
	flagSet.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	flagSet.BoolVar(&showVersion, "version", false, "print the version and exit")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, flagSet)

			return nil
		}

		return err
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stderr, flagSet)

		return nil
	}

	if showVersion {
		_, err := fmt.Fprintf(stdout, "seqcdc %s\n", version)

		return err
	}

	if configPath == "" {
		configPath = os.Getenv(configEnv)
	}

	fileCfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if flagSet.Changed("log-level") {
		fileCfg.LogLevel = logLevel
	}

	level, err := parseLogLevel(fileCfg.LogLevel)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	params := fileCfg.Chunking
	chunking.apply(flagSet, &params)

	cfg, err := seqcdc.New(params)
	if err != nil {
		return err
	}

	inputs, err := collectInputs(flagSet.Args(), generate, seed, stdin)
	if err != nil {
		return err
	}

	if outputPath != "" && len(inputs) != 1 {
		return fmt.Errorf("--output needs exactly one input, got %d", len(inputs))
	}

	registry := prometheus.NewRegistry()

	proc := &processor{
		cfg:      cfg,
		recorder: metrics.NewRecorder(registry, cfg),
		logger:   logger,
		list:     list,
		verify:   verifyFlag,
		output:   outputPath,
	}

	logger.Debug("starting", "inputs", len(inputs), "config", cfg.String(), "jobs", jobs)

	results, err := processAll(ctx, proc, inputs, jobs)
	if err != nil {
		return err
	}

	failed := 0

	for _, res := range results {
		if res.Verified != nil && !*res.Verified {
			failed++
		}

		if jsonOutput {
			err = printJSON(stdout, res)
		} else {
			err = printText(stdout, res)
		}

		if err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	if metricsFile != "" {
		if err := prometheus.WriteToTextfile(metricsFile, registry); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}

		logger.Debug("wrote metrics", "path", metricsFile)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d inputs", errMismatch, failed, len(results))
	}

	return nil
}

func collectInputs(args []string, generate string, seed uint64, stdin io.Reader) ([]input, error) {
	var inputs []input

	if generate != "" {
		req, err := parseGenerate(generate)
		if err != nil {
			return nil, err
		}

		inputs = append(inputs, generatedInput(req, seed))
	}

	for _, path := range args {
		inputs = append(inputs, fileInput(path, stdin))
	}

	if len(inputs) == 0 {
		return nil, errors.New("no input: pass one or more files, - for stdin, or --generate KIND:SIZE")
	}

	return inputs, nil
}

// processAll chunks inputs on up to jobs goroutines and returns the results
// in input order. The first error cancels the inputs not yet started.
func processAll(ctx context.Context, proc *processor, inputs []input, jobs int) ([]*result, error) {
	results := make([]*result, len(inputs))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(max(jobs, 1))

	for i, in := range inputs {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res, err := proc.process(in)
			if err != nil {
				return err
			}

			results[i] = res

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `seqcdc splits data into content-defined chunks by slope detection.

A chunk ends where SEQ_THRESHOLD consecutive bytes keep rising (or falling,
with --mode decreasing) after the minimum chunk size, or at the maximum
chunk size.

Usage:
  seqcdc [flags] FILE...
  seqcdc [flags] --generate KIND:SIZE

Examples:
  # Chunk a file with the defaults
  seqcdc disk.img

  # Larger chunks, print every chunk
  seqcdc --min-size 16KiB --max-size 64KiB --list disk.img.zst

  # Check the chunking of synthetic data and export metrics
  seqcdc --generate random:64MiB --verify --metrics-file seqcdc.prom

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
