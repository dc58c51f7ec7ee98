package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/kalbasit/seqcdc"
	"github.com/kalbasit/seqcdc/internal/testdata"
)

// sizeValue is a pflag.Value for byte counts written with optional units,
// such as 4096, 4KiB or 16k.
type sizeValue int

var _ pflag.Value = (*sizeValue)(nil)

func (v *sizeValue) String() string { return strconv.Itoa(int(*v)) }

func (v *sizeValue) Type() string { return "size" }

func (v *sizeValue) Set(s string) error {
	n, err := parseSize(s)
	if err != nil {
		return err
	}

	*v = sizeValue(n)

	return nil
}

func parseSize(s string) (int, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}

	if n > math.MaxInt32 {
		return 0, fmt.Errorf("size %q is too large", s)
	}

	return int(n), nil
}

// modeValue is a pflag.Value for seqcdc.Mode.
type modeValue seqcdc.Mode

var _ pflag.Value = (*modeValue)(nil)

func (v *modeValue) String() string { return seqcdc.Mode(*v).String() }

func (v *modeValue) Type() string { return "mode" }

func (v *modeValue) Set(s string) error {
	mode, err := seqcdc.ParseMode(s)
	if err != nil {
		return err
	}

	*v = modeValue(mode)

	return nil
}

// generateRequest describes synthetic input requested with --generate.
type generateRequest struct {
	Kind string
	Size int
}

// parseGenerate parses KIND:SIZE, e.g. "random:16MiB".
func parseGenerate(s string) (generateRequest, error) {
	kind, size, ok := strings.Cut(s, ":")
	if !ok {
		return generateRequest{}, fmt.Errorf("invalid --generate %q: want KIND:SIZE", s)
	}

	n, err := parseSize(size)
	if err != nil {
		return generateRequest{}, err
	}

	if _, err := testdata.Generate(kind, 0, 0); err != nil {
		return generateRequest{}, err
	}

	return generateRequest{Kind: kind, Size: n}, nil
}

// chunkingFlags holds the flags that override the chunking parameters.
type chunkingFlags struct {
	seqThreshold int
	minSize      sizeValue
	maxSize      sizeValue
	mode         modeValue
	jumpTrigger  int
	jumpSize     sizeValue
}

func (f *chunkingFlags) register(flagSet *pflag.FlagSet) {
	defaults := seqcdc.DefaultParams()
	f.minSize = sizeValue(defaults.MinBlockSize)
	f.maxSize = sizeValue(defaults.MaxBlockSize)
	f.mode = modeValue(defaults.Mode)
	f.jumpSize = sizeValue(defaults.JumpSize)

	flagSet.IntVarP(&f.seqThreshold, "seq-threshold", "s", defaults.SeqThreshold, "consecutive matching bytes needed to cut a chunk")
	flagSet.Var(&f.minSize, "min-size", "minimum chunk size (accepts units, e.g. 4KiB)")
	flagSet.Var(&f.maxSize, "max-size", "maximum chunk size (accepts units, e.g. 16KiB)")
	flagSet.VarP(&f.mode, "mode", "m", "slope direction: increasing or decreasing")
	flagSet.IntVar(&f.jumpTrigger, "jump-trigger", defaults.JumpTrigger, "opposing bytes tolerated before jumping ahead")
	flagSet.Var(&f.jumpSize, "jump-size", "bytes skipped by a jump")
}

// apply copies the flags the user set on top of p.
func (f *chunkingFlags) apply(flagSet *pflag.FlagSet, p *seqcdc.Params) {
	if flagSet.Changed("seq-threshold") {
		p.SeqThreshold = f.seqThreshold
	}

	if flagSet.Changed("min-size") {
		p.MinBlockSize = int(f.minSize)
	}

	if flagSet.Changed("max-size") {
		p.MaxBlockSize = int(f.maxSize)
	}

	if flagSet.Changed("mode") {
		p.Mode = seqcdc.Mode(f.mode)
	}

	if flagSet.Changed("jump-trigger") {
		p.JumpTrigger = f.jumpTrigger
	}

	if flagSet.Changed("jump-size") {
		p.JumpSize = int(f.jumpSize)
	}
}
