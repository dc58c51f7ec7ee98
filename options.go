package seqcdc

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidConfig is matched by every configuration error returned by
	// New and NewConfig.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidSeqThreshold is returned when seqThreshold is 0.
	ErrInvalidSeqThreshold = fmt.Errorf("%w: seqThreshold must be greater than 0", ErrInvalidConfig)

	// ErrInvalidMinBlockSize is returned when minBlockSize is less than 1.
	ErrInvalidMinBlockSize = fmt.Errorf("%w: minBlockSize must be greater than 0", ErrInvalidConfig)

	// ErrMaxBlockSizeTooSmall is returned when maxBlockSize is not greater than minBlockSize.
	ErrMaxBlockSizeTooSmall = fmt.Errorf("%w: maxBlockSize must be greater than minBlockSize", ErrInvalidConfig)

	// ErrInvalidJumpTrigger is returned when jumpTrigger is 0.
	ErrInvalidJumpTrigger = fmt.Errorf("%w: jumpTrigger must be greater than 0", ErrInvalidConfig)

	// ErrInvalidJumpSize is returned when jumpSize is negative.
	ErrInvalidJumpSize = fmt.Errorf("%w: jumpSize must not be negative", ErrInvalidConfig)

	// ErrInvalidBufferSize is returned when bufferSize is negative.
	ErrInvalidBufferSize = fmt.Errorf("%w: bufferSize must not be negative", ErrInvalidConfig)

	// ErrInvalidMode is returned for an unknown slope mode.
	ErrInvalidMode = fmt.Errorf("%w: mode must be increasing or decreasing", ErrInvalidConfig)
)

const (
	// DefaultSeqThreshold is the default number of consecutive matching bytes
	// needed to cut a chunk.
	DefaultSeqThreshold = 5

	// DefaultMinBlockSize is the default minimum chunk size (4 KiB).
	DefaultMinBlockSize = 4 * 1024

	// DefaultMaxBlockSize is the default maximum chunk size (16 KiB).
	DefaultMaxBlockSize = 16 * 1024

	// DefaultJumpTrigger is the default number of opposing bytes tolerated
	// before the scanner jumps ahead.
	DefaultJumpTrigger = 50

	// DefaultJumpSize is the default number of bytes skipped by a jump.
	DefaultJumpSize = 256
)

// Mode selects the slope direction the scanner looks for.
type Mode uint8

const (
	// Increasing cuts on runs of non-decreasing bytes.
	Increasing Mode = iota
	// Decreasing cuts on runs of non-increasing bytes.
	Decreasing
)

// String returns the lower-case mode name.
func (m Mode) String() string {
	switch m {
	case Increasing:
		return "increasing"
	case Decreasing:
		return "decreasing"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode parses a mode name. Matching is case-insensitive and accepts
// the short forms "inc" and "dec".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "increasing", "inc":
		return Increasing, nil
	case "decreasing", "dec":
		return Decreasing, nil
	default:
		return 0, fmt.Errorf("%w: got %q", ErrInvalidMode, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m != Increasing && m != Decreasing {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMode, uint8(m))
	}

	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}

// mask returns the byte XORed into both operands of the slope comparison.
// Complementing every byte turns a non-increasing run into a
// non-decreasing one, so a single ">=" serves both modes.
func (m Mode) mask() byte {
	if m == Decreasing {
		return 0xFF
	}

	return 0x00
}

// Params is the plain set of chunking parameters. The zero value is not
// valid; start from DefaultParams.
type Params struct {
	// SeqThreshold is the number of consecutive matching bytes that cuts a chunk.
	SeqThreshold int `json:"seq_threshold" yaml:"seq_threshold"`
	// MinBlockSize is the number of bytes from the chunk start before which no cut occurs.
	MinBlockSize int `json:"min_block_size" yaml:"min_block_size"`
	// MaxBlockSize forces a cut when reached.
	MaxBlockSize int `json:"max_block_size" yaml:"max_block_size"`
	// Mode selects the comparison direction.
	Mode Mode `json:"mode" yaml:"mode"`
	// JumpTrigger is the number of opposing bytes seen before a jump.
	JumpTrigger int `json:"jump_trigger" yaml:"jump_trigger"`
	// JumpSize is the number of bytes skipped by a jump.
	JumpSize int `json:"jump_size" yaml:"jump_size"`
	// BufferSize is the read buffer of the streaming Chunker. Zero selects
	// twice MaxBlockSize (MaxBlockSize when doubling would overflow); smaller
	// values are raised to MaxBlockSize.
	BufferSize int `json:"buffer_size,omitempty" yaml:"buffer_size,omitempty"`
}

// DefaultParams returns the default parameters.
func DefaultParams() Params {
	return Params{
		SeqThreshold: DefaultSeqThreshold,
		MinBlockSize: DefaultMinBlockSize,
		MaxBlockSize: DefaultMaxBlockSize,
		Mode:         Increasing,
		JumpTrigger:  DefaultJumpTrigger,
		JumpSize:     DefaultJumpSize,
	}
}

// validate checks that the parameters are valid.
func (p *Params) validate() error {
	if p.SeqThreshold < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSeqThreshold, p.SeqThreshold)
	}

	if p.MinBlockSize < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidMinBlockSize, p.MinBlockSize)
	}

	if p.MaxBlockSize <= p.MinBlockSize {
		return fmt.Errorf("%w: maxBlockSize (%d), minBlockSize (%d)", ErrMaxBlockSizeTooSmall, p.MaxBlockSize, p.MinBlockSize)
	}

	if p.Mode != Increasing && p.Mode != Decreasing {
		return fmt.Errorf("%w: got %d", ErrInvalidMode, uint8(p.Mode))
	}

	if p.JumpTrigger < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidJumpTrigger, p.JumpTrigger)
	}

	if p.JumpSize < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidJumpSize, p.JumpSize)
	}

	if p.BufferSize < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidBufferSize, p.BufferSize)
	}

	return nil
}

// Config is a validated, immutable parameter set. It is safe for concurrent
// use by any number of scanners and sequences.
type Config struct {
	params Params
	mask   byte
}

// New validates p and returns the resulting Config.
func New(p Params) (*Config, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	// Auto-adjust buffer size if needed
	switch {
	case p.BufferSize == 0 && p.MaxBlockSize <= math.MaxInt/2:
		p.BufferSize = 2 * p.MaxBlockSize
	case p.BufferSize < p.MaxBlockSize:
		p.BufferSize = p.MaxBlockSize
	}

	return &Config{params: p, mask: p.Mode.mask()}, nil
}

// NewConfig applies opts on top of DefaultParams and validates the result.
func NewConfig(opts ...Option) (*Config, error) {
	p := DefaultParams()
	for _, opt := range opts {
		if err := opt(&p); err != nil {
			return nil, err
		}
	}

	return New(p)
}

// MustConfig is like NewConfig but panics on error. It is intended for
// package-level variables and tests.
func MustConfig(opts ...Option) *Config {
	cfg, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Params returns a copy of the validated parameters.
func (c *Config) Params() Params { return c.params }

// SeqThreshold returns the number of consecutive matching bytes needed to cut.
func (c *Config) SeqThreshold() int { return c.params.SeqThreshold }

// MinBlockSize returns the minimum chunk size.
func (c *Config) MinBlockSize() int { return c.params.MinBlockSize }

// MaxBlockSize returns the maximum chunk size.
func (c *Config) MaxBlockSize() int { return c.params.MaxBlockSize }

// Mode returns the slope mode.
func (c *Config) Mode() Mode { return c.params.Mode }

// JumpTrigger returns the opposing byte count that triggers a jump.
func (c *Config) JumpTrigger() int { return c.params.JumpTrigger }

// JumpSize returns the number of bytes skipped by a jump.
func (c *Config) JumpSize() int { return c.params.JumpSize }

// BufferSize returns the read buffer size used by the streaming Chunker.
func (c *Config) BufferSize() int { return c.params.BufferSize }

// String returns a compact description, e.g. for log lines.
func (c *Config) String() string {
	return fmt.Sprintf("seq=%d min=%d max=%d mode=%s jump=%d/%d",
		c.params.SeqThreshold, c.params.MinBlockSize, c.params.MaxBlockSize,
		c.params.Mode, c.params.JumpTrigger, c.params.JumpSize)
}

// Option is a function that adjusts Params before validation.
type Option func(*Params) error

// WithParams replaces all parameters at once.
func WithParams(p Params) Option {
	return func(dst *Params) error {
		*dst = p

		return nil
	}
}

// WithSeqThreshold sets the sequence threshold.
func WithSeqThreshold(n int) Option {
	return func(p *Params) error {
		if n < 1 {
			return fmt.Errorf("%w: got %d", ErrInvalidSeqThreshold, n)
		}

		p.SeqThreshold = n

		return nil
	}
}

// WithMinBlockSize sets the minimum chunk size.
func WithMinBlockSize(size int) Option {
	return func(p *Params) error {
		if size < 1 {
			return fmt.Errorf("%w: got %d", ErrInvalidMinBlockSize, size)
		}

		p.MinBlockSize = size

		return nil
	}
}

// WithMaxBlockSize sets the maximum chunk size. Its ordering against the
// minimum is checked once all options are applied.
func WithMaxBlockSize(size int) Option {
	return func(p *Params) error {
		p.MaxBlockSize = size

		return nil
	}
}

// WithMode sets the slope mode.
func WithMode(m Mode) Option {
	return func(p *Params) error {
		if m != Increasing && m != Decreasing {
			return fmt.Errorf("%w: got %d", ErrInvalidMode, uint8(m))
		}

		p.Mode = m

		return nil
	}
}

// WithJumpTrigger sets the opposing byte count that triggers a jump.
func WithJumpTrigger(n int) Option {
	return func(p *Params) error {
		if n < 1 {
			return fmt.Errorf("%w: got %d", ErrInvalidJumpTrigger, n)
		}

		p.JumpTrigger = n

		return nil
	}
}

// WithJumpSize sets the number of bytes skipped by a jump. Zero only resets
// the counters.
func WithJumpSize(size int) Option {
	return func(p *Params) error {
		if size < 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidJumpSize, size)
		}

		p.JumpSize = size

		return nil
	}
}

// WithBufferSize sets the internal buffer size for the streaming API.
// Values below the maximum block size are raised to it.
func WithBufferSize(size int) Option {
	return func(p *Params) error {
		if size <= 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidBufferSize, size)
		}

		p.BufferSize = size

		return nil
	}
}
