// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/zmij/lzma1

package lzma1

// Mode selects the match-finder family.
type Mode int

const (
	// ModeBT selects the binary-tree match finder (BT2/BT3/BT4 depending on
	// NumHashBytes). Normative per the LZMA1 format's reference encoder;
	// produces better ratios at higher CPU cost.
	ModeBT Mode = iota
	// ModeHC selects the hash-chain match finder (HC4). Faster, lower ratio.
	ModeHC
)

// Algo selects the parser used to turn match-finder output into symbols.
type Algo int

const (
	// AlgoNormal selects the price-based optimal parser (optimal.go).
	AlgoNormal Algo = iota
	// AlgoFast selects the greedy parser (fastparser.go).
	AlgoFast
)

// Options configures an Encoder. Zero value is not valid; use DefaultOptions
// or NewOptions(level).
type Options struct {
	// Level is a convenience preset (0-9) applied by NewOptions; it has no
	// effect once Options has been constructed and individually edited.
	Level int

	// LC is the number of high bits of the previous byte used as literal
	// context (0-8, default 3).
	LC int
	// LP is the number of low bits of the current position used as literal
	// position state (0-4, default 0).
	LP int
	// PB is the number of low bits of the current position used as the
	// general position state (0-4, default 2).
	PB int
	// FB is the "fast bytes" count (5-273, default 32). The fast parser
	// takes a rep or match of at least this length without comparing it
	// against alternatives. The optimal parser uses FB only as the number of
	// length emissions between length-price refreshes; it does not stop its
	// search at this length.
	FB int

	// DictSize is the sliding window / dictionary size in bytes
	// (4KiB-1GiB, default 16MiB).
	DictSize uint32

	// MFCycles bounds the match finder's search effort per position
	// (1 - 2^30, default approximately 16+FB/2).
	MFCycles uint32

	// Mode selects the match-finder family (default ModeBT).
	Mode Mode
	// Algo selects the parser (default AlgoNormal).
	Algo Algo

	// NumHashBytes selects the BT matcher variant (2, 3 or 4); ignored in
	// ModeHC, which always uses a 4-byte hash chain. Default 4.
	NumHashBytes int

	// WriteEndMark, if true, emits the LZMA end-of-stream marker (a
	// distance-0xFFFFFFFF match) after the last symbol, and writes the
	// container's uncompressed-size header field as the all-ones "unknown
	// size" sentinel instead of UncompressedSize. Recommended whenever the
	// total input size is not known before encoding starts; see
	// SPEC_FULL.md.
	WriteEndMark bool

	// UncompressedSize is the exact total number of bytes that will be fed
	// to the Encoder, written verbatim into the container header. Ignored
	// when WriteEndMark is true. Getting this wrong produces a header a
	// decoder will reject or truncate against; callers that don't know the
	// size up front should set WriteEndMark instead.
	UncompressedSize uint64

	// Allocator supplies backing storage for the match finder's tables and
	// the literal probability table. Nil uses plain make().
	Allocator Allocator
}

// levelPreset holds the parameters NewOptions applies for one preset level.
type levelPreset struct {
	dictSize uint32
	fb       int
	mode     Mode
	algo     Algo
}

// presetLevels mirrors the LZMA reference encoder's per-level defaults:
// low levels trade ratio for speed (hash chain, greedy parse, small
// dictionary and lookahead), high levels maximize ratio (binary tree,
// optimal parse, large dictionary and lookahead).
var presetLevels = [10]levelPreset{
	{dictSize: 1 << 16, fb: 16, mode: ModeHC, algo: AlgoFast},    // 0
	{dictSize: 1 << 20, fb: 16, mode: ModeHC, algo: AlgoFast},    // 1
	{dictSize: 1 << 21, fb: 32, mode: ModeHC, algo: AlgoFast},    // 2
	{dictSize: 1 << 22, fb: 32, mode: ModeBT, algo: AlgoFast},    // 3
	{dictSize: 1 << 22, fb: 32, mode: ModeBT, algo: AlgoNormal},  // 4
	{dictSize: 1 << 24, fb: 32, mode: ModeBT, algo: AlgoNormal},  // 5
	{dictSize: 1 << 23, fb: 64, mode: ModeBT, algo: AlgoNormal},  // 6
	{dictSize: 1 << 24, fb: 64, mode: ModeBT, algo: AlgoNormal},  // 7
	{dictSize: 1 << 25, fb: 64, mode: ModeBT, algo: AlgoNormal},  // 8
	{dictSize: 1 << 26, fb: 273, mode: ModeBT, algo: AlgoNormal}, // 9
}

// DefaultOptions returns Options for level 5 (lc=3, lp=0, pb=2, 16MiB
// dictionary, BT4, optimal parser), the reference encoder's default.
func DefaultOptions() *Options {
	return NewOptions(5)
}

// NewOptions returns Options preset for the given level (0-9, clamped into
// range) with lc=3, lp=0, pb=2 and MFCycles derived from FB.
func NewOptions(level int) *Options {
	if level < 0 {
		level = 0
	}
	if level > 9 {
		level = 9
	}
	p := presetLevels[level]
	return &Options{
		Level:        level,
		LC:           3,
		LP:           0,
		PB:           2,
		FB:           p.fb,
		DictSize:     p.dictSize,
		MFCycles:     uint32(16 + p.fb/2),
		Mode:         p.mode,
		Algo:         p.algo,
		NumHashBytes: 4,
	}
}

// Validate checks every field against its documented bounds and returns a
// *ConfigError for the first field found out of range, wrapping
// ErrConfigOutOfRange. It allocates nothing; callers should call this before
// constructing an Encoder.
func (o *Options) Validate() error {
	if err := configRange("LC", o.LC, 0, litContextBitsMax); err != nil {
		return err
	}
	if err := configRange("LP", o.LP, 0, litPosBitsMax); err != nil {
		return err
	}
	if o.LC+o.LP > litContextBitsMax {
		return &ConfigError{Field: "LC+LP", Value: o.LC + o.LP, Min: 0, Max: litContextBitsMax}
	}
	if err := configRange("PB", o.PB, 0, numPosBitsMax); err != nil {
		return err
	}
	if err := configRange("FB", o.FB, 5, matchMaxLen); err != nil {
		return err
	}
	if err := configRange("DictSize", int(o.DictSize), 1<<12, 1<<30); err != nil {
		return err
	}
	if err := configRange("MFCycles", int(o.MFCycles), 1, 1<<30); err != nil {
		return err
	}
	if o.Mode != ModeBT && o.Mode != ModeHC {
		return &ConfigError{Field: "Mode", Value: int(o.Mode), Min: int(ModeBT), Max: int(ModeHC)}
	}
	if o.Algo != AlgoNormal && o.Algo != AlgoFast {
		return &ConfigError{Field: "Algo", Value: int(o.Algo), Min: int(AlgoNormal), Max: int(AlgoFast)}
	}
	if err := configRange("NumHashBytes", o.NumHashBytes, 2, 4); err != nil {
		return err
	}
	return nil
}
