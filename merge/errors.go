package merge

import "errors"

var (
	// ErrNilLineages indicates a nil *Lineages was passed to a merge.
	ErrNilLineages = errors.New("merge: lineages are nil")

	// ErrTooFewLineages indicates a binary merge on fewer than two lineages.
	ErrTooFewLineages = errors.New("merge: binary merge needs at least two lineages")

	// ErrSpectrumMismatch indicates that the spectrum does not account for
	// exactly the active lineages, or holds a negative count.
	ErrSpectrumMismatch = errors.New("merge: spectrum does not match active lineages")

	// ErrNilOperation indicates a nil combining operation or parent constructor.
	ErrNilOperation = errors.New("merge: operation is nil")

	// ErrNilRand indicates a merge was called without a random source.
	ErrNilRand = errors.New("merge: rng is required")
)

// Method tags for error context.
const (
	methodBinary               = "Binary"
	methodSimultaneousMultiple = "SimultaneousMultiple"
)
