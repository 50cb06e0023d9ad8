package block

import "errors"

var (
	// ErrBadOffset indicates from_offset was asked to resolve a pool offset
	// that does not land on a valid allocation boundary (nonzero residual,
	// offset before zone 0, or offset 0).
	ErrBadOffset = errors.New("block: offset does not resolve to a valid allocation")

	// ErrUninitializedRun indicates a run chunk whose block_size is 0 was
	// addressed before being initialized.
	ErrUninitializedRun = errors.New("block: run has zero block_size")
)
