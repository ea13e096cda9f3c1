package engine

import "errors"

var (
	// ErrEmptyInput is returned when a packer is built without blocks.
	ErrEmptyInput = errors.New("no blocks to pack")

	// ErrInvalidBlock is returned for blocks with a non-positive dimension.
	ErrInvalidBlock = errors.New("block width and height must be positive")

	// ErrInvalidBinSize is returned for a fixed bin with a non-positive dimension.
	ErrInvalidBinSize = errors.New("bin width and height must be positive")

	// ErrUnsatisfiableGrowth is returned when the growing bin cannot be
	// extended to hold a block.
	ErrUnsatisfiableGrowth = errors.New("cannot grow bin to fit block")

	// ErrUnknownMode is returned for a packing mode the engine does not know.
	ErrUnknownMode = errors.New("unknown packing mode")
)
