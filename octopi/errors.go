package octopi

import "errors"

// Configuration errors. They are returned before any part of the fabric is
// wired.
var (
	ErrNoCoreComplexes   = errors.New("at least one core complex is required")
	ErrNoCores           = errors.New("the board has no core")
	ErrUnevenPartition   = errors.New("cores cannot be split evenly")
	ErrNoMemPorts        = errors.New("the board has no memory port")
	ErrOverlappingRanges = errors.New("memory port address ranges overlap")
	ErrInvalidSizing     = errors.New("invalid cache sizing")
)

// Build errors.
var (
	// ErrStageConsumed is returned when a build stage is used after the build
	// has moved on, or used twice.
	ErrStageConsumed = errors.New("build stage already consumed")

	// ErrBuildAborted is returned when a stage is used after an earlier stage
	// of the same build failed.
	ErrBuildAborted = errors.New("build aborted by an earlier failure")
)
