package octopi

import (
	"fmt"

	"github.com/sarchlab/octopi/board"
	"github.com/sarchlab/octopi/sim/hooking"
	"github.com/sirupsen/logrus"
)

// Stage is the progress of a fabric build.
type Stage int

// Stages, in the order a build goes through them.
const (
	Uninitialized Stage = iota
	NetworkCreated
	CoreComplexesAssigned
	DirectoriesWired
	DMAWired
	BuffersConfigured
	Aborted
)

var stageNames = []string{
	"Uninitialized",
	"NetworkCreated",
	"CoreComplexesAssigned",
	"DirectoriesWired",
	"DMAWired",
	"BuffersConfigured",
	"Aborted",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("Stage(%d)", int(s))
	}

	return stageNames[s]
}

// build is the state shared by the stage values of one fabric build.
type build struct {
	hierarchy *Hierarchy
	board     board.Board
	stage     Stage

	memPorts       []board.MemPort
	cacheLineSize  int
	network        *octopiNetwork
	cores          []board.Core
	coreComplexes  []*CoreComplex
	directories    []*Directory
	dmaControllers []*DMAController
}

func (b *build) expect(s Stage) error {
	if b == nil {
		return fmt.Errorf("%w: stage was not created by Begin", ErrStageConsumed)
	}

	switch b.stage {
	case s:
		return nil
	case Aborted:
		return fmt.Errorf("%w: %s", ErrBuildAborted, b.hierarchy.Name())
	default:
		return fmt.Errorf("%w: %s is at %s, not %s", ErrStageConsumed,
			b.hierarchy.Name(), b.stage, s)
	}
}

// finish moves the build to the next stage, or aborts it if the stage
// failed.
func (b *build) finish(next Stage, err error) error {
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"hierarchy": b.hierarchy.Name(),
			"stage":     b.stage,
		}).WithError(err).Debug("build aborted")

		b.stage = Aborted
		b.hierarchy.InvokeHook(hooking.HookCtx{
			Domain: b.hierarchy,
			Pos:    HookPosBuildAborted,
			Item:   err,
			Detail: b.board,
		})

		return err
	}

	b.stage = next

	logrus.WithFields(logrus.Fields{
		"hierarchy": b.hierarchy.Name(),
		"stage":     next,
	}).Debug("stage reached")

	b.hierarchy.InvokeHook(hooking.HookCtx{
		Domain: b.hierarchy,
		Pos:    HookPosStageReached,
		Item:   next,
		Detail: b.board,
	})

	return nil
}

// NetworkCreatedStage is a build whose network and cross-complex router
// exist.
type NetworkCreatedStage struct {
	b *build
}

// Stage returns the current stage of the build the value belongs to.
func (s NetworkCreatedStage) Stage() Stage { return stageOf(s.b) }

// AssignCoreComplexes partitions the board's cores into core complexes and
// hangs each complex off the hub.
func (s NetworkCreatedStage) AssignCoreComplexes() (
	CoreComplexesAssignedStage, error,
) {
	b := s.b
	if err := b.expect(NetworkCreated); err != nil {
		return CoreComplexesAssignedStage{}, err
	}

	err := b.finish(CoreComplexesAssigned, b.assignCoreComplexes())
	if err != nil {
		return CoreComplexesAssignedStage{}, err
	}

	return CoreComplexesAssignedStage{b: b}, nil
}

// CoreComplexesAssignedStage is a build whose core complexes are wired.
type CoreComplexesAssignedStage struct {
	b *build
}

// Stage returns the current stage of the build the value belongs to.
func (s CoreComplexesAssignedStage) Stage() Stage { return stageOf(s.b) }

// WireDirectories creates a directory and a directory router per memory port
// and links them.
func (s CoreComplexesAssignedStage) WireDirectories() (
	DirectoriesWiredStage, error,
) {
	b := s.b
	if err := b.expect(CoreComplexesAssigned); err != nil {
		return DirectoriesWiredStage{}, err
	}

	err := b.finish(DirectoriesWired, b.wireDirectories())
	if err != nil {
		return DirectoriesWiredStage{}, err
	}

	return DirectoriesWiredStage{b: b}, nil
}

// DirectoriesWiredStage is a build whose directories are wired.
type DirectoriesWiredStage struct {
	b *build
}

// Stage returns the current stage of the build the value belongs to.
func (s DirectoriesWiredStage) Stage() Stage { return stageOf(s.b) }

// WireDMA attaches a DMA controller per DMA port of the board. It does
// nothing if the board has no DMA port.
func (s DirectoriesWiredStage) WireDMA() (DMAWiredStage, error) {
	b := s.b
	if err := b.expect(DirectoriesWired); err != nil {
		return DMAWiredStage{}, err
	}

	err := b.finish(DMAWired, b.wireDMA())
	if err != nil {
		return DMAWiredStage{}, err
	}

	return DMAWiredStage{b: b}, nil
}

// DMAWiredStage is a build with every controller registered.
type DMAWiredStage struct {
	b *build
}

// Stage returns the current stage of the build the value belongs to.
func (s DMAWiredStage) Stage() Stage { return stageOf(s.b) }

// ConfigureBuffers validates the network, allocates its message buffers, and
// connects the system port. It returns the finished fabric.
func (s DMAWiredStage) ConfigureBuffers() (*Fabric, error) {
	b := s.b
	if err := b.expect(DMAWired); err != nil {
		return nil, err
	}

	f, err := b.configureBuffers()
	if err := b.finish(BuffersConfigured, err); err != nil {
		return nil, err
	}

	return f, nil
}

func stageOf(b *build) Stage {
	if b == nil {
		return Uninitialized
	}

	return b.stage
}
