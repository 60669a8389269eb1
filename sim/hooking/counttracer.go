package hooking

import (
	"sync"
)

// PosCountTracer counts how many times each hook position is triggered.
type PosCountTracer struct {
	lock     sync.Mutex
	posNames []string
	posCount map[string]uint64
	lastItem map[string]any
}

// NewPosCountTracer creates a new PosCountTracer.
func NewPosCountTracer() *PosCountTracer {
	return &PosCountTracer{
		posCount: make(map[string]uint64),
		lastItem: make(map[string]any),
	}
}

// Func counts the position of the hook.
func (t *PosCountTracer) Func(ctx HookCtx) {
	t.lock.Lock()
	defer t.lock.Unlock()

	name := ctx.Pos.Name

	if _, ok := t.posCount[name]; !ok {
		t.posNames = append(t.posNames, name)
	}

	t.posCount[name]++
	t.lastItem[name] = ctx.Item
}

// GetPosNames returns the positions seen, in the order they were first seen.
func (t *PosCountTracer) GetPosNames() []string {
	t.lock.Lock()
	defer t.lock.Unlock()

	return append([]string(nil), t.posNames...)
}

// GetPosCount returns the number of times a position was triggered.
func (t *PosCountTracer) GetPosCount(posName string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.posCount[posName]
}

// LastItem returns the item of the last hook triggered at a position.
func (t *PosCountTracer) LastItem(posName string) any {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.lastItem[posName]
}
