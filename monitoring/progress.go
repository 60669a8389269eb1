package monitoring

import (
	"sync"
	"time"
)

// A ProgressBar tracks how many steps of a long task are done.
type ProgressBar struct {
	sync.Mutex
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
	Current   string    `json:"current"`
}

// IncrementFinished add a certain amount to finished element.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
}

// Advance marks one more step as finished and names the step reached.
func (b *ProgressBar) Advance(step string) {
	b.Lock()
	defer b.Unlock()

	b.Finished++
	b.Current = step
}
