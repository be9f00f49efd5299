package array

import (
	"slices"
	"sync"

	"github.com/roach88/sortviz/internal/ir"
)

// State owns the integer sequence for one run.
type State struct {
	data []int

	mu    sync.Mutex
	owner string // run ID holding the lease, "" when idle
}

// New creates a State holding a copy of values.
func New(values []int) *State {
	data := slices.Clone(values)
	if data == nil {
		data = []int{}
	}
	return &State{data: data}
}

// Len returns the fixed length of the sequence.
func (s *State) Len() int {
	return len(s.data)
}

// Get returns the value at i.
func (s *State) Get(i int) int {
	s.check("get", i)
	return s.data[i]
}

// Set writes v at i.
func (s *State) Set(i, v int) {
	s.check("set", i)
	s.data[i] = v
}

// Swap exchanges the values at i and j.
func (s *State) Swap(i, j int) {
	s.check("swap", i)
	s.check("swap", j)
	s.data[i], s.data[j] = s.data[j], s.data[i]
}

// Snapshot returns a fresh copy of the current contents.
func (s *State) Snapshot() []int {
	return slices.Clone(s.data)
}

// IsSorted reports whether the sequence is non-decreasing.
func (s *State) IsSorted() bool {
	return slices.IsSorted(s.data)
}

func (s *State) check(op string, i int) {
	if i < 0 || i >= len(s.data) {
		panic(ir.NewIndexOutOfRange(op, i, len(s.data)))
	}
}

// Acquire takes the run lease for owner.
// Returns a RUN_IN_FLIGHT error if another run already holds it.
func (s *State) Acquire(owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.owner != "" {
		return ir.NewRunInFlight(s.owner)
	}
	s.owner = owner
	return nil
}

// Release drops the lease if owner holds it. Releasing an idle state or
// another run's lease is a no-op.
func (s *State) Release(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.owner == owner {
		s.owner = ""
	}
}

// Owner returns the run ID holding the lease, or "" when idle.
func (s *State) Owner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owner
}
