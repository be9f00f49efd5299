package testutil

// FixedRunIDGenerator returns the same run ID every time.
//
// The harness uses it so every run of a scenario logs under one ID and
// golden output never depends on wall-clock UUIDs.
//
// Unlike engine.FixedGenerator, which hands out IDs in sequence and panics
// when exhausted, this generator never runs out.
//
// Thread-safety: stateless, safe for concurrent use.
type FixedRunIDGenerator struct {
	id string
}

// NewFixedRunIDGenerator creates a generator for id.
// An empty id becomes "test-run-default".
func NewFixedRunIDGenerator(id string) *FixedRunIDGenerator {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedRunIDGenerator{id: id}
}

// Generate implements engine.RunIDGenerator.
func (g *FixedRunIDGenerator) Generate() string {
	return g.id
}
