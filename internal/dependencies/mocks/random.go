package mocks

import (
	"github.com/mcoot/blackbox-go/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int
	fallback    int

	// IDResults is a queue of results to return from ID
	IDResults []string
	idIndex   int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result reduced modulo n. Once the queue is
// empty it counts upwards instead, so rejection sampling loops still finish.
func (r *MockRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	if r.intnIndex >= len(r.IntnResults) {
		result := r.fallback % n
		r.fallback++
		return result
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return result % n
}

// ID returns the next queued result, or empty string if none remaining
func (r *MockRandom) ID() string {
	if r.idIndex >= len(r.IDResults) {
		return ""
	}
	result := r.IDResults[r.idIndex]
	r.idIndex++
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// QueueMarkers queues row/col draws that place markers at the given interior
// coordinates (1-indexed, as on the board)
func (r *MockRandom) QueueMarkers(coords ...[2]int) {
	for _, c := range coords {
		r.QueueIntn(c[0]-1, c[1]-1)
	}
}

// QueueID adds values to the ID result queue
func (r *MockRandom) QueueID(values ...string) {
	r.IDResults = append(r.IDResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
	r.fallback = 0
	r.IDResults = nil
	r.idIndex = 0
}
