package factory

import (
	"time"

	"github.com/mcoot/blackbox-go/internal/dependencies/mocks"
	"github.com/mcoot/blackbox-go/internal/storage/memory"
	"github.com/mcoot/blackbox-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// QueueGame queues the ID and marker draws for the next game created.
// Markers are interior coordinates, 1-indexed as on the board.
func (t *TestApp) QueueGame(id string, markers ...[2]int) {
	t.MockRandom.QueueID(id)
	t.MockRandom.QueueMarkers(markers...)
}
