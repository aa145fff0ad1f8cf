package factory

import (
	"github.com/mcoot/metrogame/internal/dependencies/mocks"
	"github.com/mcoot/metrogame/internal/storage/memory"
	"github.com/mcoot/metrogame/internal/testutil"
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
	mockClock := mocks.NewDefaultMockClock()
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(memory.New(), mockClock, mockRandom, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
