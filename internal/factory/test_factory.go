package factory

import (
	"time"

	"github.com/mcoot/gameroster/internal/dependencies/mocks"
	"github.com/mcoot/gameroster/internal/search"
	"github.com/mcoot/gameroster/internal/sorting"
	"github.com/mcoot/gameroster/internal/storage/memory"
	"github.com/mcoot/gameroster/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MemoryStorage *memory.Storage
	MockClock     *mocks.MockClock
}

// NewTestApp creates an App over in-memory storage with a fixed clock
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, search.NewLinearStrategy(), sorting.NewInsertionStrategy(), testutil.NopLogger())

	return &TestApp{
		App:           app,
		MemoryStorage: store,
		MockClock:     mockClock,
	}
}
