package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered    uint64
	LoginsSucceeded    uint64
	LoginsFailed       uint64
	PantryItemsAdded   uint64
	PantryItemsRemoved uint64
	FeedbackBatches    uint64
	RecipeCacheHits    uint64
	RecipeCacheMisses  uint64
	RecipesCreated     uint64
	RecipesUpdated     uint64
	RecipesDeleted     uint64
	RateLimited        uint64
}

// InMemoryRecorder stores counters in memory. It backs /metrics and is
// handy in tests.
type InMemoryRecorder struct {
	usersRegistered    atomic.Uint64
	loginsSucceeded    atomic.Uint64
	loginsFailed       atomic.Uint64
	pantryItemsAdded   atomic.Uint64
	pantryItemsRemoved atomic.Uint64
	feedbackBatches    atomic.Uint64
	recipeCacheHits    atomic.Uint64
	recipeCacheMisses  atomic.Uint64
	recipesCreated     atomic.Uint64
	recipesUpdated     atomic.Uint64
	recipesDeleted     atomic.Uint64
	rateLimited        atomic.Uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:    m.usersRegistered.Load(),
		LoginsSucceeded:    m.loginsSucceeded.Load(),
		LoginsFailed:       m.loginsFailed.Load(),
		PantryItemsAdded:   m.pantryItemsAdded.Load(),
		PantryItemsRemoved: m.pantryItemsRemoved.Load(),
		FeedbackBatches:    m.feedbackBatches.Load(),
		RecipeCacheHits:    m.recipeCacheHits.Load(),
		RecipeCacheMisses:  m.recipeCacheMisses.Load(),
		RecipesCreated:     m.recipesCreated.Load(),
		RecipesUpdated:     m.recipesUpdated.Load(),
		RecipesDeleted:     m.recipesDeleted.Load(),
		RateLimited:        m.rateLimited.Load(),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() { m.usersRegistered.Add(1) }

// IncLoginSucceeded increments the successful login counter.
func (m *InMemoryRecorder) IncLoginSucceeded() { m.loginsSucceeded.Add(1) }

// IncLoginFailed increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailed() { m.loginsFailed.Add(1) }

// IncPantryItemAdded increments the pantry addition counter.
func (m *InMemoryRecorder) IncPantryItemAdded() { m.pantryItemsAdded.Add(1) }

// IncPantryItemRemoved increments the pantry removal counter.
func (m *InMemoryRecorder) IncPantryItemRemoved() { m.pantryItemsRemoved.Add(1) }

// IncFeedbackBatch increments the stored feedback batch counter.
func (m *InMemoryRecorder) IncFeedbackBatch() { m.feedbackBatches.Add(1) }

// IncRecipeCacheHit increments the recipe cache hit counter.
func (m *InMemoryRecorder) IncRecipeCacheHit() { m.recipeCacheHits.Add(1) }

// IncRecipeCacheMiss increments the recipe cache miss counter.
func (m *InMemoryRecorder) IncRecipeCacheMiss() { m.recipeCacheMisses.Add(1) }

// IncRecipeCreated increments the recipe created counter.
func (m *InMemoryRecorder) IncRecipeCreated() { m.recipesCreated.Add(1) }

// IncRecipeUpdated increments the recipe updated counter.
func (m *InMemoryRecorder) IncRecipeUpdated() { m.recipesUpdated.Add(1) }

// IncRecipeDeleted increments the recipe deleted counter.
func (m *InMemoryRecorder) IncRecipeDeleted() { m.recipesDeleted.Add(1) }

// IncRateLimited increments the rejected-by-rate-limit counter.
func (m *InMemoryRecorder) IncRateLimited() { m.rateLimited.Add(1) }
