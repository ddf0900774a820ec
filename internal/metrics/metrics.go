// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Account metrics
	IncUserRegistered()
	IncLoginSucceeded()
	IncLoginFailed()

	// Pantry metrics
	IncPantryItemAdded()
	IncPantryItemRemoved()

	// Feedback metrics
	IncFeedbackBatch()

	// Recipe metrics
	IncRecipeCacheHit()
	IncRecipeCacheMiss()
	IncRecipeCreated()
	IncRecipeUpdated()
	IncRecipeDeleted()

	// Edge metrics
	IncRateLimited()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
