package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) IncUserRegistered()    {}
func (n *NoopRecorder) IncLoginSucceeded()    {}
func (n *NoopRecorder) IncLoginFailed()       {}
func (n *NoopRecorder) IncPantryItemAdded()   {}
func (n *NoopRecorder) IncPantryItemRemoved() {}
func (n *NoopRecorder) IncFeedbackBatch()     {}
func (n *NoopRecorder) IncRecipeCacheHit()    {}
func (n *NoopRecorder) IncRecipeCacheMiss()   {}
func (n *NoopRecorder) IncRecipeCreated()     {}
func (n *NoopRecorder) IncRecipeUpdated()     {}
func (n *NoopRecorder) IncRecipeDeleted()     {}
func (n *NoopRecorder) IncRateLimited()       {}
