package reminder

// Outcome summarizes one dispatcher run.
type Outcome struct {
	RunID  string
	Window RunWindow

	EventsMatched int
	EventsSkipped int

	RemindersSent   int
	RemindersFailed int

	// Committed tells whether the watermark advanced, and CommitType
	// which log entry was written. A run with events but zero
	// successful sends does not commit; the next run rescans the same
	// window.
	Committed  bool
	CommitType string
}
