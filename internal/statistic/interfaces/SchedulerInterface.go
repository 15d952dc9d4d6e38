package interfaces

import "time"

type SchedulerInterface interface {
	Init()
	Stop()
	Restore() error
	Persist() error
	// LastRuns returns the last fire time of every registered job, keyed by
	// job name. Jobs that never ran are absent.
	LastRuns() map[string]time.Time
}
