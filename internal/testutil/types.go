package testutil

import "time"

// ExecutionRecord holds the start and end times of one synth run.
type ExecutionRecord struct {
	Start time.Time
	End   time.Time
}
