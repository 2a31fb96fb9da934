package parameter

import "time"

// System Loop Timing
const (
	// TickInterval is the sleep between two ticks of one system
	TickInterval = 10 * time.Millisecond

	// FetchBackoff is the wait before a failed fetch is retried
	FetchBackoff = 5 * time.Second

	// FrameInterval is the demo renderer redraw interval (~30 FPS)
	FrameInterval = 33 * time.Millisecond
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "kristall.log"
)
