package division

const (
	// CancellationCheckInterval is the number of loop iterations between two
	// context checks in iterative strategies. Checking on every iteration
	// dominates the cost of a small subtraction.
	CancellationCheckInterval = 1024

	// ProgressReportThreshold is the minimum progress increase (1%) before a
	// new progress update is emitted.
	ProgressReportThreshold = 0.01
)
