package sim

// Tuning constants for the fixed-step loop. Rates are per second, durations
// in milliseconds, distances in world units (one unit per grid cell).
const (
	defaultTickRate        = 60
	defaultCatchUpMaxSteps = 5
	defaultWorldWidth      = 64
	defaultWorldHeight     = 64

	agentSpeed   = 5.0
	hostileSpeed = 1.0

	attackRange    = 2.0
	waypointRadius = 0.2
	arriveEpsilon  = 0.1

	thinkDurationMS    = 2000
	workDurationMS     = 3000
	completeDurationMS = 1500

	// Auto-engagement retries before giving the caller back control.
	maxAutoResolveAttempts = 3

	// Positions are clamped this far inside the far edge so the containing
	// cell index stays in bounds.
	positionMargin = 0.001

	// Task text meaning "nothing assigned"; arrival with this task goes to
	// idle rather than working.
	taskIdlePlaceholder = "idle"
)
