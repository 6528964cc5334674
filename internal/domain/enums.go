package domain

// Tier identifies one of the two parsing service lines.
type Tier string

const (
	TierFast     Tier = "fast"
	TierAccurate Tier = "accurate"
)

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	return t == TierFast || t == TierAccurate
}

// Backend identifies the concrete engine variant serving a tier.
// It is selected once per tier at startup and never changes mid-run.
type Backend string

const (
	BackendFastCPU               Backend = "fast-cpu"
	BackendMultimodalAccelerated Backend = "multimodal-accelerated"
	BackendMultimodalCPUFallback Backend = "multimodal-cpu-fallback"
)

// AccuracyTier is the quality label stamped on results, derived from
// the backend that produced them.
type AccuracyTier string

const (
	AccuracyStandard AccuracyTier = "standard"
	AccuracyHigh     AccuracyTier = "high"
	AccuracyVeryHigh AccuracyTier = "very-high"
)

// AccuracyFor maps a backend to its accuracy tier label.
func AccuracyFor(b Backend) AccuracyTier {
	switch b {
	case BackendMultimodalAccelerated:
		return AccuracyVeryHigh
	case BackendMultimodalCPUFallback:
		return AccuracyHigh
	default:
		return AccuracyStandard
	}
}

// QueuePolicy controls what happens to submissions that arrive while
// all of a tier's worker slots are busy.
type QueuePolicy string

const (
	// QueuePolicyBlock queues the caller until a slot frees or the
	// request deadline elapses.
	QueuePolicyBlock QueuePolicy = "block"
	// QueuePolicyReject fails the submission immediately when no slot
	// is free.
	QueuePolicyReject QueuePolicy = "reject"
)
