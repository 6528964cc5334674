package hardware

import "tierparse/internal/domain"

// SelectBackend maps a tier and a hardware profile to the engine
// variant serving that tier. It is a pure function: the decision is
// computed once per tier at startup, logged by the caller, and never
// revisited per request.
//
// The fast tier is CPU-only regardless of hardware. The accurate tier
// runs accelerated only when an accelerator is present with at least
// minAccelMemoryMB of memory; otherwise it falls back to CPU.
func SelectBackend(tier domain.Tier, profile domain.HardwareProfile, minAccelMemoryMB int64) domain.Backend {
	if tier == domain.TierFast {
		return domain.BackendFastCPU
	}
	if profile.AcceleratorPresent && profile.AcceleratorMemoryMB >= minAccelMemoryMB {
		return domain.BackendMultimodalAccelerated
	}
	return domain.BackendMultimodalCPUFallback
}
