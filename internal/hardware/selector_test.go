package hardware_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tierparse/internal/domain"
	"tierparse/internal/hardware"
)

const minAccelMemoryMB = 6144

func TestSelectBackend_FastTierIgnoresHardware(t *testing.T) {
	profiles := []domain.HardwareProfile{
		{AcceleratorPresent: false, Cores: 4},
		{AcceleratorPresent: true, AcceleratorMemoryMB: 24576, Cores: 16},
		{AcceleratorPresent: true, AcceleratorMemoryMB: 2048, Cores: 8},
	}
	for _, p := range profiles {
		assert.Equal(t, domain.BackendFastCPU, hardware.SelectBackend(domain.TierFast, p, minAccelMemoryMB))
	}
}

func TestSelectBackend_AccurateTier(t *testing.T) {
	tests := []struct {
		name    string
		profile domain.HardwareProfile
		want    domain.Backend
	}{
		{
			name:    "no accelerator falls back to CPU",
			profile: domain.HardwareProfile{AcceleratorPresent: false, Cores: 8},
			want:    domain.BackendMultimodalCPUFallback,
		},
		{
			name:    "accelerator below memory budget falls back to CPU",
			profile: domain.HardwareProfile{AcceleratorPresent: true, AcceleratorMemoryMB: 4096, Cores: 8},
			want:    domain.BackendMultimodalCPUFallback,
		},
		{
			name:    "accelerator at memory budget runs accelerated",
			profile: domain.HardwareProfile{AcceleratorPresent: true, AcceleratorMemoryMB: 6144, Cores: 8},
			want:    domain.BackendMultimodalAccelerated,
		},
		{
			name:    "accelerator above memory budget runs accelerated",
			profile: domain.HardwareProfile{AcceleratorPresent: true, AcceleratorMemoryMB: 24576, Cores: 16},
			want:    domain.BackendMultimodalAccelerated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hardware.SelectBackend(domain.TierAccurate, tt.profile, minAccelMemoryMB)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectBackend_IsPure(t *testing.T) {
	profile := domain.HardwareProfile{AcceleratorPresent: true, AcceleratorMemoryMB: 8192, Cores: 8}
	first := hardware.SelectBackend(domain.TierAccurate, profile, minAccelMemoryMB)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, hardware.SelectBackend(domain.TierAccurate, profile, minAccelMemoryMB))
	}
}
