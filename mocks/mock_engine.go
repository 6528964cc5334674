package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tierparse/internal/port"
)

// MockEngine is a mock implementation of port.Engine.
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Parse(ctx context.Context, input port.EngineInput) (*port.EngineOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.EngineOutput), args.Error(1)
}
