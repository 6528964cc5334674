package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tierparse/internal/domain"
)

// MockParseService is a mock implementation of service.ParseService.
type MockParseService struct {
	mock.Mock
}

func (m *MockParseService) Parse(ctx context.Context, tier domain.Tier, data []byte, filename string) (*domain.ParseResult, error) {
	args := m.Called(ctx, tier, data, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParseResult), args.Error(1)
}
