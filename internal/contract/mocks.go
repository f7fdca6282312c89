package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockMatchSource is a testify mock for MatchSource.
type MockMatchSource struct {
	mock.Mock
}

var _ MatchSource = &MockMatchSource{} // Compile-time check

// Fetch implements the MatchSource interface.
func (m *MockMatchSource) Fetch(ctx context.Context, location string) ([]byte, error) {
	ret := m.Called(ctx, location)
	data, _ := ret.Get(0).([]byte)
	return data, ret.Error(1)
}
