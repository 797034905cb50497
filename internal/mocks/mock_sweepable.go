package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockSweepable is a mock implementation of cache.Sweepable
type MockSweepable struct {
	mock.Mock
}

// Cleanup mocks the Cleanup method of cache.Sweepable
func (m *MockSweepable) Cleanup() int {
	args := m.Called()
	return args.Int(0)
}

// Size mocks the Size method of cache.Sweepable
func (m *MockSweepable) Size() int {
	args := m.Called()
	return args.Int(0)
}
