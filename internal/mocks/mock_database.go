package mocks

import (
	"context"

	"OrgSettings/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockDatabaseConnection is a mock implementation of logger.DatabaseConnection
type MockDatabaseConnection struct {
	mock.Mock
}

// InsertLog mocks the InsertLog method of logger.DatabaseConnection
func (m *MockDatabaseConnection) InsertLog(ctx context.Context, entry *models.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// Close mocks the Close method of logger.DatabaseConnection
func (m *MockDatabaseConnection) Close() error {
	args := m.Called()
	return args.Error(0)
}
