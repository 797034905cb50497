package main

import (
	"context"
	"testing"
	"time"

	"OrgSettings/internal/cache"
	"OrgSettings/internal/config"
	"OrgSettings/internal/logger"
	"OrgSettings/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClearCache_LogsDroppedEntries(t *testing.T) {
	settingsCache := cache.NewMemoryCache()
	settingsCache.Set("settings:org-1", "a")
	settingsCache.SetWithTTL("dashboard:org-1", 1, time.Hour)

	mockLogger := new(mocks.MockLogger)
	mockLogger.On("LogInfo", mock.Anything, logger.OpCacheClear, "Cache cleared",
		mock.MatchedBy(func(metadata map[string]interface{}) bool {
			return metadata["entries_dropped"] == 2
		}),
	).Once()

	assert.Equal(t, 2, clearCache(context.Background(), settingsCache, mockLogger))
	assert.Equal(t, 0, settingsCache.Size())
	mockLogger.AssertExpectations(t)
}

func TestInitializeLogger_ConsoleWithoutDatabase(t *testing.T) {
	appLogger, err := initializeLogger(&config.Config{LogLevel: "info"})
	require.NoError(t, err)
	assert.IsType(t, &logger.ConsoleLogger{}, appLogger)
}
