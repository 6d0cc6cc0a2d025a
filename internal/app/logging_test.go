package app

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/linewatch/internal/config"
)

func TestNewLogger(t *testing.T) {
	var out bytes.Buffer
	logger, err := NewLogger(config.LoggingConfig{Level: "info"}, &out)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown")
	require.NoError(t, logger.Sync())

	require.NotContains(t, out.String(), "hidden")
	require.Contains(t, out.String(), "INFO")
	require.Contains(t, out.String(), "shown")

	_, err = NewLogger(config.LoggingConfig{Level: "loud"}, &out)
	require.Error(t, err)
}

func TestOperationError(t *testing.T) {
	err := NewOperationError("old", "7", ErrLineOutOfRange)
	require.Equal(t, "old 7: line out of range", err.Error())
	require.True(t, errors.Is(err, ErrLineOutOfRange))

	require.Equal(t, "reload", NewOperationError("reload", "", nil).Error())
}
