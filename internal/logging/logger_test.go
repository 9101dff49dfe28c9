package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetupLevels(t *testing.T) {
	logger, atom, err := Setup(true)
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Equal(t, zap.DebugLevel, atom.Level())

	logger, atom, err = Setup(false)
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Equal(t, zap.InfoLevel, atom.Level())
}

func TestComponent(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	Component(zap.New(core), "bot").Info("hello")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "bot", logs.All()[0].ContextMap()["component"])
}

func TestComponentNilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		Component(nil, "x").Info("dropped")
	})
}
