package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewProfiler_Disabled(t *testing.T) {
	p, err := NewProfiler(ProfilerConfig{ApplicationName: "agro-backend"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_RequiresAddressAndName(t *testing.T) {
	_, err := NewProfiler(ProfilerConfig{Enabled: true, ApplicationName: "agro"}, nil)
	assert.ErrorIs(t, err, errProfilerAddress)

	_, err = NewProfiler(ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"}, nil)
	assert.ErrorIs(t, err, errProfilerAppName)
}
