package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depman/internal/events"
)

func TestEmitCountsNotifications(t *testing.T) {
	m := New()

	m.Emit(events.Event{Reason: events.ReasonComponentInstalling, Data: events.EventData{Name: "A"}})
	m.Emit(events.Event{Reason: events.ReasonComponentInstalling, Data: events.EventData{Name: "B"}})
	m.Emit(events.Event{Reason: events.ReasonComponentRemoving, Data: events.EventData{Name: "A"}})
	m.Emit(events.Event{Reason: events.ReasonComponentStillNeeded, Data: events.EventData{Name: "B"}})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.notificationsTotal.WithLabelValues(string(events.ReasonComponentInstalling))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notificationsTotal.WithLabelValues(string(events.ReasonComponentRemoving))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notificationsTotal.WithLabelValues(string(events.ReasonComponentStillNeeded))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.installedComponents))
}

func TestObserveCommand(t *testing.T) {
	m := New()

	m.ObserveCommand("INSTALL", nil)
	m.ObserveCommand("INSTALL", nil)
	m.ObserveCommand("REMOVE", errors.New("unknown component X"))
	m.ObserveCommand("", errors.New("bad line"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.commandsTotal.WithLabelValues("INSTALL", OutcomeApplied)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commandsTotal.WithLabelValues("REMOVE", OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commandsTotal.WithLabelValues("unknown", OutcomeRejected)))
}

func TestReset(t *testing.T) {
	m := New()
	m.ObserveCommand("LIST", nil)
	m.Emit(events.Event{Reason: events.ReasonComponentInstalling})

	m.Reset()

	assert.Equal(t, 0, testutil.CollectAndCount(m.commandsTotal))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.installedComponents))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ObserveCommand("DEPEND", nil)
	m.Emit(events.Event{Reason: events.ReasonComponentInstalling})

	path := filepath.Join(t.TempDir(), "depman.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `depman_commands_total{keyword="DEPEND",outcome="applied"} 1`)
	assert.Contains(t, string(data), "depman_installed_components 1")
}

func TestRegistryGathers(t *testing.T) {
	m := New()
	m.ObserveCommand("LIST", nil)

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
