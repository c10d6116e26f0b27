package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depman/internal/command"
	"depman/internal/dependency"
	"depman/internal/events"
	"depman/internal/manager"
	"depman/internal/metrics"
)

const script = `DEPEND A B
INSTALL A

# comments and blank lines are skipped
REMOVE X
FROB
LIST
END
INSTALL Z
`

func newEchoRunner(out *bytes.Buffer, opts ...Option) (*Runner, *manager.Manager) {
	sink := events.NewWriterSink(out, nil, "   ")
	m := manager.New(dependency.New(), sink)
	return New(m, sink, append([]Option{WithEcho(out)}, opts...)...), m
}

func TestRunEchoesAndContinuesAfterErrors(t *testing.T) {
	var out bytes.Buffer
	r, m := newEchoRunner(&out)

	res, err := r.Run(context.Background(), strings.NewReader(script))
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"DEPEND A B",
		"INSTALL A",
		"   Installing B",
		"   Installing A",
		"REMOVE X",
		"   line 5: unknown component X",
		"FROB",
		`   line 6: invalid command "FROB": unknown command "FROB"`,
		"LIST",
		"   A",
		"   B",
		"END",
		"",
	}, "\n"), out.String())

	assert.Equal(t, 4, res.Applied)
	assert.Equal(t, 2, res.Rejected)
	assert.True(t, res.Stopped)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, []string{"A", "B"}, m.Installed(), "commands after END must not run")
}

func TestRunWithoutEcho(t *testing.T) {
	rec := &events.Recorder{}
	m := manager.New(dependency.New(), rec)
	r := New(m, rec)

	res, err := r.Run(context.Background(), strings.NewReader("INSTALL A\nREMOVE B\n"))
	require.NoError(t, err)
	assert.False(t, res.Stopped)
	assert.Equal(t, 1, res.Applied)
	assert.Equal(t, 1, res.Rejected)

	recorded := rec.Events()
	require.Len(t, recorded, 2)
	assert.Equal(t, events.ReasonCommandRejected, recorded[1].Reason)
	assert.Equal(t, events.EventData{Name: "B", Error: "unknown component B", Line: 2}, recorded[1].Data)
	assert.Equal(t, events.EventTypeWarning, recorded[1].Type())
}

func TestRunReportsCycle(t *testing.T) {
	rec := &events.Recorder{}
	r := New(manager.New(dependency.New(), rec), rec)

	res, err := r.Run(context.Background(), strings.NewReader("DEPEND A B\nDEPEND B A\nINSTALL A\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rejected)
	assert.Equal(t, []string{"line 3: cyclic dependency: A -> B -> A"}, rec.Lines())
}

func TestRunLongLines(t *testing.T) {
	t.Run("long declaration is applied", func(t *testing.T) {
		rec := &events.Recorder{}
		m := manager.New(dependency.New(), rec)
		long := "DEPEND A " + strings.Repeat("X", 70000)
		src := strings.Join([]string{"INSTALL Z", long, "INSTALL Y", "LIST"}, "\n")

		res, err := New(m, rec).Run(context.Background(), strings.NewReader(src))
		require.NoError(t, err)
		assert.Equal(t, 4, res.Applied)
		assert.Equal(t, 0, res.Rejected)
		assert.Equal(t, []string{"Installing Z", "Installing Y", "Y", "Z"}, rec.Lines())
		assert.Equal(t, []dependency.NodeID{dependency.NodeID(strings.Repeat("X", 70000))}, m.Graph().Dependencies("A"))
	})

	t.Run("line over the limit is rejected and the run continues", func(t *testing.T) {
		rec := &events.Recorder{}
		m := manager.New(dependency.New(), rec)
		long := "DEPEND A " + strings.Repeat("X", command.MaxLineLength)
		src := strings.Join([]string{"INSTALL Z", long, "INSTALL Y"}, "\n")

		res, err := New(m, rec).Run(context.Background(), strings.NewReader(src))
		require.NoError(t, err)
		assert.Equal(t, 2, res.Applied)
		assert.Equal(t, 1, res.Rejected)
		assert.Equal(t, []string{
			"Installing Z",
			fmt.Sprintf("line 2: invalid command: line longer than %d bytes", command.MaxLineLength),
			"Installing Y",
		}, rec.Lines())
		assert.Nil(t, m.Graph().Get("A"))
	})
}

func TestRunCountsMetrics(t *testing.T) {
	var out bytes.Buffer
	mx := metrics.New()
	r, _ := newEchoRunner(&out, WithMetrics(mx))

	_, err := r.Run(context.Background(), strings.NewReader(script))
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(mx.Registry(), "depman_commands_total")
	require.NoError(t, err)
	assert.Equal(t, 6, count)
}

func TestRunReadError(t *testing.T) {
	r := New(manager.New(dependency.New(), nil), nil)
	boom := errors.New("disk on fire")

	_, err := r.Run(context.Background(), iotest.ErrReader(boom))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestRunCancelled(t *testing.T) {
	m := manager.New(dependency.New(), nil)
	r := New(m, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, strings.NewReader("INSTALL A\n"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, m.Installed())
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.txt")
	require.NoError(t, os.WriteFile(path, []byte("INSTALL A\nLIST\n"), 0644))

	var out bytes.Buffer
	r, _ := newEchoRunner(&out)

	res, err := r.RunFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Applied)
	assert.Equal(t, "INSTALL A\n   Installing A\nLIST\n   A\n", out.String())

	_, err = r.RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
