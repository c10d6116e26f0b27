package formatting

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"depman/internal/manager"
	"depman/internal/runner"
)

func testSummary() Summary {
	return NewSummary("session.txt", runner.Result{RunID: "run-1", Applied: 5, Rejected: 1}, []manager.ComponentStatus{
		{Name: "A", Installed: true, Dependencies: []string{"B", "C"}, Dependents: []string{}},
		{Name: "B", Installed: true, Dependencies: []string{}, Dependents: []string{"A"}},
		{Name: "C", Installed: false, Dependencies: []string{}, Dependents: []string{"A"}},
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"PLAIN", FormatPlain, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "table, plain, json, yaml")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewFormatter(t *testing.T) {
	for _, format := range Formats {
		f, err := NewFormatter(Options{Format: format})
		require.NoError(t, err)
		assert.NotNil(t, f)
	}

	_, err := NewFormatter(Options{Format: "xml"})
	assert.Error(t, err)
}

func TestSummaryCounts(t *testing.T) {
	s := testSummary()
	assert.Equal(t, 2, s.InstalledCount())
	assert.Len(t, s.Components, 3)
	assert.Equal(t, "run-1", s.RunID)
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(Options{}).FormatSummary(&buf, testSummary()))

	out := buf.String()
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "DEPENDENCIES")
	assert.Contains(t, out, "B,C")
	assert.Contains(t, out, "2 of 3 installed, 5 commands applied, 1 rejected")
	assert.NotContains(t, out, "\x1b[", "no colors unless asked for")
}

func TestTableFormatterColor(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(Options{Color: true}).FormatSummary(&buf, testSummary()))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestPlainFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPlainFormatter(Options{}).FormatSummary(&buf, testSummary()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"NAME", "INSTALLED", "DEPENDENCIES", "DEPENDENTS"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"A", "yes", "B,C", "-"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"C", "no", "-", "A"}, strings.Fields(lines[3]))
	assert.NotContains(t, buf.String(), "│")
}

func TestPlainFormatterNoHeaders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPlainFormatter(Options{NoHeaders: true}).FormatSummary(&buf, testSummary()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "A", strings.Fields(lines[0])[0])

	buf.Reset()
	require.NoError(t, NewPlainFormatter(Options{NoHeaders: true}).FormatSummary(&buf, Summary{}))
	assert.Empty(t, buf.String())
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(Options{}).FormatSummary(&buf, testSummary()))

	var decoded Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "session.txt", decoded.Source)
	assert.Equal(t, 5, decoded.Applied)
	require.Len(t, decoded.Components, 3)
	assert.Equal(t, []string{"B", "C"}, decoded.Components[0].Dependencies)
	assert.Contains(t, buf.String(), `"runId": "run-1"`)
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter(Options{}).FormatSummary(&buf, testSummary()))

	assert.Contains(t, buf.String(), "runId: run-1")
	assert.Contains(t, buf.String(), "  - name: A")

	var decoded Summary
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 1, decoded.Rejected)
	assert.True(t, decoded.Components[1].Installed)
}

func TestPrettyJSON(t *testing.T) {
	assert.Equal(t, "{\n  \"name\": \"test\",\n  \"value\": 42\n}", PrettyJSON(map[string]interface{}{"name": "test", "value": 42}))
	assert.Equal(t, "null", PrettyJSON(nil))

	// Channels cannot be marshaled; the fallback still produces something.
	assert.NotEmpty(t, PrettyJSON(make(chan int)))
}

func TestTableFormatterTruncatesLongLists(t *testing.T) {
	deps := []string{"TCPIP", "NETCARD", "HTML", "BROWSER", "DNS", "FIREWALL", "KERNEL", "SCHEDULER"}
	s := NewSummary("long.txt", runner.Result{}, []manager.ComponentStatus{
		{Name: "APP", Dependencies: deps},
	})

	var table bytes.Buffer
	require.NoError(t, NewTableFormatter(Options{}).FormatSummary(&table, s))
	assert.Contains(t, table.String(), "more)")
	assert.NotContains(t, table.String(), "SCHEDULER")

	var plain bytes.Buffer
	require.NoError(t, NewPlainFormatter(Options{}).FormatSummary(&plain, s))
	assert.Contains(t, plain.String(), "SCHEDULER")
}
