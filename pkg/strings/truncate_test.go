package strings

import (
	"testing"
)

func TestJoinTruncated(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		maxLen   int
		expected string
	}{
		{
			name:     "empty list",
			input:    nil,
			maxLen:   10,
			expected: "",
		},
		{
			name:     "fits unchanged",
			input:    []string{"A", "B", "C"},
			maxLen:   5,
			expected: "A,B,C",
		},
		{
			name:     "drops names from the end",
			input:    []string{"TCPIP", "NETCARD", "HTML", "BROWSER", "DNS"},
			maxLen:   24,
			expected: "TCPIP,NETCARD (+3 more)",
		},
		{
			name:     "keeps the first name when nothing fits",
			input:    []string{"AVERYLONGCOMPONENTNAME", "B"},
			maxLen:   8,
			expected: "AVERYLONGCOMPONENTNAME (+1 more)",
		},
		{
			name:     "counts runes not bytes",
			input:    []string{"ä", "ö", "ü"},
			maxLen:   5,
			expected: "ä,ö,ü",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := JoinTruncated(tt.input, ",", tt.maxLen)
			if result != tt.expected {
				t.Errorf("JoinTruncated() = %q, want %q", result, tt.expected)
			}
		})
	}
}
