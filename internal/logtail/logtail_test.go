package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	// Write 10 lines of content
	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	lines, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if lines != nil {
		t.Fatalf("Read() = %v, want nil", lines)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantTime bool
		wantMsg  string
	}{
		{
			name:     "standard logger line",
			input:    "2026/03/04 10:11:12 create book \"Aura\": api POST returned status 500",
			wantTime: true,
			wantMsg:  "create book \"Aura\": api POST returned status 500",
		},
		{
			name:    "no timestamp",
			input:   "panic: something",
			wantMsg: "panic: something",
		},
		{
			name:    "short line",
			input:   "ok",
			wantMsg: "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Parse(tt.input)
			if e.Raw != tt.input {
				t.Errorf("Raw = %q, want %q", e.Raw, tt.input)
			}
			if got := !e.Time.IsZero(); got != tt.wantTime {
				t.Errorf("has time = %v, want %v", got, tt.wantTime)
			}
			if e.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", e.Message, tt.wantMsg)
			}
		})
	}

	e := Parse("2026/03/04 10:11:12 x")
	if e.Time.Year() != 2026 || e.Time.Month() != 3 || e.Time.Hour() != 10 {
		t.Errorf("Time = %v, want 2026-03-04 10:11", e.Time)
	}
}

func TestParseAllAndFilter(t *testing.T) {
	entries := ParseAll([]string{
		"2026/03/04 10:11:12 list books: execute request: dial tcp: refused",
		"",
		"2026/03/04 10:11:13 delete book 42: not found",
		"2026/03/04 10:11:14 LIST authors: timeout",
	})
	if len(entries) != 3 {
		t.Fatalf("ParseAll returned %d entries, want 3", len(entries))
	}

	got := Filter(entries, " list ")
	if len(got) != 2 {
		t.Fatalf("Filter(list) returned %d entries, want 2", len(got))
	}
	if !reflect.DeepEqual(Filter(entries, ""), entries) {
		t.Errorf("Filter with empty query should keep everything")
	}
	if got := Filter(entries, "nothing-matches"); len(got) != 0 {
		t.Errorf("Filter(nothing-matches) = %v, want empty", got)
	}
}
