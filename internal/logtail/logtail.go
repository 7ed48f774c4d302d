package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// stdTimeLayout matches the prefix written by the standard logger with
// log.LstdFlags.
const stdTimeLayout = "2006/01/02 15:04:05"

// Entry is one parsed log line.
type Entry struct {
	Time    time.Time // zero when the line had no timestamp
	Message string
	Raw     string
}

// Read returns at most maxLines from the end of the file at path. A
// maxLines of zero or less returns every line. A missing file is not an
// error; lector may simply not have logged anything yet.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Parse splits the standard logger's timestamp prefix off line.
func Parse(line string) Entry {
	e := Entry{Raw: line, Message: line}
	if len(line) < len(stdTimeLayout) {
		return e
	}
	t, err := time.ParseInLocation(stdTimeLayout, line[:len(stdTimeLayout)], time.Local)
	if err != nil {
		return e
	}
	e.Time = t
	e.Message = strings.TrimSpace(line[len(stdTimeLayout):])
	return e
}

// ParseAll parses every line.
func ParseAll(lines []string) []Entry {
	entries := make([]Entry, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		entries = append(entries, Parse(l))
	}
	return entries
}

// Filter keeps the entries whose message contains query, ignoring case.
// An empty query keeps everything.
func Filter(entries []Entry, query string) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return entries
	}
	var out []Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Message), query) {
			out = append(out, e)
		}
	}
	return out
}
