package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	scanBufferInitial = 64 * 1024
	scanBufferMax     = 1024 * 1024
)

// Read returns the last maxLines lines of the file at path, oldest first.
// maxLines <= 0 returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, scanBufferInitial), scanBufferMax)

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
	count, next := 0, 0
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if count < maxLines {
		return append([]string(nil), ring[:count]...), nil
	}
	lines := make([]string, 0, count)
	for i := 0; i < count; i++ {
		lines = append(lines, ring[(next+i)%maxLines])
	}
	return lines, nil
}

// Field is one extra key/value of a log entry.
type Field struct {
	Key   string
	Value string
}

// Entry is a decoded zerolog JSON line.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
	Error   string
	Fields  []Field
}

// reserved keys are rendered in fixed positions, not as fields.
var reserved = map[string]struct{}{
	"time":    {},
	"level":   {},
	"message": {},
	"error":   {},
	"app":     {},
}

// Parse decodes one JSON log line. ok is false for anything that is not a
// JSON object, so plain text lines can be shown as they are.
func Parse(line string) (Entry, bool) {
	line = strings.TrimSpace(line)
	if line == "" || !gjson.Valid(line) {
		return Entry{}, false
	}
	doc := gjson.Parse(line)
	if !doc.IsObject() {
		return Entry{}, false
	}
	entry := Entry{
		Level:   strings.ToLower(doc.Get("level").String()),
		Message: doc.Get("message").String(),
		Error:   doc.Get("error").String(),
	}
	if ts := doc.Get("time").String(); ts != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			entry.Time = parsed
		}
	}
	doc.ForEach(func(key, value gjson.Result) bool {
		if _, skip := reserved[key.String()]; skip {
			return true
		}
		entry.Fields = append(entry.Fields, Field{Key: key.String(), Value: value.String()})
		return true
	})
	sort.SliceStable(entry.Fields, func(i, j int) bool {
		return entry.Fields[i].Key < entry.Fields[j].Key
	})
	return entry, true
}

// Field returns the value of key and whether it was present.
func (e Entry) Field(key string) (string, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// String renders the entry on one line:
//
//	14:32:15 INFO api request method=GET path=/api/foods status=200
func (e Entry) String() string {
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.Local().Format("15:04:05"))
		b.WriteByte(' ')
	}
	level := strings.ToUpper(e.Level)
	if level == "" {
		level = "-"
	}
	b.WriteString(level)
	if e.Message != "" {
		b.WriteByte(' ')
		b.WriteString(e.Message)
	}
	for _, f := range e.Fields {
		b.WriteByte(' ')
		b.WriteString(f.Key)
		b.WriteByte('=')
		b.WriteString(f.Value)
	}
	if e.Error != "" {
		b.WriteString(" error=")
		b.WriteString(e.Error)
	}
	return b.String()
}

// Format renders each line through Parse, leaving non-JSON lines untouched.
func Format(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if entry, ok := Parse(line); ok {
			out[i] = entry.String()
			continue
		}
		out[i] = line
	}
	return out
}
