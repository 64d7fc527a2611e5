package inbox

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// LinesReader reads one message per line. Blank lines and lines starting
// with # are skipped.
type LinesReader struct{}

const maxLineBytes = 64 * 1024

// Format returns the reader name.
func (r *LinesReader) Format() string { return "lines" }

// Read returns one Message per non-blank, non-comment line.
func (r *LinesReader) Read(in io.Reader) ([]Message, error) {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)

	var msgs []Message
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		msgs = append(msgs, Message{Body: text, Line: line})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", line+1, err)
	}
	return msgs, nil
}
