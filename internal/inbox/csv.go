package inbox

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// CSVReader reads SMS backup exports with an address,date,body header.
// Columns may appear in any order; extra columns are ignored.
type CSVReader struct{}

const (
	csvColAddress = "address"
	csvColDate    = "date"
	csvColBody    = "body"
)

// Format returns the reader name.
func (r *CSVReader) Format() string { return "csv" }

// Read returns one Message per row with a non-empty body.
func (r *CSVReader) Read(in io.Reader) ([]Message, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading inbox CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	bodyCol, ok := cols[csvColBody]
	if !ok {
		return nil, fmt.Errorf("header: missing column %q", csvColBody)
	}

	var msgs []Message
	for i, rec := range records[1:] {
		row := i + 2
		body := strings.TrimSpace(field(rec, bodyCol))
		if body == "" {
			continue
		}
		msg := Message{Body: body, Line: row}
		if c, ok := cols[csvColAddress]; ok {
			msg.Sender = strings.TrimSpace(field(rec, c))
		}
		if c, ok := cols[csvColDate]; ok {
			ts, err := parseDate(field(rec, c))
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", row, err)
			}
			msg.Received = ts
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

// parseDate accepts epoch milliseconds (as written by Android SMS backup
// tools) or RFC 3339. Empty means unknown.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return ts, nil
}
