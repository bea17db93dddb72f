// Package dataset loads the fixed-schema wireless signal-strength dataset
// and partitions its rows by room.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Schema fixes the column layout of the source file: N numeric channel
// columns followed by one categorical group column. The schema is part of
// the pipeline's static configuration, not inferred from file content.
type Schema struct {
	Channels []string
	GroupCol string
}

// DefaultSchema returns the seven-device wireless localization layout:
// channels d1..d7 plus a trailing room column.
func DefaultSchema() Schema {
	ch := make([]string, 7)
	for i := range ch {
		ch[i] = "d" + strconv.Itoa(i+1)
	}
	return Schema{Channels: ch, GroupCol: "room"}
}

// Row is one record: channel readings in schema order plus its group label.
type Row struct {
	Values []float64
	Group  string
}

// Table is an ordered, immutable-after-load sequence of rows sharing one schema.
type Table struct {
	Schema Schema
	Rows   []Row
}

// Load reads a tab-separated file with no header into a Table. Every record
// must have exactly len(schema.Channels)+1 fields, the first fields parsing
// as real numbers. A missing or non-regular path yields *MissingFileError;
// any shape or parse problem yields *MalformedRecordError and aborts the
// whole load.
func Load(path string, schema Schema) (*Table, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, &MissingFileError{Path: path}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1

	want := len(schema.Channels) + 1
	t := &Table{Schema: schema}
	line := 0
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &MalformedRecordError{Path: path, Line: line + 1, Reason: err.Error()}
		}
		line++
		if len(rec) != want {
			return nil, &MalformedRecordError{
				Path:   path,
				Line:   line,
				Reason: fmt.Sprintf("expected %d fields, got %d", want, len(rec)),
			}
		}
		row := Row{Values: make([]float64, len(schema.Channels))}
		for i := range schema.Channels {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
			if err != nil {
				return nil, &MalformedRecordError{
					Path:   path,
					Line:   line,
					Reason: fmt.Sprintf("field %s: %q is not a number", schema.Channels[i], rec[i]),
				}
			}
			row.Values[i] = v
		}
		row.Group = strings.TrimSpace(rec[want-1])
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Groups is an ordered partition of table rows by group label. Keys keep
// first-occurrence order; that order propagates to every downstream artifact.
type Groups struct {
	keys []string
	rows map[string][]Row
}

// Partition splits the table's rows by group label. Every row lands in
// exactly one group; an empty table yields an empty partition.
func (t *Table) Partition() *Groups {
	g := &Groups{rows: make(map[string][]Row)}
	for _, row := range t.Rows {
		if _, ok := g.rows[row.Group]; !ok {
			g.keys = append(g.keys, row.Group)
		}
		g.rows[row.Group] = append(g.rows[row.Group], row)
	}
	return g
}

// Keys returns group labels in first-occurrence order.
func (g *Groups) Keys() []string { return g.keys }

// Rows returns the ordered sub-rows for one group label.
func (g *Groups) Rows(key string) []Row { return g.rows[key] }

// Len returns the number of distinct groups.
func (g *Groups) Len() int { return len(g.keys) }
