// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jeranaias/convertxpert/internal/convert"
	"github.com/jeranaias/convertxpert/internal/history"
	"github.com/jeranaias/convertxpert/internal/logging"
)

// ErrBadRow marks a batch row that could not be parsed.
var ErrBadRow = errors.New("malformed row")

// =============================================================================
// BATCH INPUT
// =============================================================================

// Row is one parsed batch request. Line is the 1-based input line.
type Row struct {
	Line    int
	Request convert.Request
	Err     error
}

// ReadRequests parses CSV rows of the form category,value,from,to.
// A first row whose second column reads "value" is treated as a header.
// Rows that fail to parse are returned with Err set so the caller can
// report them without aborting the batch.
func ReadRequests(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var rows []Row
	first := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("read batch input: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if first {
			first = false
			if isHeader(rec) {
				continue
			}
		}
		rows = append(rows, parseRow(line, rec))
	}
	return rows, nil
}

func isHeader(rec []string) bool {
	return len(rec) >= 2 && strings.EqualFold(strings.TrimSpace(rec[1]), "value")
}

func parseRow(line int, rec []string) Row {
	row := Row{Line: line}
	if len(rec) != 4 {
		row.Err = fmt.Errorf("%w: want 4 fields, got %d", ErrBadRow, len(rec))
		return row
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
	if err != nil {
		row.Err = fmt.Errorf("%w: invalid value %q", ErrBadRow, rec[1])
		return row
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		row.Err = fmt.Errorf("%w: value %q is not a finite number", ErrBadRow, rec[1])
		return row
	}
	row.Request = convert.Request{
		Category: strings.TrimSpace(rec[0]),
		Value:    v,
		From:     strings.TrimSpace(rec[2]),
		To:       strings.TrimSpace(rec[3]),
	}
	return row
}

// =============================================================================
// BATCH RUN
// =============================================================================

// Failure describes a row that did not convert.
type Failure struct {
	Line int
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("line %d: %v", f.Line, f.Err)
}

// Report is the outcome of a batch run.
type Report struct {
	Results  []history.Entry
	Failures []Failure
}

// RunBatch converts every row. Category and unit names are matched without
// regard to case and written back in their canonical spelling.
func RunBatch(engine *convert.Engine, rows []Row) Report {
	log := logging.For("batch")

	var rep Report
	for _, row := range rows {
		if row.Err != nil {
			rep.Failures = append(rep.Failures, Failure{Line: row.Line, Err: row.Err})
			continue
		}
		entry, err := convertRow(engine, row.Request)
		if err != nil {
			log.WithError(err).WithField("line", row.Line).Warn("batch row rejected")
			rep.Failures = append(rep.Failures, Failure{Line: row.Line, Err: err})
			continue
		}
		rep.Results = append(rep.Results, entry)
	}

	log.WithField("converted", len(rep.Results)).
		WithField("failed", len(rep.Failures)).
		Debug("batch finished")
	return rep
}

func convertRow(engine *convert.Engine, req convert.Request) (history.Entry, error) {
	reg := engine.Registry()
	cat, err := reg.ResolveCategory(req.Category)
	if err != nil {
		return history.Entry{}, err
	}
	from, err := reg.Resolve(cat, req.From)
	if err != nil {
		return history.Entry{}, err
	}
	to, err := reg.Resolve(cat, req.To)
	if err != nil {
		return history.Entry{}, err
	}
	res, err := engine.Convert(cat, from, to, req.Value)
	if err != nil {
		return history.Entry{}, err
	}
	return history.Entry{
		Input:    req.Value,
		From:     from,
		Output:   res.Display,
		To:       to,
		Category: cat,
	}, nil
}
