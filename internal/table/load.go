package table

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/psidex/sankey/internal/lib"
)

// Loader reads node and link tables from files or URLs.
type Loader struct {
	client *http.Client
	logger *slog.Logger
}

// NewLoader creates a Loader. hc is only used for tables given as URLs.
func NewLoader(hc *http.Client, logger *slog.Logger) *Loader {
	if hc == nil {
		hc = http.DefaultClient
	}
	if logger == nil {
		logger = lib.DiscardLogger()
	}
	return &Loader{client: hc, logger: logger}
}

// LoadNodes reads a node table with Index and Label columns.
func (l *Loader) LoadNodes(ctx context.Context, path string) ([]Node, error) {
	raw, err := l.read(ctx, path)
	if err != nil {
		return nil, err
	}

	indexCol, err := raw.column(IndexColumn)
	if err != nil {
		return nil, err
	}
	labelCol, err := raw.column(LabelColumn)
	if err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, len(raw.rows))
	firstSeen := make(map[string]int, len(raw.rows))
	for _, row := range raw.rows {
		index := strings.TrimSpace(row.fields[indexCol])
		if index == "" {
			return nil, &ParseError{Path: path, Line: row.line, Column: IndexColumn, Err: errors.New("empty index")}
		}
		if first, ok := firstSeen[index]; ok {
			return nil, &DuplicateIndexError{Path: path, Index: index, Line: row.line, FirstLine: first}
		}
		firstSeen[index] = row.line
		nodes = append(nodes, Node{Index: index, Label: row.fields[labelCol]})
	}

	l.logger.Debug("Loaded node table", "path", path, "nodes", len(nodes))
	return nodes, nil
}

// LoadLinks reads a link table with source and target columns, taking flow values from
// valuesCol.
func (l *Loader) LoadLinks(ctx context.Context, path, valuesCol string) ([]Link, error) {
	raw, err := l.read(ctx, path)
	if err != nil {
		return nil, err
	}

	sourceCol, err := raw.column(SourceColumn)
	if err != nil {
		return nil, err
	}
	targetCol, err := raw.column(TargetColumn)
	if err != nil {
		return nil, err
	}
	valueCol, err := raw.column(valuesCol)
	if err != nil {
		return nil, err
	}

	links := make([]Link, 0, len(raw.rows))
	for _, row := range raw.rows {
		cell := strings.TrimSpace(row.fields[valueCol])
		if cell == "" {
			return nil, &ParseError{Path: path, Line: row.line, Column: valuesCol, Err: errors.New("empty value")}
		}
		value, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, &ParseError{Path: path, Line: row.line, Column: valuesCol, Err: err}
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, &ParseError{Path: path, Line: row.line, Column: valuesCol, Err: fmt.Errorf("value %q is not finite", cell)}
		}
		links = append(links, Link{
			Source: strings.TrimSpace(row.fields[sourceCol]),
			Target: strings.TrimSpace(row.fields[targetCol]),
			Value:  value,
		})
	}

	l.logger.Debug("Loaded link table", "path", path, "links", len(links), "valuesCol", valuesCol)
	return links, nil
}

type rawRow struct {
	line   int
	fields []string
}

type rawTable struct {
	path    string
	columns map[string]int
	rows    []rawRow
}

func (t rawTable) column(name string) (int, error) {
	i, ok := t.columns[name]
	if !ok {
		return 0, &MissingColumnError{Path: t.path, Column: name}
	}
	return i, nil
}

func (l *Loader) read(ctx context.Context, path string) (*rawTable, error) {
	rc, err := l.open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return parseTSV(rc, path)
}

// parseTSV reads tab-separated content. Every row must have as many fields as the
// header; blank lines are skipped. Quotes inside a field are kept literally.
func parseTSV(r io.Reader, path string) (*rawTable, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = 0
	reader.ReuseRecord = false
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &ParseError{Path: path, Err: errors.New("no header row")}
	}
	if err != nil {
		return nil, wrapCSVError(path, err)
	}

	t := &rawTable{path: path, columns: make(map[string]int, len(header))}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, dup := t.columns[name]; dup {
			return nil, &ParseError{Path: path, Line: 1, Err: fmt.Errorf("duplicate column %q", name)}
		}
		t.columns[name] = i
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapCSVError(path, err)
		}
		line, _ := reader.FieldPos(0)
		t.rows = append(t.rows, rawRow{line: line, fields: record})
	}

	return t, nil
}

func wrapCSVError(path string, err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Path: path, Line: csvErr.Line, Err: csvErr.Err}
	}
	return &IOError{Path: path, Err: err}
}
