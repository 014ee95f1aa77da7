// Package loader reads delimited catalog files into raw in-memory tables.
package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"titlecatalog/internal/models"
	"titlecatalog/pkg/metadata"
	"titlecatalog/pkg/utils"
)

// Loader errors.
var (
	ErrLoad      = errors.New("load failed")
	ErrSchema    = errors.New("schema mismatch")
	ErrEmptyFile = errors.New("file has no header row")
)

// LoadError reports a catalog file that could not be read or is structurally malformed.
type LoadError struct {
	Err    error
	Path   string
	Column string
	Text   string
	Line   int
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	switch {
	case e.Column != "":
		return fmt.Sprintf("load %s: line %d, column %q, value %q: %v", e.Path, e.Line, e.Column, e.Text, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("load %s: line %d: %v", e.Path, e.Line, e.Err)
	}

	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is matches ErrLoad.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// SchemaError reports a required column missing from the header.
type SchemaError struct {
	Path   string
	Column string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("load %s: required column %q missing from header", e.Path, e.Column)
}

// Is matches ErrSchema.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// Options configures how the delimited file is parsed.
type Options struct {
	Delimiter  rune
	LazyQuotes bool
}

// Loader reads catalog files.
type Loader struct {
	opts Options
}

// NewLoader creates a loader. A zero Delimiter means comma.
func NewLoader(opts Options) *Loader {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}

	return &Loader{opts: opts}
}

// Load reads the file at path. The whole file is read in one pass; any
// malformed row aborts the load.
func (l *Loader) Load(path string) (*models.RawTable, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	return l.Parse(path, content)
}

// Parse reads catalog content that was already loaded from path.
func (l *Loader) Parse(path string, content []byte) (*models.RawTable, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = l.opts.Delimiter
	reader.LazyQuotes = l.opts.LazyQuotes

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &LoadError{Path: path, Err: ErrEmptyFile}
	}

	if err != nil {
		return nil, readError(path, err)
	}

	columns := make([]string, len(header))
	index := make(map[string]int, len(header))

	for i, name := range header {
		if i == 0 {
			name = utils.TrimBOM(name)
		}

		name = utils.TrimWhitespace(name)
		columns[i] = name

		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	for _, col := range models.RequiredColumns() {
		if _, ok := index[col]; !ok {
			return nil, &SchemaError{Path: path, Column: col}
		}
	}

	required := make(map[string]bool)
	for _, col := range models.RequiredColumns() {
		required[col] = true
	}

	var extras []int

	for i, name := range columns {
		if !required[name] && name != "" {
			extras = append(extras, i)
		}
	}

	table := &models.RawTable{
		Source:  metadata.Describe(path, content),
		Columns: columns,
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, readError(path, err)
		}

		line, _ := reader.FieldPos(0)

		row, err := buildRow(record, columns, index, extras, line)
		if err != nil {
			var loadErr *LoadError
			if errors.As(err, &loadErr) {
				loadErr.Path = path
			}

			return nil, err
		}

		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func buildRow(record, columns []string, index map[string]int, extras []int, line int) (models.RawRow, error) {
	get := func(col string) string {
		return utils.TrimWhitespace(record[index[col]])
	}

	row := models.RawRow{
		Line:      line,
		Type:      get(models.ColumnType),
		Title:     get(models.ColumnTitle),
		Director:  get(models.ColumnDirector),
		Cast:      get(models.ColumnCast),
		Country:   get(models.ColumnCountry),
		DateAdded: get(models.ColumnDateAdded),
		Duration:  get(models.ColumnDuration),
		ListedIn:  get(models.ColumnListedIn),
	}

	if text := get(models.ColumnReleaseYear); text != "" {
		year, err := strconv.Atoi(text)
		if err != nil {
			return row, &LoadError{
				Line:   line,
				Column: models.ColumnReleaseYear,
				Text:   text,
				Err:    fmt.Errorf("release year is not an integer: %w", err),
			}
		}

		row.ReleaseYear = &year
	}

	for _, i := range extras {
		if value := utils.TrimWhitespace(record[i]); value != "" {
			if row.Extra == nil {
				row.Extra = make(map[string]string)
			}

			row.Extra[columns[i]] = value
		}
	}

	return row, nil
}

func readError(path string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &LoadError{Path: path, Line: parseErr.StartLine, Err: err}
	}

	return &LoadError{Path: path, Err: err}
}
