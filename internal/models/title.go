// Package models defines data structures for the catalog loader, normalizer and aggregator.
package models

import (
	"strconv"
	"time"

	"titlecatalog/pkg/metadata"
)

// Catalog source column names.
const (
	ColumnType        = "type"
	ColumnTitle       = "title"
	ColumnDirector    = "director"
	ColumnCast        = "cast"
	ColumnCountry     = "country"
	ColumnDateAdded   = "date_added"
	ColumnReleaseYear = "release_year"
	ColumnDuration    = "duration"
	ColumnListedIn    = "listed_in"
)

// RequiredColumns returns the header columns every catalog file must carry, in canonical order.
func RequiredColumns() []string {
	return []string{
		ColumnType,
		ColumnTitle,
		ColumnDirector,
		ColumnCast,
		ColumnCountry,
		ColumnDateAdded,
		ColumnReleaseYear,
		ColumnDuration,
		ColumnListedIn,
	}
}

// RawRow is one source record as read from the catalog file.
// Empty text means the value is absent.
type RawRow struct {
	ReleaseYear *int              `json:"releaseYear,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
	Type        string            `json:"type,omitempty"`
	Title       string            `json:"title,omitempty"`
	Director    string            `json:"director,omitempty"`
	Cast        string            `json:"cast,omitempty"`
	Country     string            `json:"country,omitempty"`
	DateAdded   string            `json:"dateAdded,omitempty"`
	Duration    string            `json:"duration,omitempty"`
	ListedIn    string            `json:"listedIn,omitempty"`
	Line        int               `json:"line"`
}

// Value returns the raw text of the named column, or "" when absent or unknown.
func (r *RawRow) Value(column string) string {
	switch column {
	case ColumnType:
		return r.Type
	case ColumnTitle:
		return r.Title
	case ColumnDirector:
		return r.Director
	case ColumnCast:
		return r.Cast
	case ColumnCountry:
		return r.Country
	case ColumnDateAdded:
		return r.DateAdded
	case ColumnDuration:
		return r.Duration
	case ColumnListedIn:
		return r.ListedIn
	case ColumnReleaseYear:
		if r.ReleaseYear == nil {
			return ""
		}

		return strconv.Itoa(*r.ReleaseYear)
	}

	return r.Extra[column]
}

// RawTable is the in-memory result of reading a catalog file.
type RawTable struct {
	Source  metadata.Source `json:"source"`
	Columns []string        `json:"columns"`
	Rows    []RawRow        `json:"rows"`
}

// Title is a RawRow with its derived, typed fields.
type Title struct {
	AddedYear *int     `json:"addedYear,omitempty"`
	Duration  Duration `json:"durationValue"`
	RawRow
}

// Diagnostic records a value that could not be normalized when the
// skip error policy is active.
type Diagnostic struct {
	Column  string `json:"column"`
	Text    string `json:"text"`
	Message string `json:"message"`
	Row     int    `json:"row"`
}

// Dataset is an immutable normalized snapshot of a catalog file.
type Dataset struct {
	LoadedAt    time.Time       `json:"loadedAt"`
	Source      metadata.Source `json:"source"`
	Columns     []string        `json:"columns"`
	Titles      []Title         `json:"titles"`
	Diagnostics []Diagnostic    `json:"diagnostics,omitempty"`
}

// Len returns the number of rows in the dataset.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}

	return len(d.Titles)
}
