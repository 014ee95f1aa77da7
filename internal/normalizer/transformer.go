package normalizer

import (
	"errors"
	"time"

	"titlecatalog/internal/models"
)

// ErrNilTable is returned when there is no raw table to transform.
var ErrNilTable = errors.New("invalid data: raw table is nil")

// MissingDatePolicy decides what a blank date_added becomes.
type MissingDatePolicy string

// Missing date policies.
const (
	// MissingDateAbsent leaves the added year absent.
	MissingDateAbsent MissingDatePolicy = "absent"
	// MissingDateFixed substitutes Policy.FixedYear.
	MissingDateFixed MissingDatePolicy = "fixed"
)

// ErrorPolicy decides what an unparseable date or duration does to the load.
type ErrorPolicy string

// Error policies.
const (
	// OnErrorAbort fails the whole transformation.
	OnErrorAbort ErrorPolicy = "abort"
	// OnErrorSkip keeps the row with the derived field absent and records a diagnostic.
	OnErrorSkip ErrorPolicy = "skip"
)

// Policy configures the Transformer.
type Policy struct {
	MissingDates MissingDatePolicy
	OnError      ErrorPolicy
	FixedYear    int
}

// DefaultPolicy propagates absence and aborts on the first bad value.
func DefaultPolicy() Policy {
	return Policy{
		MissingDates: MissingDateAbsent,
		OnError:      OnErrorAbort,
	}
}

// Transformer converts raw rows into normalized titles.
type Transformer struct {
	dates  *DateNormalizer
	policy Policy
}

// NewTransformer creates a new transformer instance.
func NewTransformer(policy Policy) *Transformer {
	return &Transformer{
		dates:  NewDateNormalizer(),
		policy: policy,
	}
}

// Transform converts table into a dataset. Rows are never dropped.
func (t *Transformer) Transform(table *models.RawTable) (*models.Dataset, error) {
	if table == nil {
		return nil, ErrNilTable
	}

	ds := &models.Dataset{
		LoadedAt: time.Now(),
		Source:   table.Source,
		Columns:  append([]string(nil), table.Columns...),
		Titles:   make([]models.Title, 0, len(table.Rows)),
	}

	for _, row := range table.Rows {
		title := models.Title{RawRow: row}

		added, err := t.dates.Year(row.DateAdded)
		if err != nil {
			if err = t.handleFieldError(ds, row.Line, err); err != nil {
				return nil, err
			}
		}

		if added == nil && row.DateAdded == "" && t.policy.MissingDates == MissingDateFixed {
			year := t.policy.FixedYear
			added = &year
		}

		title.AddedYear = added

		duration, err := ParseDuration(row.Duration)
		if err != nil {
			if err = t.handleFieldError(ds, row.Line, err); err != nil {
				return nil, err
			}
		}

		title.Duration = duration

		ds.Titles = append(ds.Titles, title)
	}

	return ds, nil
}

// handleFieldError stamps the row onto a field error and either returns it
// (abort) or records it as a diagnostic (skip).
func (t *Transformer) handleFieldError(ds *models.Dataset, line int, err error) error {
	diag := models.Diagnostic{Row: line}

	var dateErr *DateFormatError
	var parseErr *ParseError

	switch {
	case errors.As(err, &dateErr):
		dateErr.Row = line
		diag.Column, diag.Text = dateErr.Column, dateErr.Text
	case errors.As(err, &parseErr):
		parseErr.Row = line
		diag.Column, diag.Text = parseErr.Column, parseErr.Text
	}

	if t.policy.OnError != OnErrorSkip {
		return err
	}

	diag.Message = err.Error()
	ds.Diagnostics = append(ds.Diagnostics, diag)

	return nil
}
