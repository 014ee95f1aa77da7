package normalizer

import (
	"errors"
	"fmt"
	"slices"

	"titlecatalog/internal/models"
)

// Validation errors.
var (
	ErrMissingColumn     = errors.New("required column missing")
	ErrInvalidPolicy     = errors.New("invalid normalization policy")
	ErrRowCountChanged   = errors.New("normalization changed row count")
	ErrDurationMismatch  = errors.New("duration variant does not match its text")
	ErrMissingFixedYear  = errors.New("fixed missing-date policy requires a fixed year")
	ErrUnknownRowOrdinal = errors.New("row line numbers must be positive")
)

// Validator checks raw tables before transformation and datasets after it.
type Validator struct {
	policy Policy
}

// NewValidator creates a new validator instance.
func NewValidator(policy Policy) *Validator {
	return &Validator{policy: policy}
}

// Validate checks that table can be transformed under the configured policy.
func (v *Validator) Validate(table *models.RawTable) error {
	if table == nil {
		return ErrNilTable
	}

	switch v.policy.MissingDates {
	case MissingDateAbsent, "":
	case MissingDateFixed:
		if v.policy.FixedYear <= 0 {
			return ErrMissingFixedYear
		}
	default:
		return fmt.Errorf("%w: missing date policy %q", ErrInvalidPolicy, v.policy.MissingDates)
	}

	switch v.policy.OnError {
	case OnErrorAbort, OnErrorSkip, "":
	default:
		return fmt.Errorf("%w: error policy %q", ErrInvalidPolicy, v.policy.OnError)
	}

	for _, col := range models.RequiredColumns() {
		if !slices.Contains(table.Columns, col) {
			return fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	for i, row := range table.Rows {
		if row.Line <= 0 {
			return fmt.Errorf("%w at index %d", ErrUnknownRowOrdinal, i)
		}
	}

	return nil
}

// CheckDataset verifies the dataset invariants against its source table:
// the row count is unchanged and every duration tag agrees with its text.
func (v *Validator) CheckDataset(table *models.RawTable, ds *models.Dataset) error {
	if len(table.Rows) != ds.Len() {
		return fmt.Errorf("%w: %d raw rows, %d titles", ErrRowCountChanged, len(table.Rows), ds.Len())
	}

	for i := range ds.Titles {
		title := &ds.Titles[i]
		if title.Duration.IsZero() {
			continue
		}

		expected, err := ParseDuration(title.RawRow.Duration)
		if err != nil || expected.Kind() != title.Duration.Kind() {
			return fmt.Errorf("%w at row %d: %q is %s", ErrDurationMismatch, title.Line, title.RawRow.Duration, title.Duration.Kind())
		}
	}

	return nil
}
