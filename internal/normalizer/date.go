package normalizer

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"titlecatalog/internal/models"
	"titlecatalog/pkg/utils"
)

// ErrDateFormat is matched by every DateFormatError.
var ErrDateFormat = errors.New("unrecognized date format")

// DateFormatError reports date text that is not of the form "Month D, YYYY".
type DateFormatError struct {
	Column string
	Text   string
	Row    int
}

// Error implements the error interface.
func (e *DateFormatError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d, column %q: %v: %q (want \"Month D, YYYY\")", e.Row, e.Column, ErrDateFormat, e.Text)
	}

	return fmt.Sprintf("column %q: %v: %q (want \"Month D, YYYY\")", e.Column, ErrDateFormat, e.Text)
}

// Is matches ErrDateFormat.
func (e *DateFormatError) Is(target error) bool {
	return target == ErrDateFormat
}

// DateNormalizer extracts the calendar year from "September 24, 2021" style text.
type DateNormalizer struct {
	pattern *regexp.Regexp
	months  map[string]time.Month
}

// NewDateNormalizer creates a new date normalizer.
func NewDateNormalizer() *DateNormalizer {
	months := make(map[string]time.Month, 12)
	for m := time.January; m <= time.December; m++ {
		months[strings.ToLower(m.String())] = m
	}

	return &DateNormalizer{
		pattern: regexp.MustCompile(`^([A-Za-z]+)\s+(\d{1,2}),\s*(\d{4})$`),
		months:  months,
	}
}

// Year returns the year of text, or nil when text is blank. The day is
// validated (1-31) and discarded.
func (n *DateNormalizer) Year(text string) (*int, error) {
	if utils.IsBlank(text) {
		return nil, nil
	}

	trimmed := strings.TrimSpace(text)

	fail := &DateFormatError{Column: models.ColumnDateAdded, Text: text}

	match := n.pattern.FindStringSubmatch(trimmed)
	if match == nil {
		return nil, fail
	}

	if _, ok := n.months[strings.ToLower(match[1])]; !ok {
		return nil, fail
	}

	day, err := strconv.Atoi(match[2])
	if err != nil || day < 1 || day > 31 {
		return nil, fail
	}

	year, err := strconv.Atoi(match[3])
	if err != nil {
		return nil, fail
	}

	return &year, nil
}
