package normalizer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"titlecatalog/internal/models"
	"titlecatalog/pkg/utils"
)

// ErrParse is matched by every ParseError.
var ErrParse = errors.New("unrecognized duration")

// ParseError reports duration text with an unknown suffix or a non-numeric count.
type ParseError struct {
	Column string
	Text   string
	Row    int
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d, column %q: %v: %q", e.Row, e.Column, ErrParse, e.Text)
	}

	return fmt.Sprintf("column %q: %v: %q", e.Column, ErrParse, e.Text)
}

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Suffix order matters: "seasons" must be tried before "season".
var durationSuffixes = []struct {
	suffix string
	build  func(int) models.Duration
}{
	{"min", models.Minutes},
	{"seasons", models.Seasons},
	{"season", models.Seasons},
}

// ParseDuration converts "90 min", "2 Seasons" or "1 Season" into a Duration.
// Blank text yields the zero Duration. Magnitude is not bounds-checked
// beyond being a non-negative integer.
func ParseDuration(text string) (models.Duration, error) {
	normalized := strings.ToLower(utils.NormalizeWhitespace(text))
	if normalized == "" {
		return models.Duration{}, nil
	}

	for _, s := range durationSuffixes {
		if !strings.HasSuffix(normalized, s.suffix) {
			continue
		}

		count := strings.TrimSpace(strings.TrimSuffix(normalized, s.suffix))

		n, err := strconv.Atoi(count)
		if err != nil || n < 0 || strings.HasPrefix(count, "+") {
			break
		}

		return s.build(n), nil
	}

	return models.Duration{}, &ParseError{Column: models.ColumnDuration, Text: text}
}
