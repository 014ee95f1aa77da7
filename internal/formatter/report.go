package formatter

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"titlecatalog/internal/aggregate"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// ErrUnknownFormat is returned for a format other than table or json.
var ErrUnknownFormat = errors.New("unknown report format")

// Renderer writes reports in one output format.
type Renderer struct {
	Format      string
	PrettyPrint bool
}

// NewRenderer creates a renderer, validating format.
func NewRenderer(format string, prettyPrint bool) (*Renderer, error) {
	switch format {
	case FormatTable, FormatJSON:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return &Renderer{Format: format, PrettyPrint: prettyPrint}, nil
}

// Summary writes s to w.
func (r *Renderer) Summary(w io.Writer, s aggregate.Summary) error {
	if r.Format == FormatJSON {
		return r.writeJSON(w, s)
	}

	_, err := io.WriteString(w, SummaryMarkdown(s)+"\n")

	return err
}

// Values writes the distinct values of one column to w.
func (r *Renderer) Values(w io.Writer, column string, values []string) error {
	if r.Format == FormatJSON {
		return r.writeJSON(w, struct {
			Column string   `json:"column"`
			Values []string `json:"values"`
			Count  int      `json:"count"`
		}{column, values, len(values)})
	}

	lines := []string{
		tableRow("#", column),
		tableSeparator(2),
	}

	for i, v := range values {
		lines = append(lines, tableRow(strconv.Itoa(i+1), v))
	}

	_, err := io.WriteString(w, FormatMarkdown(strings.Join(lines, "\n"))+"\n")

	return err
}

func (r *Renderer) writeJSON(w io.Writer, v any) error {
	var (
		data []byte
		err  error
	)

	if r.PrettyPrint {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	_, err = w.Write(append(data, '\n'))

	return err
}

// SummaryMarkdown renders s as a markdown document with aligned tables.
// The per-year table lists only years in which something was released or added.
func SummaryMarkdown(s aggregate.Summary) string {
	var lines []string

	add := func(l ...string) { lines = append(lines, l...) }

	add("# Catalog summary", "")

	if s.Source.Path != "" {
		add(fmt.Sprintf("- Source: %s (%d bytes, fingerprint %s)", s.Source.Path, s.Source.Size, s.Source.Short()))
	}

	if !s.LoadedAt.IsZero() {
		add("- Loaded: " + s.LoadedAt.Format(time.RFC3339))
	}

	add(
		fmt.Sprintf("- Rows: %d", s.Rows),
		fmt.Sprintf("- Skipped values: %d", s.Diagnostics),
		"",
		"## Types",
		"",
		tableRow("Type", "Count"),
		tableSeparator(2),
	)

	for _, t := range s.Types {
		add(tableRow(t, strconv.Itoa(s.TypesCount[t])))
	}

	add(
		"",
		"## Distinct values",
		"",
		tableRow("Column", "Distinct"),
		tableSeparator(2),
		tableRow("title", strconv.Itoa(s.Titles)),
		tableRow("director", strconv.Itoa(s.Directors)),
		tableRow("cast", strconv.Itoa(s.Actors)),
		tableRow("country", strconv.Itoa(s.Countries)),
		tableRow("listed_in", strconv.Itoa(s.Categories)),
		"",
		"## Durations",
		"",
		tableRow("Kind", "Count", "Min", "Max", "Mean", "Median"),
		tableSeparator(6),
		statsRow("Movie minutes", s.Movies),
		statsRow("Show seasons", s.Shows),
		"",
		fmt.Sprintf("## Per year (%d-%d)", s.Range.Min, s.Range.Max),
		"",
		tableRow("Year", "Released", "Added"),
		tableSeparator(3),
	)

	for _, year := range activeYears(s) {
		add(tableRow(
			strconv.Itoa(year),
			strconv.Itoa(s.ReleasesPerYear.Count(year)),
			strconv.Itoa(s.AddedPerYear.Count(year)),
		))
	}

	add(
		tableRow("Total", strconv.Itoa(s.ReleasesPerYear.Total()), strconv.Itoa(s.AddedPerYear.Total())),
	)

	return FormatMarkdown(strings.Join(lines, "\n"))
}

func statsRow(label string, st aggregate.DurationStats) string {
	return tableRow(
		label,
		strconv.Itoa(st.Count),
		strconv.Itoa(st.Min),
		strconv.Itoa(st.Max),
		strconv.FormatFloat(st.Mean, 'f', 1, 64),
		strconv.FormatFloat(st.Median, 'f', 1, 64),
	)
}

func activeYears(s aggregate.Summary) []int {
	var years []int

	// Both tables cover s.Range.
	for year := s.Range.Min; year <= s.Range.Max; year++ {
		if s.ReleasesPerYear.Count(year) > 0 || s.AddedPerYear.Count(year) > 0 {
			years = append(years, year)
		}
	}

	return years
}
