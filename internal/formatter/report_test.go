package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"titlecatalog/internal/aggregate"
	"titlecatalog/internal/models"
)

func intPtr(v int) *int { return &v }

func testSummary() aggregate.Summary {
	ds := &models.Dataset{
		Titles: []models.Title{
			{
				RawRow:    models.RawRow{Type: "Movie", Title: "Sankofa", Country: "United States, Ghana", ReleaseYear: intPtr(1993)},
				AddedYear: intPtr(2021),
				Duration:  models.Minutes(125),
			},
			{
				RawRow:    models.RawRow{Type: "Movie", Title: "Dick Johnson Is Dead", Country: "United States", ReleaseYear: intPtr(2020)},
				AddedYear: intPtr(2021),
				Duration:  models.Minutes(90),
			},
			{
				RawRow:    models.RawRow{Type: "TV Show", Title: "Blood & Water", Country: "South Africa", ReleaseYear: intPtr(2021)},
				AddedYear: intPtr(2021),
				Duration:  models.Seasons(2),
			},
		},
	}

	return aggregate.Summarize(ds, aggregate.YearRange{Min: 1990, Max: 2021})
}

// findRow returns the trimmed cells of the first table row whose first cell is key.
func findRow(t *testing.T, doc, key string) []string {
	t.Helper()

	for _, line := range strings.Split(doc, "\n") {
		if !strings.HasPrefix(line, "|") {
			continue
		}

		parts := strings.Split(strings.Trim(line, "|"), "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		if parts[0] == key {
			return parts
		}
	}

	t.Fatalf("no row %q in:\n%s", key, doc)

	return nil
}

func TestNewRenderer(t *testing.T) {
	_, err := NewRenderer("csv", false)
	assert.ErrorIs(t, err, ErrUnknownFormat)

	r, err := NewRenderer(FormatJSON, true)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, r.Format)
}

func TestSummaryMarkdown(t *testing.T) {
	doc := SummaryMarkdown(testSummary())

	assert.Contains(t, doc, "# Catalog summary")
	assert.Contains(t, doc, "- Rows: 3")
	assert.Contains(t, doc, "## Per year (1990-2021)")

	assert.Equal(t, []string{"Movie", "2"}, findRow(t, doc, "Movie"))
	assert.Equal(t, []string{"TV Show", "1"}, findRow(t, doc, "TV Show"))
	assert.Equal(t, []string{"country", "3"}, findRow(t, doc, "country"))
	assert.Equal(t, []string{"Movie minutes", "2", "90", "125", "107.5", "107.5"}, findRow(t, doc, "Movie minutes"))
	assert.Equal(t, []string{"Show seasons", "1", "2", "2", "2.0", "2.0"}, findRow(t, doc, "Show seasons"))
	assert.Equal(t, []string{"1993", "1", "0"}, findRow(t, doc, "1993"))
	assert.Equal(t, []string{"2021", "1", "3"}, findRow(t, doc, "2021"))
	assert.Equal(t, []string{"Total", "3", "3"}, findRow(t, doc, "Total"))
	assert.NotContains(t, doc, "| 1994")

	// Every row of an aligned table has the same display width.
	var widths []int
	for _, line := range strings.Split(doc, "\n") {
		if strings.HasPrefix(line, "| Year") || strings.HasPrefix(line, "| 20") || strings.HasPrefix(line, "| 19") {
			widths = append(widths, len(line))
		}
	}
	require.NotEmpty(t, widths)
	for _, w := range widths {
		assert.Equal(t, widths[0], w)
	}
}

func TestRenderer_SummaryJSON(t *testing.T) {
	r, err := NewRenderer(FormatJSON, false)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Summary(&buf, testSummary()))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))

	var decoded aggregate.Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 3, decoded.Rows)
	assert.Equal(t, map[string]int{"Movie": 2, "TV Show": 1}, decoded.TypesCount)
	assert.Len(t, decoded.ReleasesPerYear.Years, 32)
	assert.Equal(t, 3, decoded.AddedPerYear.Count(2021))
}

func TestRenderer_Values(t *testing.T) {
	values := []string{"Ghana", "South Africa", "United States"}

	table, err := NewRenderer(FormatTable, true)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, table.Values(&buf, "country", values))
	assert.Equal(t, []string{"2", "South Africa"}, findRow(t, buf.String(), "2"))

	js, err := NewRenderer(FormatJSON, true)
	require.NoError(t, err)

	buf.Reset()
	require.NoError(t, js.Values(&buf, "country", values))
	assert.Contains(t, buf.String(), "\n  \"column\": \"country\"")

	var decoded struct {
		Column string   `json:"column"`
		Values []string `json:"values"`
		Count  int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, values, decoded.Values)
	assert.Equal(t, 3, decoded.Count)
}
