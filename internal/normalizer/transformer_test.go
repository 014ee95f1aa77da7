package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"titlecatalog/internal/models"
)

func intPtr(v int) *int {
	return &v
}

func testTable(rows ...models.RawRow) *models.RawTable {
	for i := range rows {
		if rows[i].Line == 0 {
			rows[i].Line = i + 2
		}
	}

	return &models.RawTable{
		Columns: models.RequiredColumns(),
		Rows:    rows,
	}
}

func TestTransformer_Transform(t *testing.T) {
	tr := NewTransformer(DefaultPolicy())

	table := testTable(
		models.RawRow{Type: "Movie", Title: "A", DateAdded: "September 25, 2021", ReleaseYear: intPtr(2020), Duration: "90 min"},
		models.RawRow{Type: "TV Show", Title: "B", DateAdded: "", ReleaseYear: intPtr(2021), Duration: "2 Seasons"},
		models.RawRow{Type: "Movie", Title: "C"},
	)

	ds, err := tr.Transform(table)
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())
	assert.Equal(t, models.RequiredColumns(), ds.Columns)
	assert.False(t, ds.LoadedAt.IsZero())

	first := ds.Titles[0]
	require.NotNil(t, first.AddedYear)
	assert.Equal(t, 2021, *first.AddedYear)
	assert.Equal(t, models.Minutes(90), first.Duration)
	assert.Equal(t, "A", first.Title)

	second := ds.Titles[1]
	assert.Nil(t, second.AddedYear)
	assert.Equal(t, models.Seasons(2), second.Duration)

	third := ds.Titles[2]
	assert.Nil(t, third.AddedYear)
	assert.True(t, third.Duration.IsZero())
	assert.Empty(t, ds.Diagnostics)
}

func TestTransformer_Transform_FixedMissingDate(t *testing.T) {
	tr := NewTransformer(Policy{MissingDates: MissingDateFixed, FixedYear: 2019, OnError: OnErrorAbort})

	ds, err := tr.Transform(testTable(
		models.RawRow{Title: "A"},
		models.RawRow{Title: "B", DateAdded: "March 1, 2020"},
	))
	require.NoError(t, err)

	require.NotNil(t, ds.Titles[0].AddedYear)
	assert.Equal(t, 2019, *ds.Titles[0].AddedYear)
	assert.Equal(t, 2020, *ds.Titles[1].AddedYear)
}

func TestTransformer_Transform_AbortOnError(t *testing.T) {
	tr := NewTransformer(DefaultPolicy())

	t.Run("bad date", func(t *testing.T) {
		_, err := tr.Transform(testTable(
			models.RawRow{Title: "A", DateAdded: "March 1, 2020"},
			models.RawRow{Title: "B", DateAdded: "2021-09-24", Line: 7},
		))

		var dateErr *DateFormatError
		require.ErrorAs(t, err, &dateErr)
		assert.Equal(t, 7, dateErr.Row)
		assert.Equal(t, "2021-09-24", dateErr.Text)
		assert.Contains(t, err.Error(), "row 7")
	})

	t.Run("bad duration", func(t *testing.T) {
		_, err := tr.Transform(testTable(models.RawRow{Title: "A", Duration: "90 mins"}))

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, 2, parseErr.Row)
		assert.Equal(t, "90 mins", parseErr.Text)
	})
}

func TestTransformer_Transform_SkipOnError(t *testing.T) {
	tr := NewTransformer(Policy{MissingDates: MissingDateFixed, FixedYear: 2019, OnError: OnErrorSkip})

	ds, err := tr.Transform(testTable(
		models.RawRow{Title: "A", DateAdded: "2021-09-24", Duration: "90 min"},
		models.RawRow{Title: "B", DateAdded: "May 2, 2018", Duration: "90 mins"},
		models.RawRow{Title: "C", Duration: "3 Seasons"},
	))
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())

	assert.Nil(t, ds.Titles[0].AddedYear, "malformed dates are not imputed")
	assert.Equal(t, models.Minutes(90), ds.Titles[0].Duration)
	assert.Equal(t, 2018, *ds.Titles[1].AddedYear)
	assert.True(t, ds.Titles[1].Duration.IsZero())
	assert.Equal(t, 2019, *ds.Titles[2].AddedYear)

	require.Len(t, ds.Diagnostics, 2)
	assert.Equal(t, models.Diagnostic{
		Row:     2,
		Column:  "date_added",
		Text:    "2021-09-24",
		Message: ds.Diagnostics[0].Message,
	}, ds.Diagnostics[0])
	assert.Contains(t, ds.Diagnostics[0].Message, "row 2")
	assert.Equal(t, 3, ds.Diagnostics[1].Row)
	assert.Equal(t, "duration", ds.Diagnostics[1].Column)
	assert.Equal(t, "90 mins", ds.Diagnostics[1].Text)
}

func TestTransformer_Transform_Error(t *testing.T) {
	tr := NewTransformer(DefaultPolicy())

	_, err := tr.Transform(nil)
	assert.ErrorIs(t, err, ErrNilTable)
}
