package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateNormalizer_Year(t *testing.T) {
	n := NewDateNormalizer()

	tests := []struct {
		input    string
		expected int
	}{
		{"September 24, 2021", 2021},
		{" August 4, 2017", 2017},
		{"january 1, 2008", 2008},
		{"DECEMBER 31, 1999", 1999},
		{"May 9,2015", 2015},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			year, err := n.Year(tt.input)
			require.NoError(t, err)
			require.NotNil(t, year)
			assert.Equal(t, tt.expected, *year)
		})
	}
}

func TestDateNormalizer_Year_Absent(t *testing.T) {
	n := NewDateNormalizer()

	for _, input := range []string{"", "   "} {
		year, err := n.Year(input)
		require.NoError(t, err)
		assert.Nil(t, year)
	}
}

func TestDateNormalizer_Year_Errors(t *testing.T) {
	n := NewDateNormalizer()

	inputs := []string{
		"2021-09-24",
		"Sept 24, 2021",
		"Smarch 24, 2021",
		"September 0, 2021",
		"September 32, 2021",
		"September 24 2021",
		"September 24, 21",
		"September 24, 20211",
		"24 September, 2021",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			year, err := n.Year(input)
			assert.Nil(t, year)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDateFormat)

			var dateErr *DateFormatError
			require.ErrorAs(t, err, &dateErr)
			assert.Equal(t, input, dateErr.Text)
			assert.Equal(t, "date_added", dateErr.Column)
			assert.Contains(t, err.Error(), input)
		})
	}
}
