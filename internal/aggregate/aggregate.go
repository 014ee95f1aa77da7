// Package aggregate computes categorical and year-bucketed counts over a
// catalog dataset. Every function reads the dataset and never mutates it;
// results are recomputed on each call.
package aggregate

import (
	"titlecatalog/internal/models"
	"titlecatalog/internal/normalizer"
)

// Default year range covered by the per-year tables.
const (
	DefaultMinYear = 1925
	DefaultMaxYear = 2021
)

// YearRange is an inclusive, contiguous range of calendar years.
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DefaultYearRange returns 1925-2021.
func DefaultYearRange() YearRange {
	return YearRange{Min: DefaultMinYear, Max: DefaultMaxYear}
}

// Len returns the number of years in the range.
func (r YearRange) Len() int {
	if r.Max < r.Min {
		return 0
	}

	return r.Max - r.Min + 1
}

// Contains reports whether year lies in the range.
func (r YearRange) Contains(year int) bool {
	return year >= r.Min && year <= r.Max
}

// YearBuckets pairs every year of a range with a count. Years with no rows count zero.
type YearBuckets struct {
	Years  []int `json:"years"`
	Counts []int `json:"counts"`
}

// Total returns the sum of all counts.
func (b YearBuckets) Total() int {
	total := 0
	for _, c := range b.Counts {
		total += c
	}

	return total
}

// Count returns the count for year, or 0 when year is outside the table.
func (b YearBuckets) Count(year int) int {
	if len(b.Years) == 0 || year < b.Years[0] || year > b.Years[len(b.Years)-1] {
		return 0
	}

	return b.Counts[year-b.Years[0]]
}

// Types returns the sorted distinct non-absent type values.
func Types(ds *models.Dataset) []string {
	return distinct(ds, models.ColumnType)
}

// TypesCount maps each type to its row count. Rows with no type are not counted.
func TypesCount(ds *models.Dataset) map[string]int {
	counts := make(map[string]int)

	for _, title := range titles(ds) {
		if title.Type == "" {
			continue
		}

		counts[title.Type]++
	}

	return counts
}

// Titles returns the sorted distinct titles. Titles are not split on commas.
func Titles(ds *models.Dataset) []string {
	return distinct(ds, models.ColumnTitle)
}

// Directors returns every individual director, sorted.
func Directors(ds *models.Dataset) []string {
	return Values(ds, models.ColumnDirector)
}

// Actors returns every individual cast member, sorted.
func Actors(ds *models.Dataset) []string {
	return Values(ds, models.ColumnCast)
}

// Countries returns every individual country, sorted.
func Countries(ds *models.Dataset) []string {
	return Values(ds, models.ColumnCountry)
}

// Categories returns every individual listed_in category, sorted.
func Categories(ds *models.Dataset) []string {
	return Values(ds, models.ColumnListedIn)
}

// Values returns the multi-value set of column.
func Values(ds *models.Dataset, column string) []string {
	return normalizer.UniqueValues(titles(ds), column)
}

// ReleasesPerYear counts rows by release_year over r.
func ReleasesPerYear(ds *models.Dataset, r YearRange) YearBuckets {
	return bucket(ds, r, func(t *models.Title) *int { return t.ReleaseYear })
}

// AddedPerYear counts rows by the year parsed from date_added over r.
func AddedPerYear(ds *models.Dataset, r YearRange) YearBuckets {
	return bucket(ds, r, func(t *models.Title) *int { return t.AddedYear })
}

// DurationsMovies returns every minute count in row order.
func DurationsMovies(ds *models.Dataset) []int {
	out := []int{}

	for _, title := range titles(ds) {
		if n, ok := title.Duration.Minutes(); ok {
			out = append(out, n)
		}
	}

	return out
}

// DurationsShows returns every season count in row order.
func DurationsShows(ds *models.Dataset) []int {
	out := []int{}

	for _, title := range titles(ds) {
		if n, ok := title.Duration.Seasons(); ok {
			out = append(out, n)
		}
	}

	return out
}

func bucket(ds *models.Dataset, r YearRange, year func(*models.Title) *int) YearBuckets {
	n := r.Len()
	buckets := YearBuckets{
		Years:  make([]int, n),
		Counts: make([]int, n),
	}

	for i := range n {
		buckets.Years[i] = r.Min + i
	}

	all := titles(ds)
	for i := range all {
		y := year(&all[i])
		if y == nil || !r.Contains(*y) {
			continue
		}

		buckets.Counts[*y-r.Min]++
	}

	return buckets
}

func distinct(ds *models.Dataset, column string) []string {
	var values []string

	for _, title := range titles(ds) {
		if v := title.Value(column); v != "" {
			values = append(values, v)
		}
	}

	return normalizer.Canonicalize(values)
}

func titles(ds *models.Dataset) []models.Title {
	if ds == nil {
		return nil
	}

	return ds.Titles
}
