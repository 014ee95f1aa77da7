package catalog

import (
	"titlecatalog/internal/aggregate"
)

// Types returns the sorted distinct title types.
func (c *Catalog) Types() []string {
	return aggregate.Types(c.Snapshot())
}

// TypesCount maps each title type to its row count.
func (c *Catalog) TypesCount() map[string]int {
	return aggregate.TypesCount(c.Snapshot())
}

// Titles returns the sorted distinct titles.
func (c *Catalog) Titles() []string {
	return aggregate.Titles(c.Snapshot())
}

// Directors returns the sorted set of individual directors.
func (c *Catalog) Directors() []string {
	return aggregate.Directors(c.Snapshot())
}

// Actors returns the sorted set of individual cast members.
func (c *Catalog) Actors() []string {
	return aggregate.Actors(c.Snapshot())
}

// Countries returns the sorted set of individual countries.
func (c *Catalog) Countries() []string {
	return aggregate.Countries(c.Snapshot())
}

// Categories returns the sorted set of individual categories.
func (c *Catalog) Categories() []string {
	return aggregate.Categories(c.Snapshot())
}

// Values returns the sorted multi-value set of any column.
func (c *Catalog) Values(column string) []string {
	return aggregate.Values(c.Snapshot(), column)
}

// DurationsMovies returns every runtime in minutes, in row order.
func (c *Catalog) DurationsMovies() []int {
	return aggregate.DurationsMovies(c.Snapshot())
}

// DurationsShows returns every season count, in row order.
func (c *Catalog) DurationsShows() []int {
	return aggregate.DurationsShows(c.Snapshot())
}

// ReleasesPerYear returns years and release counts aligned by position.
func (c *Catalog) ReleasesPerYear() ([]int, []int) {
	b := aggregate.ReleasesPerYear(c.Snapshot(), c.years)

	return b.Years, b.Counts
}

// AddedPerYear returns years and added-to-catalog counts aligned by position.
func (c *Catalog) AddedPerYear() ([]int, []int) {
	b := aggregate.AddedPerYear(c.Snapshot(), c.years)

	return b.Years, b.Counts
}

// Summary computes every aggregate of the current snapshot.
func (c *Catalog) Summary() aggregate.Summary {
	return aggregate.Summarize(c.Snapshot(), c.years)
}
