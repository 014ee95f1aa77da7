package aggregate

import (
	"time"

	"titlecatalog/internal/models"
	"titlecatalog/pkg/metadata"
)

// Summary bundles every aggregate of one dataset snapshot for reporting.
type Summary struct {
	LoadedAt        time.Time       `json:"loadedAt"`
	TypesCount      map[string]int  `json:"typesCount"`
	Source          metadata.Source `json:"source"`
	Types           []string        `json:"types"`
	ReleasesPerYear YearBuckets     `json:"releasesPerYear"`
	AddedPerYear    YearBuckets     `json:"addedPerYear"`
	Range           YearRange       `json:"yearRange"`
	Movies          DurationStats   `json:"movieMinutes"`
	Shows           DurationStats   `json:"showSeasons"`
	Rows            int             `json:"rows"`
	Titles          int             `json:"titles"`
	Directors       int             `json:"directors"`
	Actors          int             `json:"actors"`
	Countries       int             `json:"countries"`
	Categories      int             `json:"categories"`
	Diagnostics     int             `json:"diagnostics"`
}

// Summarize computes a Summary of ds over r.
func Summarize(ds *models.Dataset, r YearRange) Summary {
	summary := Summary{
		Range:           r,
		Rows:            ds.Len(),
		Types:           Types(ds),
		TypesCount:      TypesCount(ds),
		Titles:          len(Titles(ds)),
		Directors:       len(Directors(ds)),
		Actors:          len(Actors(ds)),
		Countries:       len(Countries(ds)),
		Categories:      len(Categories(ds)),
		ReleasesPerYear: ReleasesPerYear(ds, r),
		AddedPerYear:    AddedPerYear(ds, r),
		Movies:          Describe(DurationsMovies(ds)),
		Shows:           Describe(DurationsShows(ds)),
	}

	if ds != nil {
		summary.LoadedAt = ds.LoadedAt
		summary.Source = ds.Source
		summary.Diagnostics = len(ds.Diagnostics)
	}

	return summary
}
