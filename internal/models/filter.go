package models

import "time"

// FilterDimension names a single replaceable part of the filter state.
type FilterDimension string

const (
	DimensionDateRange  FilterDimension = "dateRange"
	DimensionRegions    FilterDimension = "regions"
	DimensionCountries  FilterDimension = "countries"
	DimensionCategories FilterDimension = "categories"
	DimensionStatuses   FilterDimension = "statuses"
)

// DateRange is an inclusive date interval.
type DateRange struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Contains reports whether t falls inside the range, inclusive both ends.
func (dr DateRange) Contains(t time.Time) bool {
	return !t.Before(dr.StartDate) && !t.After(dr.EndDate)
}

// FilterState is the full set of user-selected filters. An empty inclusion
// slice means "no restriction on this dimension", never "exclude everything".
type FilterState struct {
	DateRange  DateRange `json:"date_range"`
	Regions    []string  `json:"regions"`
	Countries  []string  `json:"countries"`
	Categories []string  `json:"categories"`
	Statuses   []string  `json:"statuses"`
}

// DefaultFilterState returns the session-start filter: the dataset's full
// date span and no categorical restrictions.
func DefaultFilterState() FilterState {
	return FilterState{
		DateRange: DateRange{
			StartDate: time.Date(2013, time.January, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		Regions:    []string{},
		Countries:  []string{},
		Categories: []string{},
		Statuses:   []string{},
	}
}

// Clone returns a deep copy so callers can hand out filter state without
// exposing internal slices to mutation.
func (f FilterState) Clone() FilterState {
	c := f
	c.Regions = append([]string{}, f.Regions...)
	c.Countries = append([]string{}, f.Countries...)
	c.Categories = append([]string{}, f.Categories...)
	c.Statuses = append([]string{}, f.Statuses...)
	return c
}

// FilterOptions is the distinct value set available for each categorical
// dimension, derived from the unfiltered dataset.
type FilterOptions struct {
	Regions    []string `json:"regions"`
	Countries  []string `json:"countries"`
	Categories []string `json:"categories"`
	Statuses   []string `json:"statuses"`
}
