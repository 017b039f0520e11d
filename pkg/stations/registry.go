package stations

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/ecocitty/ecocitty/pkg/util"
	"github.com/gocarina/gocsv"
	"golang.org/x/exp/slices"
)

//go:embed stations.csv
var stationsCSV string

// Registry is the immutable station code → coordinates mapping. It is the single source of
// truth for station coordinates; codes missing from it are unknown, not errors.
type Registry struct {
	byCode map[string]ctdf.Station
	codes  []string
}

// Load parses the embedded station table.
func Load() (*Registry, error) {
	return Parse(stationsCSV)
}

func Parse(csvData string) (*Registry, error) {
	var rows []*ctdf.Station
	if err := gocsv.UnmarshalString(csvData, &rows); err != nil {
		return nil, fmt.Errorf("parsing station table: %w", err)
	}

	return New(rows)
}

func New(rows []*ctdf.Station) (*Registry, error) {
	registry := &Registry{
		byCode: make(map[string]ctdf.Station, len(rows)),
	}

	for _, row := range rows {
		code := util.NormaliseCode(row.Code)
		if code == "" {
			return nil, fmt.Errorf("station %q has no code", row.Name)
		}
		if _, exists := registry.byCode[code]; exists {
			return nil, fmt.Errorf("duplicate station code %s", code)
		}

		station := *row
		station.Code = code
		registry.byCode[code] = station
		registry.codes = append(registry.codes, code)
	}

	slices.Sort(registry.codes)

	return registry, nil
}

// Lookup finds a station by code, ignoring case.
func (r *Registry) Lookup(code string) (ctdf.Station, bool) {
	station, ok := r.byCode[util.NormaliseCode(code)]
	return station, ok
}

// Coordinates returns nil for unknown codes so callers can omit the field.
func (r *Registry) Coordinates(code string) *ctdf.StationCoordinates {
	station, ok := r.Lookup(code)
	if !ok {
		return nil
	}

	return station.Coordinates()
}

func (r *Registry) Len() int {
	return len(r.codes)
}

// All returns every station ordered by code.
func (r *Registry) All() []ctdf.Station {
	all := make([]ctdf.Station, 0, len(r.codes))
	for _, code := range r.codes {
		all = append(all, r.byCode[code])
	}

	return all
}

// AsMap is the {code: {name, lat, lng}} dump served by the map endpoints.
func (r *Registry) AsMap() map[string]*ctdf.StationCoordinates {
	dump := make(map[string]*ctdf.StationCoordinates, len(r.codes))
	for code, station := range r.byCode {
		dump[code] = station.Coordinates()
	}

	return dump
}

// Search matches the query as a case-insensitive substring of the code or the name.
func (r *Registry) Search(query string) []ctdf.Station {
	query = strings.ToLower(strings.TrimSpace(query))
	matches := []ctdf.Station{}

	if query == "" {
		return matches
	}

	for _, code := range r.codes {
		station := r.byCode[code]
		if strings.Contains(strings.ToLower(station.Code), query) || strings.Contains(strings.ToLower(station.Name), query) {
			matches = append(matches, station)
		}
	}

	return matches
}
