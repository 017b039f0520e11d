package demo

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/ecocitty/ecocitty/pkg/util"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var fixturesFile []byte

type Fixtures struct {
	Trains     map[string][]ctdf.TrainSearchResult `yaml:"trains"`
	Schedules  map[string]ctdf.TrainSchedule       `yaml:"schedules"`
	MetroLines []ctdf.MetroLineStatus              `yaml:"metro_lines"`
}

func LoadFixtures() (*Fixtures, error) {
	var fixtures Fixtures
	if err := yaml.Unmarshal(fixturesFile, &fixtures); err != nil {
		return nil, fmt.Errorf("demo fixtures: %w", err)
	}

	return &fixtures, nil
}

func pairKey(from string, to string) string {
	return util.NormaliseCode(from) + "-" + util.NormaliseCode(to)
}

func splitPairKey(key string) (string, string) {
	from, to, _ := strings.Cut(key, "-")

	return from, to
}

// TrainsBetween returns a copy of the canned list for the pair, or nil when there is none.
func (f *Fixtures) TrainsBetween(from string, to string) []ctdf.TrainSearchResult {
	trains, exists := f.Trains[pairKey(from, to)]
	if !exists {
		return nil
	}

	return append([]ctdf.TrainSearchResult{}, trains...)
}

func (f *Fixtures) Schedule(trainNumber string) (ctdf.TrainSchedule, bool) {
	schedule, exists := f.Schedules[strings.TrimSpace(trainNumber)]
	if !exists {
		return ctdf.TrainSchedule{}, false
	}

	schedule.Stops = append([]ctdf.RouteStop{}, schedule.Stops...)
	return schedule, true
}

func (f *Fixtures) pairKeys() []string {
	keys := make([]string, 0, len(f.Trains))
	for key := range f.Trains {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	return keys
}

// FindTrain looks a train number up across every canned pair.
func (f *Fixtures) FindTrain(trainNumber string) (ctdf.TrainSearchResult, bool) {
	for _, key := range f.pairKeys() {
		for _, train := range f.Trains[key] {
			if train.TrainNumber == trainNumber {
				return train, true
			}
		}
	}

	return ctdf.TrainSearchResult{}, false
}
