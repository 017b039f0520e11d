package demo

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/query"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/source"
	"github.com/ecocitty/ecocitty/pkg/stations"
)

// Source serves canned and generated data. It never performs I/O.
type Source struct {
	Fixtures *Fixtures
	Stations *stations.Registry

	// Now is used for generated timestamps and truck movement. Defaults to time.Now.
	Now func() time.Time
}

func NewSource(fixtures *Fixtures, registry *stations.Registry) Source {
	return Source{
		Fixtures: fixtures,
		Stations: registry,
		Now:      time.Now,
	}
}

func (s Source) GetName() string {
	return "Demo data"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf([]ctdf.TrainSearchResult{}),
		reflect.TypeOf(ctdf.LiveStatus{}),
		reflect.TypeOf([]ctdf.StationBoardEntry{}),
		reflect.TypeOf(ctdf.TrainSchedule{}),
		reflect.TypeOf(ctdf.PNRStatus{}),
		reflect.TypeOf(ctdf.SeatAvailability{}),
		reflect.TypeOf([]ctdf.Station{}),
		reflect.TypeOf([]ctdf.Truck{}),
		reflect.TypeOf([]ctdf.MetroLineStatus{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q := q.(type) {
	case query.TrainsBetweenStations:
		trains := s.Fixtures.TrainsBetween(q.FromStation, q.ToStation)
		if trains == nil {
			return nil, source.ErrNoData
		}
		return trains, nil
	case query.LiveTrainStatus:
		return s.liveStatus(q)
	case query.LiveStation:
		return s.stationBoard(q)
	case query.TrainSchedule:
		schedule, exists := s.Fixtures.Schedule(q.TrainNumber)
		if !exists {
			return nil, source.ErrNoData
		}
		return schedule, nil
	case query.PNRStatus:
		// Reservations are personal, there is nothing sensible to fabricate.
		return nil, source.ErrNoData
	case query.SeatAvailability:
		return s.seatAvailability(q)
	case query.StationSearch:
		return s.Stations.Search(q.Query), nil
	case query.SyntheticTrucks, query.GarbageCollection:
		return s.trucks(), nil
	case query.MetroStatus:
		return append([]ctdf.MetroLineStatus{}, s.Fixtures.MetroLines...), nil
	default:
		return nil, source.UnsupportedSourceError
	}
}

func (s Source) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}

	return s.Now()
}

func (s Source) stationName(code string) string {
	if station, ok := s.Stations.Lookup(code); ok {
		return station.Name
	}

	return strings.ToUpper(code)
}
