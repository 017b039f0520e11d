package irctc

import (
	"context"
	"fmt"
	"reflect"

	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/query"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/source"
	"github.com/ecocitty/ecocitty/pkg/upstream"
)

// Source is the RapidAPI hosted Indian Railways API. A nil Client means no API key was
// configured.
type Source struct {
	Client *upstream.Client
}

func (s Source) GetName() string {
	return "IRCTC RapidAPI"
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
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	if s.Client == nil {
		return nil, &source.ConfigurationError{Source: s.GetName(), Settings: []string{"ECOCITTY_RAILWAY_API_KEY"}}
	}

	switch q := q.(type) {
	case query.TrainsBetweenStations:
		return s.TrainsBetweenStations(ctx, q)
	case query.LiveTrainStatus:
		return s.LiveTrainStatus(ctx, q)
	case query.LiveStation:
		return s.LiveStation(ctx, q)
	case query.TrainSchedule:
		return s.TrainSchedule(ctx, q)
	case query.PNRStatus:
		return s.PNRStatus(ctx, q)
	case query.SeatAvailability:
		return s.SeatAvailability(ctx, q)
	case query.StationSearch:
		return s.StationSearch(ctx, q)
	default:
		return nil, source.UnsupportedSourceError
	}
}

type apiResponse struct {
	Status  bool `json:"status"`
	Message any  `json:"message"`
	Data    any  `json:"data"`
}

// call unwraps the {status, message, data} envelope every endpoint returns. A false status is
// reported as a rejected upstream call.
func (s Source) call(ctx context.Context, endpoint string, params map[string]string) (any, error) {
	var response apiResponse
	if err := s.Client.GetJSON(ctx, endpoint, params, &response); err != nil {
		return nil, err
	}

	if !response.Status {
		return nil, &upstream.Failure{
			Kind:       upstream.FailureRejected,
			Endpoint:   endpoint,
			StatusCode: 200,
			Body:       messageText(response.Message),
		}
	}

	return response.Data, nil
}

func messageText(message any) string {
	switch message := message.(type) {
	case nil:
		return "no message"
	case string:
		return message
	default:
		return fmt.Sprint(message)
	}
}
