package irctc

import (
	"context"
	"strconv"

	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/query"
	"github.com/ecocitty/ecocitty/pkg/normalise"
	"github.com/ecocitty/ecocitty/pkg/util"
)

func (s Source) TrainsBetweenStations(ctx context.Context, q query.TrainsBetweenStations) ([]ctdf.TrainSearchResult, error) {
	data, err := s.call(ctx, "getTrainsBetweenStations", map[string]string{
		"fromStationCode": util.NormaliseCode(q.FromStation),
		"toStationCode":   util.NormaliseCode(q.ToStation),
	})
	if err != nil {
		return nil, err
	}

	return normalise.Trains(data), nil
}

func (s Source) LiveTrainStatus(ctx context.Context, q query.LiveTrainStatus) (ctdf.LiveStatus, error) {
	data, err := s.call(ctx, "getLiveTrainStatus", map[string]string{
		"trainNo":  q.TrainNumber,
		"startDay": strconv.Itoa(q.StartDay),
	})
	if err != nil {
		return ctdf.LiveStatus{}, err
	}

	status := normalise.LiveStatus(data)
	if status.TrainNumber == "N/A" {
		status.TrainNumber = q.TrainNumber
	}

	return status, nil
}

func (s Source) LiveStation(ctx context.Context, q query.LiveStation) ([]ctdf.StationBoardEntry, error) {
	data, err := s.call(ctx, "getLiveStation", map[string]string{
		"stationCode": util.NormaliseCode(q.StationCode),
		"hours":       strconv.Itoa(q.Hours),
	})
	if err != nil {
		return nil, err
	}

	return normalise.StationBoard(data), nil
}

func (s Source) TrainSchedule(ctx context.Context, q query.TrainSchedule) (ctdf.TrainSchedule, error) {
	data, err := s.call(ctx, "getTrainSchedule", map[string]string{
		"trainNo": q.TrainNumber,
	})
	if err != nil {
		return ctdf.TrainSchedule{}, err
	}

	return normalise.Schedule(q.TrainNumber, data), nil
}

func (s Source) PNRStatus(ctx context.Context, q query.PNRStatus) (ctdf.PNRStatus, error) {
	data, err := s.call(ctx, "getPNRStatus", map[string]string{
		"pnrNumber": q.PNR,
	})
	if err != nil {
		return ctdf.PNRStatus{}, err
	}

	return normalise.PNR(q.PNR, data), nil
}

func (s Source) SeatAvailability(ctx context.Context, q query.SeatAvailability) (ctdf.SeatAvailability, error) {
	data, err := s.call(ctx, "checkSeatAvailability", map[string]string{
		"trainNo":         q.TrainNumber,
		"fromStationCode": util.NormaliseCode(q.FromStation),
		"toStationCode":   util.NormaliseCode(q.ToStation),
		"date":            q.Date,
		"class":           q.Class,
	})
	if err != nil {
		return ctdf.SeatAvailability{}, err
	}

	return normalise.SeatAvailability(q.TrainNumber, q.FromStation, q.ToStation, q.Class, data), nil
}

func (s Source) StationSearch(ctx context.Context, q query.StationSearch) ([]ctdf.Station, error) {
	data, err := s.call(ctx, "searchStation", map[string]string{
		"query": q.Query,
	})
	if err != nil {
		return nil, err
	}

	return normalise.Stations(data), nil
}
