package normalise

import (
	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/ecocitty/ecocitty/pkg/util"
)

// The railway API has changed field names between versions, so every reader accepts the known
// aliases in order of preference.

func Trains(raw any) []ctdf.TrainSearchResult {
	records := Records(raw)
	trains := make([]ctdf.TrainSearchResult, 0, len(records))

	for _, record := range records {
		trains = append(trains, ctdf.TrainSearchResult{
			TrainNumber:     record.Identifier("train_number", "train_no", "trainNumber"),
			TrainName:       record.String("train_name", "trainName"),
			DepartureTime:   record.String("departure_time", "from_std", "from_sta"),
			ArrivalTime:     record.String("arrival_time", "to_sta", "to_std"),
			Duration:        record.String("duration", "travel_time"),
			Distance:        record.String("distance"),
			FromStationName: record.String("from_station_name", "from_name"),
			ToStationName:   record.String("to_station_name", "to_name"),
		})
	}

	return trains
}

// LiveStatus reads the first object of raw. A missing payload gives a record of defaults.
func LiveStatus(raw any) ctdf.LiveStatus {
	record := Record{}
	if records := Records(raw); len(records) > 0 {
		record = records[0]
	}

	return ctdf.LiveStatus{
		TrainNumber:        record.Identifier("train_number", "train_no", "trainNumber"),
		TrainName:          record.String("train_name", "trainName"),
		CurrentStationCode: util.NormaliseCode(record.Identifier("current_station_code", "current_station")),
		CurrentStationName: record.String("current_station_name"),
		NextStationCode:    util.NormaliseCode(record.Identifier("next_station_code", "next_stoppage_code")),
		NextStationName:    record.String("next_station_name", "next_stoppage"),
		DelayMinutes:       record.Int("delay_minutes", "delay"),
		Speed:              record.Int("speed", "avg_speed"),
		LastUpdated:        record.String("last_updated", "updated_time", "current_location_info"),
	}
}

func StationBoard(raw any) []ctdf.StationBoardEntry {
	records := Records(raw)
	entries := make([]ctdf.StationBoardEntry, 0, len(records))

	for _, record := range records {
		entries = append(entries, ctdf.StationBoardEntry{
			TrainNumber:       record.Identifier("train_number", "trainNumber", "train_no"),
			TrainName:         record.String("train_name", "trainName"),
			SourceStation:     record.String("source_station", "sourceStationName", "source"),
			DestinationName:   record.String("destination_station", "destinationStationName", "destination"),
			ExpectedArrival:   record.String("expected_arrival", "eta", "arrivalTime"),
			ExpectedDeparture: record.String("expected_departure", "etd", "departureTime"),
			Platform:          record.String("platform", "platform_number"),
		})
	}

	return entries
}

// RouteStops keeps the upstream order. The schedule may arrive as a bare list or as an object
// holding the list under "route".
func RouteStops(raw any) []ctdf.RouteStop {
	records := Records(Unwrap(raw, "route", "stations"))
	stops := make([]ctdf.RouteStop, 0, len(records))

	for _, record := range records {
		stops = append(stops, ctdf.RouteStop{
			StationCode:   util.NormaliseCode(record.Identifier("station_code", "stationCode")),
			StationName:   record.String("station_name", "stationName"),
			ArrivalTime:   record.String("arrival_time", "sta", "arrivalTime"),
			DepartureTime: record.String("departure_time", "std", "departureTime"),
			Distance:      record.String("distance", "distance_from_source"),
		})
	}

	return stops
}

func Schedule(trainNumber string, raw any) ctdf.TrainSchedule {
	schedule := ctdf.TrainSchedule{
		TrainNumber: trainNumber,
		Stops:       RouteStops(raw),
	}

	if object, ok := raw.(map[string]any); ok {
		schedule.TrainName = Record(object).String("train_name", "trainName")
	}

	return schedule
}

func SeatAvailability(trainNumber string, from string, to string, class string, raw any) ctdf.SeatAvailability {
	records := Records(raw)
	availability := ctdf.SeatAvailability{
		TrainNumber: trainNumber,
		FromStation: util.NormaliseCode(from),
		ToStation:   util.NormaliseCode(to),
		Class:       class,
		Days:        make([]ctdf.SeatAvailabilityEntry, 0, len(records)),
	}

	for _, record := range records {
		availability.Days = append(availability.Days, ctdf.SeatAvailabilityEntry{
			Date:   record.String("date", "ticket_date"),
			Status: record.String("status", "current_status"),
			Fare:   record.Int("fare", "total_fare"),
		})
	}

	return availability
}

func PNR(pnr string, raw any) ctdf.PNRStatus {
	record := Record{}
	if records := Records(raw); len(records) > 0 {
		record = records[0]
	}

	status := ctdf.PNRStatus{
		PNR:        pnr,
		TrainNo:    record.Identifier("train_number", "TrainNo"),
		TrainName:  record.String("train_name", "TrainName"),
		Journey:    record.String("date_of_journey", "Doj"),
		ChartState: record.String("chart_status", "ChartStatus"),
		Passengers: []map[string]any{},
	}

	for _, key := range []string{"passengers", "PassengerStatus"} {
		if _, exists := record[key]; exists {
			for _, passenger := range Records(record[key]) {
				status.Passengers = append(status.Passengers, map[string]any(passenger))
			}
			break
		}
	}

	return status
}

// Stations reads the railway API station search results.
func Stations(raw any) []ctdf.Station {
	records := Records(raw)
	stations := make([]ctdf.Station, 0, len(records))

	for _, record := range records {
		stations = append(stations, ctdf.Station{
			Code: util.NormaliseCode(record.Identifier("code", "station_code")),
			Name: record.String("name", "eng_name", "station_name"),
			Lat:  record.Float("lat", "latitude"),
			Lng:  record.Float("lng", "lon", "longitude"),
		})
	}

	return stations
}
