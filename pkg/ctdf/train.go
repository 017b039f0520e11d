package ctdf

type TrainSearchResult struct {
	TrainNumber     string `json:"train_number" yaml:"train_number"`
	TrainName       string `json:"train_name" yaml:"train_name"`
	DepartureTime   string `json:"departure_time" yaml:"departure_time"`
	ArrivalTime     string `json:"arrival_time" yaml:"arrival_time"`
	Duration        string `json:"duration" yaml:"duration"`
	Distance        string `json:"distance" yaml:"distance"`
	FromStationName string `json:"from_station_name" yaml:"from_station_name"`
	ToStationName   string `json:"to_station_name" yaml:"to_station_name"`
}

type LiveStatus struct {
	TrainNumber        string `json:"train_number"`
	TrainName          string `json:"train_name"`
	CurrentStationCode string `json:"current_station_code"`
	CurrentStationName string `json:"current_station_name"`
	NextStationCode    string `json:"next_station_code"`
	NextStationName    string `json:"next_station_name"`
	DelayMinutes       int    `json:"delay_minutes"`
	Speed              int    `json:"speed"`
	LastUpdated        string `json:"last_updated"`

	CurrentStationCoords *StationCoordinates `json:"current_station_coords,omitempty"`
}

// StationBoardEntry is one arrival/departure of a live station board.
type StationBoardEntry struct {
	TrainNumber       string `json:"train_number"`
	TrainName         string `json:"train_name"`
	SourceStation     string `json:"source_station"`
	DestinationName   string `json:"destination_station"`
	ExpectedArrival   string `json:"expected_arrival"`
	ExpectedDeparture string `json:"expected_departure"`
	Platform          string `json:"platform"`
}

// RouteStop is one stop of a train's journey. Slices of RouteStop are always kept in journey
// order.
type RouteStop struct {
	StationCode   string   `json:"station_code" yaml:"station_code"`
	StationName   string   `json:"station_name" yaml:"station_name"`
	ArrivalTime   string   `json:"arrival_time" yaml:"arrival_time"`
	DepartureTime string   `json:"departure_time" yaml:"departure_time"`
	Distance      string   `json:"distance" yaml:"distance"`
	Lat           *float64 `json:"lat,omitempty" yaml:"-"`
	Lng           *float64 `json:"lng,omitempty" yaml:"-"`
}

type TrainSchedule struct {
	TrainNumber string      `json:"train_number" yaml:"train_number"`
	TrainName   string      `json:"train_name" yaml:"train_name"`
	Stops       []RouteStop `json:"stops" yaml:"stops"`
}

type SeatAvailability struct {
	TrainNumber string                  `json:"train_number"`
	FromStation string                  `json:"from_station"`
	ToStation   string                  `json:"to_station"`
	Class       string                  `json:"class"`
	Days        []SeatAvailabilityEntry `json:"availability"`
}

type SeatAvailabilityEntry struct {
	Date   string `json:"date"`
	Status string `json:"status"`
	Fare   int    `json:"fare"`
}

// PNRStatus is passed through from the railway API with only the outer fields normalised.
type PNRStatus struct {
	PNR        string           `json:"pnr"`
	TrainNo    string           `json:"train_number"`
	TrainName  string           `json:"train_name"`
	Journey    string           `json:"date_of_journey"`
	ChartState string           `json:"chart_status"`
	Passengers []map[string]any `json:"passengers"`
}
