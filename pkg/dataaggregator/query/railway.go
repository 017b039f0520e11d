package query

type TrainsBetweenStations struct {
	FromStation string
	ToStation   string
}

type LiveTrainStatus struct {
	TrainNumber string
	StartDay    int
}

type LiveStation struct {
	StationCode string
	Hours       int
}

type TrainSchedule struct {
	TrainNumber string
}

type PNRStatus struct {
	PNR string
}

type SeatAvailability struct {
	TrainNumber string
	FromStation string
	ToStation   string
	// Date is DD-MM-YYYY as the railway API expects it.
	Date  string
	Class string
}

type StationSearch struct {
	Query string
}
