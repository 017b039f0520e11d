package demo

import (
	"fmt"
	"hash/fnv"
	"math"
	"time"

	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/query"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/source"
	"github.com/ecocitty/ecocitty/pkg/util"
	"golang.org/x/exp/slices"
)

const (
	truckCount     = 8
	truckCentreLat = 28.6139
	truckCentreLng = 77.2090

	seatAvailabilityDays = 6
	seatDateLayout       = "02-01-2006"
)

var truckWards = []string{
	"Karol Bagh", "Rohini", "Dwarka", "Shahdara", "Lajpat Nagar", "Saket", "Narela", "Civil Lines",
}

var classFares = map[string]int{
	"1A": 4210,
	"2A": 2470,
	"3A": 1765,
	"3E": 1650,
	"CC": 1185,
	"EC": 2385,
	"SL": 655,
	"2S": 250,
}

// seed gives generated values that are stable for the same input.
func seed(value string) int {
	hash := fnv.New32a()
	hash.Write([]byte(value))

	return int(hash.Sum32() % 1000)
}

func (s Source) liveStatus(q query.LiveTrainStatus) (ctdf.LiveStatus, error) {
	trainSeed := seed(q.TrainNumber)
	status := ctdf.LiveStatus{
		TrainNumber:  q.TrainNumber,
		DelayMinutes: trainSeed % 25,
		Speed:        60 + trainSeed%50,
		LastUpdated:  s.now().Format(time.RFC3339),
	}

	if schedule, exists := s.Fixtures.Schedule(q.TrainNumber); exists && len(schedule.Stops) > 1 {
		status.TrainName = schedule.TrainName

		// Advance one stop every quarter hour so the demo train appears to move.
		position := (s.now().Hour()*4 + s.now().Minute()/15 + q.StartDay) % (len(schedule.Stops) - 1)
		current := schedule.Stops[position]
		next := schedule.Stops[position+1]

		status.CurrentStationCode = current.StationCode
		status.CurrentStationName = current.StationName
		status.NextStationCode = next.StationCode
		status.NextStationName = next.StationName

		return status, nil
	}

	train, exists := s.Fixtures.FindTrain(q.TrainNumber)
	if !exists {
		return ctdf.LiveStatus{}, source.ErrNoData
	}

	fromCode, toCode := s.trainPair(q.TrainNumber)
	status.TrainName = train.TrainName
	status.CurrentStationCode = fromCode
	status.CurrentStationName = s.stationName(fromCode)
	status.NextStationCode = toCode
	status.NextStationName = s.stationName(toCode)

	return status, nil
}

func (s Source) trainPair(trainNumber string) (string, string) {
	for _, key := range s.Fixtures.pairKeys() {
		for _, train := range s.Fixtures.Trains[key] {
			if train.TrainNumber == trainNumber {
				return splitPairKey(key)
			}
		}
	}

	return "", ""
}

// stationBoard lists the canned trains starting or ending at the station that call within the
// next q.Hours. A station with trains but none in the window gets an empty board.
func (s Source) stationBoard(q query.LiveStation) ([]ctdf.StationBoardEntry, error) {
	stationCode := util.NormaliseCode(q.StationCode)
	entries := []ctdf.StationBoardEntry{}
	served := false

	now := s.now()
	windowEnd := now.Add(time.Duration(q.Hours) * time.Hour)

	for _, key := range s.Fixtures.pairKeys() {
		fromCode, toCode := splitPairKey(key)
		if fromCode != stationCode && toCode != stationCode {
			continue
		}

		for _, train := range s.Fixtures.Trains[key] {
			served = true

			entry := ctdf.StationBoardEntry{
				TrainNumber:     train.TrainNumber,
				TrainName:       train.TrainName,
				SourceStation:   train.FromStationName,
				DestinationName: train.ToStationName,
				Platform:        fmt.Sprint(1 + seed(train.TrainNumber+stationCode)%8),
			}

			if fromCode == stationCode {
				entry.ExpectedArrival = "Source"
				entry.ExpectedDeparture = train.DepartureTime
			} else {
				entry.ExpectedArrival = train.ArrivalTime
				entry.ExpectedDeparture = "Destination"
			}

			if q.Hours > 0 && nextCall(now, entry).After(windowEnd) {
				continue
			}

			entries = append(entries, entry)
		}
	}

	if !served {
		return nil, source.ErrNoData
	}

	slices.SortStableFunc(entries, func(a, b ctdf.StationBoardEntry) int {
		return nextCall(now, a).Compare(nextCall(now, b))
	})

	return entries, nil
}

// nextCall is the next time the entry's train is at the station, counted from now. Entries
// without a clock reading sort last.
func nextCall(now time.Time, entry ctdf.StationBoardEntry) time.Time {
	clock := entry.ExpectedDeparture
	if clock == "Destination" {
		clock = entry.ExpectedArrival
	}

	call, ok := util.ParseClockTime(now, clock)
	if !ok {
		return now.Add(48 * time.Hour)
	}
	if call.Before(now) {
		call = call.AddDate(0, 0, 1)
	}

	return call
}

func (s Source) seatAvailability(q query.SeatAvailability) (ctdf.SeatAvailability, error) {
	startDate, err := time.Parse(seatDateLayout, q.Date)
	if err != nil {
		return ctdf.SeatAvailability{}, source.ErrNoData
	}

	fare, exists := classFares[util.NormaliseCode(q.Class)]
	if !exists {
		fare = classFares["SL"]
	}

	trainSeed := seed(q.TrainNumber + q.Class)
	availability := ctdf.SeatAvailability{
		TrainNumber: q.TrainNumber,
		FromStation: util.NormaliseCode(q.FromStation),
		ToStation:   util.NormaliseCode(q.ToStation),
		Class:       util.NormaliseCode(q.Class),
	}

	for day := 0; day < seatAvailabilityDays; day++ {
		count := (trainSeed + day*17) % 90
		var status string

		switch (trainSeed + day) % 4 {
		case 0, 1:
			status = fmt.Sprintf("AVAILABLE-%04d", count+10)
		case 2:
			status = fmt.Sprintf("RAC %d", count%30+1)
		default:
			status = fmt.Sprintf("GNWL%d/WL%d", count+5, count)
		}

		availability.Days = append(availability.Days, ctdf.SeatAvailabilityEntry{
			Date:   startDate.AddDate(0, 0, day).Format(seatDateLayout),
			Status: status,
			Fare:   fare,
		})
	}

	return availability, nil
}

// trucks places the fleet on rings around central Delhi, rotating with the minute of the hour.
func (s Source) trucks() []ctdf.Truck {
	now := s.now()
	trucks := make([]ctdf.Truck, 0, truckCount)

	for i := 0; i < truckCount; i++ {
		radius := 0.02 + float64(i%4)*0.02
		angle := (float64(i)*45 + float64(now.Minute())*6) * math.Pi / 180

		truck := ctdf.Truck{
			VehicleNumber: fmt.Sprintf("DL1LAB%04d", 1001+i*137),
			Lat:           roundCoordinate(truckCentreLat + radius*math.Sin(angle)),
			Lng:           roundCoordinate(truckCentreLng + radius*math.Cos(angle)),
			Status:        "Collecting",
			Speed:         float64(15 + (i*7)%25),
			Ward:          truckWards[i%len(truckWards)],
			LastUpdated:   now.Format(time.RFC3339),
		}

		if i%4 == 3 {
			truck.Status = "Idle"
			truck.Speed = 0
		}

		trucks = append(trucks, truck)
	}

	return trucks
}

func roundCoordinate(value float64) float64 {
	return math.Round(value*1e6) / 1e6
}
