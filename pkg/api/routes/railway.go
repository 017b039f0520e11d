package routes

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/query"
	"github.com/ecocitty/ecocitty/pkg/util"
	"github.com/gofiber/fiber/v2"

	iso8601 "github.com/senseyeio/duration"
)

const (
	defaultStationBoardHours = 2
	maxStationBoardHours     = 8
	defaultSeatClass         = "SL"
	seatAvailabilityDate     = "02-01-2006"
)

type railwayHandlers struct {
	services *Services
}

func RailwayRouter(router fiber.Router, services *Services) {
	handlers := &railwayHandlers{services: services}

	router.Get("/search-trains", handlers.searchTrains)
	router.Get("/live-train-status/:trainNumber", handlers.liveTrainStatus)
	router.Get("/live-station/:stationCode", handlers.liveStation)
	router.Get("/train-schedule/:trainNumber", handlers.trainSchedule)
	router.Get("/pnr-status/:pnr", handlers.pnrStatus)
	router.Get("/seat-availability", handlers.seatAvailability)
	router.Get("/search-station/:query", handlers.searchStation)
	router.Get("/train-route/:trainNumber", handlers.trainRoute)
}

func (h *railwayHandlers) searchTrains(c *fiber.Ctx) error {
	fromStation := util.NormaliseCode(c.Query("from_station"))
	toStation := util.NormaliseCode(c.Query("to_station"))

	if err := requireParameters(map[string]string{
		"from_station": fromStation,
		"to_station":   toStation,
	}, "from_station", "to_station"); err != nil {
		return sendError(c, err, ctdf.DataProvenanceLive)
	}

	trains, provenance, err := dataaggregator.Lookup[[]ctdf.TrainSearchResult](c.UserContext(), h.services.Aggregator, query.TrainsBetweenStations{
		FromStation: fromStation,
		ToStation:   toStation,
	})
	if err != nil {
		return sendError(c, err, provenance)
	}

	return sendData(c, fiber.Map{
		"trains":              trains,
		"from_station_code":   fromStation,
		"to_station_code":     toStation,
		"from_station_coords": h.services.Stations.Coordinates(fromStation),
		"to_station_coords":   h.services.Stations.Coordinates(toStation),
	}, provenance)
}

func (h *railwayHandlers) liveTrainStatus(c *fiber.Ctx) error {
	trainNumber := strings.TrimSpace(c.Params("trainNumber"))

	startDay := 0
	if value := c.Query("start_day"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			return sendError(c, &ValidationError{Message: "start_day must be a non-negative number of days"}, ctdf.DataProvenanceLive)
		}
		startDay = parsed
	}

	status, provenance, err := dataaggregator.Lookup[ctdf.LiveStatus](c.UserContext(), h.services.Aggregator, query.LiveTrainStatus{
		TrainNumber: trainNumber,
		StartDay:    startDay,
	})
	if err != nil {
		return sendError(c, err, provenance)
	}

	status.CurrentStationCoords = h.services.Stations.Coordinates(status.CurrentStationCode)

	return sendData(c, status, provenance)
}

func (h *railwayHandlers) liveStation(c *fiber.Ctx) error {
	stationCode := util.NormaliseCode(c.Params("stationCode"))

	hours := defaultStationBoardHours
	if value := c.Query("hours"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 1 || parsed > maxStationBoardHours {
			return sendError(c, &ValidationError{Message: fmt.Sprintf("hours must be between 1 and %d", maxStationBoardHours)}, ctdf.DataProvenanceLive)
		}
		hours = parsed
	}

	window, err := iso8601.ParseISO8601(fmt.Sprintf("PT%dH", hours))
	if err != nil {
		return sendError(c, &ValidationError{Message: err.Error()}, ctdf.DataProvenanceLive)
	}

	trains, provenance, err := dataaggregator.Lookup[[]ctdf.StationBoardEntry](c.UserContext(), h.services.Aggregator, query.LiveStation{
		StationCode: stationCode,
		Hours:       hours,
	})
	if err != nil {
		return sendError(c, err, provenance)
	}

	return sendData(c, fiber.Map{
		"station_code":   stationCode,
		"station_coords": h.services.Stations.Coordinates(stationCode),
		"window_end":     window.Shift(h.services.now()).Format(time.RFC3339),
		"trains":         trains,
	}, provenance)
}

func (h *railwayHandlers) trainSchedule(c *fiber.Ctx) error {
	schedule, provenance, err := dataaggregator.Lookup[ctdf.TrainSchedule](c.UserContext(), h.services.Aggregator, query.TrainSchedule{
		TrainNumber: strings.TrimSpace(c.Params("trainNumber")),
	})
	if err != nil {
		return sendError(c, err, provenance)
	}

	return sendData(c, schedule, provenance)
}

func (h *railwayHandlers) pnrStatus(c *fiber.Ctx) error {
	pnr := strings.TrimSpace(c.Params("pnr"))
	if len(pnr) != 10 || strings.Trim(pnr, "0123456789") != "" {
		return sendError(c, &ValidationError{Message: "PNR must be a 10 digit number"}, ctdf.DataProvenanceLive)
	}

	status, provenance, err := dataaggregator.Lookup[ctdf.PNRStatus](c.UserContext(), h.services.Aggregator, query.PNRStatus{PNR: pnr})
	if err != nil {
		return sendError(c, err, provenance)
	}

	return sendData(c, status, provenance)
}

func (h *railwayHandlers) seatAvailability(c *fiber.Ctx) error {
	params := map[string]string{
		"train_no":     strings.TrimSpace(c.Query("train_no")),
		"from_station": util.NormaliseCode(c.Query("from_station")),
		"to_station":   util.NormaliseCode(c.Query("to_station")),
		"date":         strings.TrimSpace(c.Query("date")),
	}
	if err := requireParameters(params, "train_no", "from_station", "to_station", "date"); err != nil {
		return sendError(c, err, ctdf.DataProvenanceLive)
	}

	if _, err := time.Parse(seatAvailabilityDate, params["date"]); err != nil {
		return sendError(c, &ValidationError{Message: "date must be formatted as DD-MM-YYYY"}, ctdf.DataProvenanceLive)
	}

	class := util.NormaliseCode(c.Query("class"))
	if class == "" {
		class = defaultSeatClass
	}

	availability, provenance, err := dataaggregator.Lookup[ctdf.SeatAvailability](c.UserContext(), h.services.Aggregator, query.SeatAvailability{
		TrainNumber: params["train_no"],
		FromStation: params["from_station"],
		ToStation:   params["to_station"],
		Date:        params["date"],
		Class:       class,
	})
	if err != nil {
		return sendError(c, err, provenance)
	}

	return sendData(c, availability, provenance)
}

func (h *railwayHandlers) searchStation(c *fiber.Ctx) error {
	searchQuery := strings.TrimSpace(c.Params("query"))
	if err := requireParameters(map[string]string{"query": searchQuery}, "query"); err != nil {
		return sendError(c, err, ctdf.DataProvenanceLive)
	}

	matches, provenance, err := dataaggregator.Lookup[[]ctdf.Station](c.UserContext(), h.services.Aggregator, query.StationSearch{Query: searchQuery})
	if err != nil {
		return sendError(c, err, provenance)
	}

	return sendData(c, matches, provenance)
}

// trainRoute is the schedule with registry coordinates added. Stops keep their journey order,
// stations missing from the registry are kept without coordinates.
func (h *railwayHandlers) trainRoute(c *fiber.Ctx) error {
	trainNumber := strings.TrimSpace(c.Params("trainNumber"))

	schedule, provenance, err := dataaggregator.Lookup[ctdf.TrainSchedule](c.UserContext(), h.services.Aggregator, query.TrainSchedule{
		TrainNumber: trainNumber,
	})
	if err != nil {
		return sendError(c, err, provenance)
	}

	routeStations := make([]ctdf.RouteStop, 0, len(schedule.Stops))
	for _, stop := range schedule.Stops {
		if coords := h.services.Stations.Coordinates(stop.StationCode); coords != nil {
			lat, lng := coords.Lat, coords.Lng
			stop.Lat = &lat
			stop.Lng = &lng
		}
		routeStations = append(routeStations, stop)
	}

	if schedule.TrainNumber == "" {
		schedule.TrainNumber = trainNumber
	}

	return sendData(c, fiber.Map{
		"train_number":   schedule.TrainNumber,
		"train_name":     schedule.TrainName,
		"route_stations": routeStations,
		"total_stations": len(routeStations),
	}, provenance)
}
