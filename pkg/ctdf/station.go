package ctdf

// Station is an entry of the static station registry. Codes are always upper case.
type Station struct {
	Code string  `json:"code" csv:"code"`
	Name string  `json:"name" csv:"name"`
	Lat  float64 `json:"lat" csv:"lat"`
	Lng  float64 `json:"lng" csv:"lng"`
}

// StationCoordinates is the shape embedded in responses next to a station code.
type StationCoordinates struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

func (s Station) Coordinates() *StationCoordinates {
	return &StationCoordinates{
		Name: s.Name,
		Lat:  s.Lat,
		Lng:  s.Lng,
	}
}
