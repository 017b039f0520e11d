package ctdf

type Truck struct {
	VehicleNumber string  `json:"vehicle_number"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	Speed         float64 `json:"speed"`
	Status        string  `json:"status"`
	Ward          string  `json:"ward,omitempty"`
	LastUpdated   string  `json:"last_updated,omitempty"`
}
