package query

// GarbageCollection asks for live truck telemetry from the open-data feed.
type GarbageCollection struct {
	Limit int
}

// SyntheticTrucks asks for the generated truck positions used by the map.
type SyntheticTrucks struct{}

type MetroStatus struct{}
