package ctdf

// DataProvenance records where the data in a response came from.
type DataProvenance string

const (
	DataProvenanceLive     DataProvenance = "live"
	DataProvenanceDemo     DataProvenance = "demo"
	DataProvenanceFallback DataProvenance = "fallback"
)

// Envelope is the wrapper every API response is returned in.
type Envelope struct {
	Status bool           `json:"status"`
	Data   any            `json:"data"`
	Source DataProvenance `json:"source"`
	Error  string         `json:"error,omitempty"`
}
