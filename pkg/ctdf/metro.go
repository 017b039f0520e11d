package ctdf

type MetroLineStatus struct {
	Line    string `json:"line" yaml:"line"`
	Colour  string `json:"colour" yaml:"colour"`
	Status  string `json:"status" yaml:"status"`
	Message string `json:"message" yaml:"message"`
}

const (
	MetroStatusNormal    = "Normal"
	MetroStatusDelayed   = "Delayed"
	MetroStatusSuspended = "Suspended"
	MetroStatusInfo      = "Information"
)
