package ctdf

const (
	RecordKindFeedback      = "feedback"
	RecordKindWasteReport   = "waste_reports"
	RecordKindSafetyHotspot = "safety_hotspots"
	RecordKindIdentity      = "identities"
)

type Feedback struct {
	RecordMeta `bson:",inline" groups:"basic"`

	Name        string `json:"name" bson:"name" groups:"basic"`
	Email       string `json:"email,omitempty" bson:"email" groups:"detailed"`
	Category    string `json:"category" bson:"category" groups:"basic"`
	Description string `json:"description" bson:"description" groups:"basic"`
	Rating      int    `json:"rating,omitempty" bson:"rating" groups:"basic"`

	SubmittedBy string `json:"submitted_by,omitempty" bson:"submitted_by" groups:"internal"`
}

func (f *Feedback) RecordKind() string { return RecordKindFeedback }

type WasteReport struct {
	RecordMeta `bson:",inline" groups:"basic"`

	Location     string  `json:"location" bson:"location" groups:"basic"`
	WasteType    string  `json:"waste_type" bson:"waste_type" groups:"basic"`
	Description  string  `json:"description" bson:"description" groups:"basic"`
	Lat          float64 `json:"lat,omitempty" bson:"lat" groups:"basic"`
	Lng          float64 `json:"lng,omitempty" bson:"lng" groups:"basic"`
	ReporterName string  `json:"reporter_name,omitempty" bson:"reporter_name" groups:"detailed"`

	SubmittedBy string `json:"submitted_by,omitempty" bson:"submitted_by" groups:"internal"`
}

func (w *WasteReport) RecordKind() string { return RecordKindWasteReport }

type SafetyHotspot struct {
	RecordMeta `bson:",inline" groups:"basic"`

	Location    string  `json:"location" bson:"location" groups:"basic"`
	IssueType   string  `json:"issue_type" bson:"issue_type" groups:"basic"`
	Description string  `json:"description" bson:"description" groups:"basic"`
	Severity    string  `json:"severity" bson:"severity" groups:"basic"`
	Lat         float64 `json:"lat,omitempty" bson:"lat" groups:"basic"`
	Lng         float64 `json:"lng,omitempty" bson:"lng" groups:"basic"`

	SubmittedBy string `json:"submitted_by,omitempty" bson:"submitted_by" groups:"internal"`
}

func (s *SafetyHotspot) RecordKind() string { return RecordKindSafetyHotspot }
