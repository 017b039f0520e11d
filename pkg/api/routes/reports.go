package routes

import (
	"strings"

	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/ecocitty/ecocitty/pkg/database"
	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"github.com/liip/sheriff"
)

const maxListLimit = 500

type feedbackRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Rating      int    `json:"rating"`

	SubmittedBy string `json:"-"`
}

func (r *feedbackRequest) validate() error {
	if err := requireParameters(map[string]string{"description": r.Description}, "description"); err != nil {
		return err
	}
	if r.Rating < 0 || r.Rating > 5 {
		return &ValidationError{Message: "rating must be between 0 and 5"}
	}

	if strings.TrimSpace(r.Name) == "" {
		r.Name = "Anonymous"
	}
	if strings.TrimSpace(r.Category) == "" {
		r.Category = "general"
	}

	return nil
}

func (r *feedbackRequest) submittedBy(email string) { r.SubmittedBy = email }

type wasteReportRequest struct {
	Location     string  `json:"location"`
	WasteType    string  `json:"waste_type"`
	Description  string  `json:"description"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	ReporterName string  `json:"reporter_name"`

	SubmittedBy string `json:"-"`
}

func (r *wasteReportRequest) validate() error {
	return requireParameters(map[string]string{
		"location":   r.Location,
		"waste_type": r.WasteType,
	}, "location", "waste_type")
}

func (r *wasteReportRequest) submittedBy(email string) { r.SubmittedBy = email }

type safetyHotspotRequest struct {
	Location    string  `json:"location"`
	IssueType   string  `json:"issue_type"`
	Description string  `json:"description"`
	Severity    string  `json:"severity"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`

	SubmittedBy string `json:"-"`
}

func (r *safetyHotspotRequest) validate() error {
	if err := requireParameters(map[string]string{
		"location":   r.Location,
		"issue_type": r.IssueType,
	}, "location", "issue_type"); err != nil {
		return err
	}

	switch strings.ToLower(strings.TrimSpace(r.Severity)) {
	case "":
		r.Severity = "medium"
	case "low", "medium", "high":
		r.Severity = strings.ToLower(strings.TrimSpace(r.Severity))
	default:
		return &ValidationError{Message: "severity must be one of low, medium, high"}
	}

	return nil
}

func (r *safetyHotspotRequest) submittedBy(email string) { r.SubmittedBy = email }

type reportRequest[R any] interface {
	*R
	validate() error
	submittedBy(email string)
}

func ReportsRouter(router fiber.Router, services *Services) {
	router.Post("/feedback", createReport[feedbackRequest](services, ctdf.RecordKindFeedback, "Feedback submitted", services.Store.Feedback))
	router.Get("/feedback", listReports(ctdf.RecordKindFeedback, services.Store.Feedback))

	router.Post("/waste-reports", createReport[wasteReportRequest](services, ctdf.RecordKindWasteReport, "Waste report submitted", services.Store.WasteReports))
	router.Get("/waste-reports", listReports(ctdf.RecordKindWasteReport, services.Store.WasteReports))

	router.Post("/safety-hotspots", createReport[safetyHotspotRequest](services, ctdf.RecordKindSafetyHotspot, "Safety hotspot reported", services.Store.SafetyHotspots))
	router.Get("/safety-hotspots", listReports(ctdf.RecordKindSafetyHotspot, services.Store.SafetyHotspots))
}

// createReport validates the body, copies it onto a new record and performs a single insert.
func createReport[R any, PR reportRequest[R], T any](services *Services, kind string, message string, repository database.Repository[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		request := PR(new(R))
		if err := c.BodyParser(request); err != nil {
			return sendError(c, &ValidationError{Message: "Body must be a JSON object"}, ctdf.DataProvenanceLive)
		}

		if err := request.validate(); err != nil {
			return sendError(c, err, ctdf.DataProvenanceLive)
		}

		if session := currentSession(c, services.now()); session != nil {
			request.submittedBy(session.Email)
		}

		record := new(T)
		if err := copier.Copy(record, request); err != nil {
			return sendError(c, err, ctdf.DataProvenanceLive)
		}

		id, err := repository.Insert(c.UserContext(), record)
		if err != nil {
			return sendError(c, &PersistenceError{Kind: kind, Err: err}, ctdf.DataProvenanceLive)
		}

		c.SendStatus(fiber.StatusCreated)
		return c.JSON(fiber.Map{
			"status":  true,
			"message": message,
			"id":      id,
			"source":  ctdf.DataProvenanceLive,
		})
	}
}

// listReports returns the newest records first, reduced to their public fields.
func listReports[T any](kind string, repository database.Repository[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 100)
		if limit < 1 || limit > maxListLimit {
			return sendError(c, &ValidationError{Message: "limit must be between 1 and 500"}, ctdf.DataProvenanceLive)
		}

		records, err := repository.List(c.UserContext(), database.ListOptions{Limit: limit})
		if err != nil {
			return sendError(c, &PersistenceError{Kind: kind, Err: err}, ctdf.DataProvenanceLive)
		}

		reduced, err := sheriff.Marshal(&sheriff.Options{
			Groups: []string{"basic"},
		}, records)
		if err != nil {
			return sendError(c, err, ctdf.DataProvenanceLive)
		}

		return sendData(c, reduced, ctdf.DataProvenanceLive)
	}
}
