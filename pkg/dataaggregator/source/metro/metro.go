package metro

import (
	"context"
	"reflect"
	"strings"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/query"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/source"
	"github.com/ecocitty/ecocitty/pkg/upstream"
	"github.com/rs/zerolog/log"
	"google.golang.org/protobuf/proto"
)

// Source applies a GTFS-realtime service alerts feed on top of the static line list.
type Source struct {
	Client *upstream.Client
	Lines  []ctdf.MetroLineStatus
}

func (s Source) GetName() string {
	return "Metro GTFS-realtime alerts"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf([]ctdf.MetroLineStatus{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q.(type) {
	case query.MetroStatus:
		return s.MetroStatus(ctx)
	default:
		return nil, source.UnsupportedSourceError
	}
}

func (s Source) MetroStatus(ctx context.Context) ([]ctdf.MetroLineStatus, error) {
	if s.Client == nil {
		return nil, &source.ConfigurationError{Source: s.GetName(), Settings: []string{"ECOCITTY_METRO_ALERTS_URL"}}
	}

	response, err := s.Client.Get(ctx, "", nil)
	if err != nil {
		return nil, err
	}

	var feed gtfs.FeedMessage
	if err := proto.Unmarshal(response.Body, &feed); err != nil {
		return nil, &upstream.Failure{Kind: upstream.FailureDecode, Endpoint: s.GetName(), StatusCode: response.StatusCode, Err: err}
	}

	lines := make([]ctdf.MetroLineStatus, 0, len(s.Lines))
	for _, line := range s.Lines {
		line.Status = ctdf.MetroStatusNormal
		line.Message = "Good service"
		lines = append(lines, line)
	}

	alertCount := 0
	for _, entity := range feed.GetEntity() {
		alert := entity.GetAlert()
		if alert == nil {
			continue
		}
		alertCount++

		status := effectStatus(alert.GetEffect())
		message := translatedText(alert.GetHeaderText())
		if message == "" {
			message = translatedText(alert.GetDescriptionText())
		}

		for _, informedEntity := range alert.GetInformedEntity() {
			routeID := informedEntity.GetRouteId()
			if routeID == "" {
				continue
			}

			index := findLine(lines, routeID)
			if index < 0 {
				lines = append(lines, ctdf.MetroLineStatus{Line: routeID})
				index = len(lines) - 1
			}

			if statusSeverity(status) >= statusSeverity(lines[index].Status) {
				lines[index].Status = status
				lines[index].Message = message
			}
		}
	}

	log.Debug().Int("alerts", alertCount).Int("lines", len(lines)).Msg("Applied metro service alerts")

	return lines, nil
}

func effectStatus(effect gtfs.Alert_Effect) string {
	switch effect {
	case gtfs.Alert_NO_SERVICE:
		return ctdf.MetroStatusSuspended
	case gtfs.Alert_REDUCED_SERVICE,
		gtfs.Alert_SIGNIFICANT_DELAYS,
		gtfs.Alert_DETOUR,
		gtfs.Alert_MODIFIED_SERVICE,
		gtfs.Alert_STOP_MOVED:
		return ctdf.MetroStatusDelayed
	default:
		return ctdf.MetroStatusInfo
	}
}

func statusSeverity(status string) int {
	switch status {
	case ctdf.MetroStatusSuspended:
		return 3
	case ctdf.MetroStatusDelayed:
		return 2
	case ctdf.MetroStatusInfo:
		return 1
	default:
		return 0
	}
}

// translatedText prefers English and falls back to the first translation.
func translatedText(text *gtfs.TranslatedString) string {
	translations := text.GetTranslation()
	if len(translations) == 0 {
		return ""
	}

	for _, translation := range translations {
		if strings.HasPrefix(strings.ToLower(translation.GetLanguage()), "en") {
			return translation.GetText()
		}
	}

	return translations[0].GetText()
}

// findLine matches a feed route id such as "BLUE" or "blue-line" against a line name.
func findLine(lines []ctdf.MetroLineStatus, routeID string) int {
	needle := simplify(routeID)

	for i, line := range lines {
		name := simplify(line.Line)
		if name == needle || strings.TrimSuffix(name, "line") == needle || strings.TrimSuffix(needle, "line") == name {
			return i
		}
	}

	return -1
}

func simplify(value string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '_' {
			return -1
		}
		return r
	}, strings.ToLower(value))
}
