package opendata

import (
	"context"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/query"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/source"
	"github.com/ecocitty/ecocitty/pkg/normalise"
	"github.com/ecocitty/ecocitty/pkg/upstream"
)

const (
	FormatJSON = "json"
	FormatXML  = "xml"

	defaultLimit = 100
)

// Source reads garbage truck telemetry from a government open-data resource. The resource is
// keyed by an api-key query parameter and can answer in JSON or XML.
type Source struct {
	Client *upstream.Client
	Format string
}

func (s Source) GetName() string {
	return "Open Government Data garbage telemetry"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf([]ctdf.Truck{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q := q.(type) {
	case query.GarbageCollection:
		return s.GarbageCollection(ctx, q)
	default:
		return nil, source.UnsupportedSourceError
	}
}

func (s Source) GarbageCollection(ctx context.Context, q query.GarbageCollection) ([]ctdf.Truck, error) {
	if s.Client == nil {
		return nil, &source.ConfigurationError{
			Source:   s.GetName(),
			Settings: []string{"ECOCITTY_GARBAGE_API_URL", "ECOCITTY_GARBAGE_API_KEY"},
		}
	}

	format := strings.ToLower(s.Format)
	if format != FormatXML {
		format = FormatJSON
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	response, err := s.Client.Get(ctx, "", map[string]string{
		"format": format,
		"limit":  strconv.Itoa(limit),
	})
	if err != nil {
		return nil, err
	}

	// Some resources ignore the format parameter, so trust the content type first.
	if strings.Contains(response.ContentType, "xml") || (format == FormatXML && !strings.Contains(response.ContentType, "json")) {
		trucks, err := normalise.TrucksXML(response.Body)
		if err != nil {
			return nil, &upstream.Failure{Kind: upstream.FailureDecode, Endpoint: s.GetName(), StatusCode: response.StatusCode, Err: err}
		}
		return trucks, nil
	}

	var payload any
	if err := json.Unmarshal(response.Body, &payload); err != nil {
		return nil, &upstream.Failure{Kind: upstream.FailureDecode, Endpoint: s.GetName(), StatusCode: response.StatusCode, Err: err}
	}

	return normalise.TrucksJSON(payload), nil
}
