package dataaggregator

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/source"
	"github.com/ecocitty/ecocitty/pkg/demomode"
	"github.com/ecocitty/ecocitty/pkg/upstream"
	"github.com/rs/zerolog/log"
)

var ErrNoData = source.ErrNoData
var ErrNoMatchingSource = errors.New("Failed to find a matching Data Source for type")

// Aggregator answers queries from the live sources, or from the demo source when the request is
// in demo mode or every live attempt failed.
type Aggregator struct {
	Sources []DataSource
	Demo    DataSource
}

func (a *Aggregator) RegisterSource(source DataSource) {
	a.Sources = append(a.Sources, source)

	log.Debug().Str("name", source.GetName()).Msg("Registering new Data Source")
}

func (a *Aggregator) RegisterDemoSource(source DataSource) {
	a.Demo = source

	log.Debug().Str("name", source.GetName()).Msg("Registering demo Data Source")
}

// Lookup resolves query to a T and reports where the value came from. Configuration errors of
// a live source are returned as is. Any other live failure is replaced by demo data tagged as a
// fallback.
func Lookup[T any](ctx context.Context, a *Aggregator, query any) (T, ctdf.DataProvenance, error) {
	if demomode.FromContext(ctx) {
		value, err := lookupDemo[T](ctx, a, query)
		return value, ctdf.DataProvenanceDemo, err
	}

	value, err := lookupSources[T](ctx, a.Sources, query)
	if err == nil {
		return value, ctdf.DataProvenanceLive, nil
	}

	var configurationError *source.ConfigurationError
	if errors.As(err, &configurationError) {
		return value, ctdf.DataProvenanceLive, err
	}

	if errors.Is(err, ErrNoMatchingSource) {
		value, err := lookupDemo[T](ctx, a, query)
		return value, ctdf.DataProvenanceDemo, err
	}

	log.Warn().
		Err(err).
		Str("query", reflect.TypeOf(query).Name()).
		Str("kind", string(upstream.KindOf(err))).
		Msg("Live lookup failed, falling back to demo data")

	value, err = lookupDemo[T](ctx, a, query)
	return value, ctdf.DataProvenanceFallback, err
}

func lookupDemo[T any](ctx context.Context, a *Aggregator, query any) (T, error) {
	if a.Demo == nil {
		var empty T
		return empty, ErrNoData
	}

	value, err := lookupSources[T](ctx, []DataSource{a.Demo}, query)
	if errors.Is(err, ErrNoMatchingSource) {
		return value, ErrNoData
	}

	return value, err
}

func lookupSources[T any](ctx context.Context, sources []DataSource, query any) (T, error) {
	var empty T

	lookupType := reflect.TypeOf(*new(T))
	if lookupType.Kind() == reflect.Pointer {
		lookupType = lookupType.Elem()
	}

	for _, dataSource := range sources {
		matches := false

		for _, supportedType := range dataSource.Supports() {
			if lookupType == supportedType {
				matches = true
				break
			}
		}

		if !matches {
			continue
		}

		returnValue, returnError := dataSource.Lookup(ctx, query)

		if errors.Is(returnError, source.UnsupportedSourceError) {
			continue
		}

		if returnError != nil {
			return empty, returnError
		}

		if returnValue == nil {
			return empty, ErrNoData
		}

		typedValue, ok := returnValue.(T)
		if !ok {
			return empty, fmt.Errorf("%s returned %T for %T", dataSource.GetName(), returnValue, query)
		}

		return typedValue, nil
	}

	return empty, ErrNoMatchingSource
}
