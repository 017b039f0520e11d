package source

import (
	"errors"
	"fmt"
)

var UnsupportedSourceError = errors.New("Unsupported source for this query")

// ErrNoData is returned when a source supports a query but has nothing for it.
var ErrNoData = errors.New("No data available for this query")

// ConfigurationError means the source cannot run without settings that are missing.
type ConfigurationError struct {
	Source   string
	Settings []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not configured, set %v", e.Source, e.Settings)
}
