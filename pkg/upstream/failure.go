package upstream

import (
	"fmt"

	"github.com/ecocitty/ecocitty/pkg/util"
)

// FailureKind classifies why an upstream call did not produce a payload.
type FailureKind string

const (
	FailureTimeout    FailureKind = "timeout"
	FailureConnection FailureKind = "connection"
	FailureStatus     FailureKind = "status"
	FailureDecode     FailureKind = "decode"
	// FailureRejected is a 200 response whose own status flag reports failure.
	FailureRejected FailureKind = "rejected"
)

const maxFailureBody = 512

type Failure struct {
	Kind       FailureKind
	Endpoint   string
	StatusCode int
	Body       string
	Err        error
}

func (f *Failure) Error() string {
	switch f.Kind {
	case FailureTimeout:
		return fmt.Sprintf("upstream %s timed out", f.Endpoint)
	case FailureConnection:
		return fmt.Sprintf("could not connect to upstream %s: %v", f.Endpoint, f.Err)
	case FailureStatus:
		return fmt.Sprintf("upstream %s returned HTTP %d: %s", f.Endpoint, f.StatusCode, util.TrimString(f.Body, maxFailureBody))
	case FailureDecode:
		return fmt.Sprintf("could not decode upstream %s response: %v", f.Endpoint, f.Err)
	case FailureRejected:
		return fmt.Sprintf("upstream %s rejected the request: %s", f.Endpoint, util.TrimString(f.Body, maxFailureBody))
	default:
		return fmt.Sprintf("upstream %s failed", f.Endpoint)
	}
}

func (f *Failure) Unwrap() error {
	return f.Err
}
