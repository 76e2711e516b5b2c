package fritzbox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
)

// Kind classifies a failed request. The set is closed: every error returned
// by this package carries exactly one Kind.
type Kind int

const (
	// KindHTTP is a non-2xx response from the control endpoint.
	KindHTTP Kind = iota + 1
	// KindConnection is a transport-level failure: unreachable host, refused
	// or dropped connection, DNS failure.
	KindConnection
	// KindTimeout is a single request exceeding its deadline.
	KindTimeout
	// KindTimedOut is the reconnect workflow exhausting its maximum wait.
	KindTimedOut
	// KindOther is any failure not fitting the kinds above.
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindHTTP:
		return "http"
	case KindConnection:
		return "connection"
	case KindTimeout:
		return "timeout"
	case KindTimedOut:
		return "timed-out"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// RequestError is the error type returned by every failed operation against
// the router.
type RequestError struct {
	Kind   Kind
	Op     string // SOAP action or workflow name
	Status int    // HTTP status code, set for KindHTTP
	Err    error  // underlying cause, may be nil for KindHTTP
}

func (e *RequestError) Error() string {
	if e.Kind == KindHTTP {
		return fmt.Sprintf("http error (%s): unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s error (%s): %v", e.Kind, e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// KindOf extracts the Kind from an error returned by this package. A nil or
// foreign error yields the zero Kind.
func KindOf(err error) Kind {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind
	}
	return 0
}

// classifyTransport maps an HTTP transport failure onto the error taxonomy.
func classifyTransport(op string, err error) *RequestError {
	var (
		netErr net.Error
		opErr  *net.OpError
		dnsErr *net.DNSError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &RequestError{Kind: KindTimeout, Op: op, Err: err}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &RequestError{Kind: KindTimeout, Op: op, Err: err}
	case errors.As(err, &opErr), errors.As(err, &dnsErr):
		return &RequestError{Kind: KindConnection, Op: op, Err: err}
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		// The router dropped the connection mid-request.
		return &RequestError{Kind: KindConnection, Op: op, Err: err}
	default:
		return &RequestError{Kind: KindOther, Op: op, Err: err}
	}
}
