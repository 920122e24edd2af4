package credential

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/ledgercred/credential-service/pkg/service/signing"
)

type ErrorKind string

const (
	MissingFields  ErrorKind = "missing_fields"
	InvalidAddress ErrorKind = "invalid_address"
	EncodingError  ErrorKind = "encoding_error"
)

// RequestError is a problem with the caller's input, found before anything external is contacted.
// Reasons holds a readable explanation per entry of Fields.
type RequestError struct {
	Kind    ErrorKind
	Fields  []string
	Reasons []string
	Err     error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case MissingFields:
		return "Missing fields: " + strings.Join(e.Fields, ", ")
	case InvalidAddress:
		return "Invalid XRPL address: " + strings.Join(e.Fields, ", ")
	case EncodingError:
		return "Invalid credentialType: " + e.Err.Error()
	default:
		return "invalid request"
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// UpstreamError is a signing gateway failure surfaced by Create or Accept.
type UpstreamError struct {
	Gateway *signing.GatewayError
}

func (e *UpstreamError) Error() string {
	return e.Gateway.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Gateway
}

// Incomplete reports whether the signing service answered without a sign link or uuid.
func (e *UpstreamError) Incomplete() bool {
	return e.Gateway.Kind == signing.IncompleteResponse
}

func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	ok := errors.As(err, &reqErr)
	return reqErr, ok
}

func AsUpstreamError(err error) (*UpstreamError, bool) {
	var upErr *UpstreamError
	ok := errors.As(err, &upErr)
	return upErr, ok
}
