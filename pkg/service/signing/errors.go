package signing

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorKind string

const (
	// ServiceUnavailable covers transport failures and non-success responses from the signing service.
	ServiceUnavailable ErrorKind = "service_unavailable"
	// IncompleteResponse is a successful call whose body lacks the sign link or the uuid.
	IncompleteResponse ErrorKind = "incomplete_response"
)

// GatewayError is returned by Submit for every failure to obtain a complete signing request.
type GatewayError struct {
	Kind ErrorKind
	Err  error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("signing gateway %s: %v", e.Kind, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

func newGatewayError(kind ErrorKind, err error) *GatewayError {
	return &GatewayError{Kind: kind, Err: err}
}

// IsGatewayError reports whether err is a GatewayError of the given kind.
func IsGatewayError(err error, kind ErrorKind) bool {
	var gwErr *GatewayError
	return errors.As(err, &gwErr) && gwErr.Kind == kind
}
