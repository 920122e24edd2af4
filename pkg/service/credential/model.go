package credential

import (
	"github.com/ledgercred/credential-service/internal/xrpl"
)

// CreateRequest asks for a CredentialCreate transaction issued by Requester to Subject.
// CredentialTypeEncoded settles whether CredentialType is already hex; when nil a hex-looking value is
// passed through as is.
type CreateRequest struct {
	Subject               string `json:"subject" validate:"required"`
	CredentialType        string `json:"credentialType" validate:"required"`
	URI                   string `json:"uri,omitempty"`
	Requester             string `json:"requester" validate:"required"`
	CredentialTypeEncoded *bool  `json:"credentialTypeEncoded,omitempty"`
}

type CreateResponse struct {
	PreparedTransaction xrpl.CredentialCreate
	SignURL             string
	UUID                string
}

// AcceptRequest asks for a CredentialAccept transaction, signed by Subject, for a credential from Issuer.
type AcceptRequest struct {
	Issuer                string `json:"issuer" validate:"required"`
	Subject               string `json:"subject" validate:"required"`
	CredentialType        string `json:"credentialType" validate:"required"`
	CredentialTypeEncoded *bool  `json:"credentialTypeEncoded,omitempty"`
}

type AcceptResponse struct {
	PreparedTransaction xrpl.CredentialAccept
	SignURL             string
	UUID                string
}
