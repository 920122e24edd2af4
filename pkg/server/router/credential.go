package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/ledgercred/credential-service/internal/xrpl"
	"github.com/ledgercred/credential-service/pkg/server/framework"
	"github.com/ledgercred/credential-service/pkg/service/credential"
	svcframework "github.com/ledgercred/credential-service/pkg/service/framework"
)

const (
	CreatePreparedMessage = "CredentialCreate payload prepared"
	AcceptPreparedMessage = "CredentialAccept payload prepared"

	IncompletePayloadMessage = "XUMM payload incomplete or invalid"
	InternalErrorMessage     = "Internal error"
)

type CredentialRouter struct {
	service *credential.Service
}

func NewCredentialRouter(s svcframework.Service) (*CredentialRouter, error) {
	if s == nil {
		return nil, errors.New("service cannot be nil")
	}
	credService, ok := s.(*credential.Service)
	if !ok {
		return nil, fmt.Errorf("could not create credential router with service type: %s", s.Type())
	}
	return &CredentialRouter{
		service: credService,
	}, nil
}

type CreateCredentialRequest struct {
	// The account receiving the credential.
	Subject string `json:"subject" example:"rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"`

	// Credential type label. Plain text is hex encoded; a value made only of hex digits is sent as is
	// unless credentialTypeEncoded says otherwise.
	CredentialType string `json:"credentialType" example:"KYC"`

	// Optional. Copied verbatim into the URI field of the transaction.
	URI string `json:"uri,omitempty" example:"https://example.com/credentials/kyc"`

	// The issuing account, which signs the transaction.
	Requester string `json:"requester" example:"rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe"`

	// Optional. true: credentialType is already hex. false: always hex encode credentialType.
	CredentialTypeEncoded *bool `json:"credentialTypeEncoded,omitempty"`
}

func (c CreateCredentialRequest) ToServiceRequest() credential.CreateRequest {
	return credential.CreateRequest{
		Subject:               c.Subject,
		CredentialType:        c.CredentialType,
		URI:                   c.URI,
		Requester:             c.Requester,
		CredentialTypeEncoded: c.CredentialTypeEncoded,
	}
}

type CreateCredentialResponse struct {
	OK                  bool                  `json:"ok"`
	Message             string                `json:"message"`
	PreparedTransaction xrpl.CredentialCreate `json:"preparedTransaction"`
	SignURL             string                `json:"signUrl"`
	UUID                string                `json:"uuid"`
}

// CreateCredential godoc
//
// @Summary     Prepare CredentialCreate
// @Description Validates the request, prepares a CredentialCreate transaction signed by the requester and
// @Description queues it on the signing service. Returns the sign link for the requester to open.
// @Tags        CredentialAPI
// @Accept      json
// @Produce     json
// @Param       request body     CreateCredentialRequest true "request body"
// @Success     200     {object} CreateCredentialResponse
// @Failure     400     {object} framework.ErrorResponse "Missing fields or invalid address"
// @Failure     500     {object} framework.ErrorResponse "Signing service or internal failure"
// @Router      /credential [post]
func (cr CredentialRouter) CreateCredential(c *gin.Context) error {
	var request CreateCredentialRequest
	if err := framework.Decode(c.Request, &request); err != nil {
		return framework.LoggingRespondErrWithMsg(c, err, "invalid create credential request", http.StatusBadRequest)
	}

	resp, err := cr.service.Create(c.Request.Context(), request.ToServiceRequest())
	if err != nil {
		return respondCredentialError(c, err)
	}

	return framework.Respond(c, CreateCredentialResponse{
		OK:                  true,
		Message:             CreatePreparedMessage,
		PreparedTransaction: resp.PreparedTransaction,
		SignURL:             resp.SignURL,
		UUID:                resp.UUID,
	}, http.StatusOK)
}

type AcceptCredentialRequest struct {
	// The account that issued the credential.
	Issuer string `json:"issuer" example:"rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe"`

	// The account accepting the credential, which signs the transaction.
	Subject string `json:"subject" example:"rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"`

	// Credential type label, encoded the same way as for creation.
	CredentialType string `json:"credentialType" example:"KYC"`

	// Optional. true: credentialType is already hex. false: always hex encode credentialType.
	CredentialTypeEncoded *bool `json:"credentialTypeEncoded,omitempty"`
}

func (a AcceptCredentialRequest) ToServiceRequest() credential.AcceptRequest {
	return credential.AcceptRequest{
		Issuer:                a.Issuer,
		Subject:               a.Subject,
		CredentialType:        a.CredentialType,
		CredentialTypeEncoded: a.CredentialTypeEncoded,
	}
}

type AcceptCredentialResponse struct {
	OK                  bool                  `json:"ok"`
	Message             string                `json:"message"`
	SignURL             string                `json:"signUrl"`
	UUID                string                `json:"uuid"`
	PreparedTransaction xrpl.CredentialAccept `json:"preparedTransaction"`
}

// AcceptCredential godoc
//
// @Summary     Prepare CredentialAccept
// @Description Validates the request, prepares a CredentialAccept transaction signed by the subject and
// @Description queues it on the signing service.
// @Tags        CredentialAPI
// @Accept      json
// @Produce     json
// @Param       request body     AcceptCredentialRequest true "request body"
// @Success     200     {object} AcceptCredentialResponse
// @Failure     400     {object} framework.ErrorResponse "Missing fields or invalid address"
// @Failure     500     {object} framework.ErrorResponse "Signing service or internal failure"
// @Router      /credential/accept [post]
func (cr CredentialRouter) AcceptCredential(c *gin.Context) error {
	var request AcceptCredentialRequest
	if err := framework.Decode(c.Request, &request); err != nil {
		return framework.LoggingRespondErrWithMsg(c, err, "invalid accept credential request", http.StatusBadRequest)
	}

	resp, err := cr.service.Accept(c.Request.Context(), request.ToServiceRequest())
	if err != nil {
		return respondCredentialError(c, err)
	}

	return framework.Respond(c, AcceptCredentialResponse{
		OK:                  true,
		Message:             AcceptPreparedMessage,
		SignURL:             resp.SignURL,
		UUID:                resp.UUID,
		PreparedTransaction: resp.PreparedTransaction,
	}, http.StatusOK)
}

// respondCredentialError maps the credential error taxonomy onto responses: request errors are 400, an
// incomplete signing response and every other failure are 500.
func respondCredentialError(c *gin.Context, err error) error {
	if reqErr, ok := credential.AsRequestError(err); ok {
		fields := make([]framework.FieldError, 0, len(reqErr.Fields))
		for i, field := range reqErr.Fields {
			fe := framework.FieldError{Field: field}
			if i < len(reqErr.Reasons) {
				fe.Error = reqErr.Reasons[i]
			}
			fields = append(fields, fe)
		}
		return framework.LoggingRespondErrWithMsg(c, err, reqErr.Error(), http.StatusBadRequest, fields...)
	}
	if upErr, ok := credential.AsUpstreamError(err); ok && upErr.Incomplete() {
		return framework.LoggingRespondErrWithMsg(c, err, IncompletePayloadMessage, http.StatusInternalServerError)
	}
	return framework.LoggingRespondErrWithDetail(c, err, InternalErrorMessage, err.Error(), http.StatusInternalServerError)
}
