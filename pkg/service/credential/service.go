package credential

import (
	"context"
	"fmt"
	"time"

	sdkutil "github.com/TBD54566975/ssi-sdk/util"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ledgercred/credential-service/config"
	"github.com/ledgercred/credential-service/internal/xrpl"
	"github.com/ledgercred/credential-service/pkg/service/framework"
	"github.com/ledgercred/credential-service/pkg/service/payload"
	"github.com/ledgercred/credential-service/pkg/service/signing"
)

// Gateway queues a prepared transaction on the signing service.
type Gateway interface {
	Submit(ctx context.Context, tx xrpl.Transaction) (*signing.Result, error)
}

// Service prepares credential transactions and hands them to the signing gateway. It keeps no state
// between requests; each prepared transaction is built, submitted and then only journaled.
type Service struct {
	config  config.SigningConfig
	gateway Gateway
	journal *payload.Service
	now     func() time.Time
}

func (s Service) Type() framework.Type {
	return framework.Credential
}

func (s Service) Status() framework.Status {
	ae := sdkutil.NewAppendError()
	if s.gateway == nil {
		ae.AppendString("no signing gateway configured")
	}
	if s.journal == nil {
		ae.AppendString("no payload journal configured")
	}
	if !ae.IsEmpty() {
		return framework.Status{
			Status:  framework.StatusNotReady,
			Message: fmt.Sprintf("credential service is not ready: %s", ae.Error().Error()),
		}
	}
	return framework.Status{Status: framework.StatusReady}
}

func NewCredentialService(cfg config.SigningConfig, gateway Gateway, journal *payload.Service) (*Service, error) {
	service := Service{
		config:  cfg,
		gateway: gateway,
		journal: journal,
		now:     time.Now,
	}
	if !service.Status().IsReady() {
		return nil, errors.New(service.Status().Message)
	}
	return &service, nil
}

// Create validates the request, builds a CredentialCreate signed by the requester and queues it for signing.
func (s Service) Create(ctx context.Context, request CreateRequest) (*CreateResponse, error) {
	logrus.Debugf("preparing credential create: %+v", request)

	if err := requireFields(request); err != nil {
		return nil, err
	}
	if err := requireAddresses(
		addressField{name: "subject", value: request.Subject},
		addressField{name: "requester", value: request.Requester},
	); err != nil {
		return nil, err
	}
	credentialType, err := encodeCredentialType(request.CredentialType, request.CredentialTypeEncoded)
	if err != nil {
		return nil, err
	}

	tx := xrpl.BuildCreate(request.Requester, request.Subject, credentialType, request.URI)
	result, err := s.submit(ctx, tx)
	if err != nil {
		return nil, err
	}
	return &CreateResponse{PreparedTransaction: tx, SignURL: result.SignURL, UUID: result.UUID}, nil
}

// Accept validates the request, builds a CredentialAccept signed by the subject and queues it for signing.
func (s Service) Accept(ctx context.Context, request AcceptRequest) (*AcceptResponse, error) {
	logrus.Debugf("preparing credential accept: %+v", request)

	if err := requireFields(request); err != nil {
		return nil, err
	}
	if err := requireAddresses(
		addressField{name: "issuer", value: request.Issuer},
		addressField{name: "subject", value: request.Subject},
	); err != nil {
		return nil, err
	}
	credentialType, err := encodeCredentialType(request.CredentialType, request.CredentialTypeEncoded)
	if err != nil {
		return nil, err
	}

	tx := xrpl.BuildAccept(request.Subject, request.Issuer, credentialType)
	result, err := s.submit(ctx, tx)
	if err != nil {
		return nil, err
	}
	return &AcceptResponse{PreparedTransaction: tx, SignURL: result.SignURL, UUID: result.UUID}, nil
}

// submit calls the gateway detached from the caller's cancellation, so a disconnecting client does not
// abort a signing request halfway. The journal entry is best effort.
func (s Service) submit(ctx context.Context, tx xrpl.Transaction) (*signing.Result, error) {
	ctx = context.WithoutCancel(ctx)
	result, err := s.gateway.Submit(ctx, tx)
	if err != nil {
		var gwErr *signing.GatewayError
		if errors.As(err, &gwErr) {
			return nil, &UpstreamError{Gateway: gwErr}
		}
		return nil, errors.Wrapf(err, "submitting %s", tx.Type())
	}
	if result == nil {
		return nil, errors.Errorf("submitting %s: signing gateway returned no result", tx.Type())
	}

	record, err := payload.NewRecord(result.UUID, result.SignURL, tx, s.config.SubmitOnSign, s.config.ExpireMinutes(), s.now())
	if err != nil {
		logrus.WithError(err).Errorf("could not build journal entry for signing request<%s>", result.UUID)
		return result, nil
	}
	if err = s.journal.Record(ctx, *record); err != nil {
		logrus.WithError(err).Errorf("could not journal signing request<%s>", result.UUID)
	}
	return result, nil
}
