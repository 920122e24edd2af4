package payload

import (
	"context"
	"fmt"

	sdkutil "github.com/TBD54566975/ssi-sdk/util"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ledgercred/credential-service/pkg/service/framework"
	"github.com/ledgercred/credential-service/pkg/storage"
)

// Service is the journal of signing requests created through this service.
type Service struct {
	storage *Storage
}

func (s Service) Type() framework.Type {
	return framework.Payload
}

func (s Service) Status() framework.Status {
	if s.storage == nil {
		return framework.Status{Status: framework.StatusNotReady, Message: "payload service is not ready: no storage configured"}
	}
	if !s.storage.db.IsOpen() {
		return framework.Status{
			Status:  framework.StatusNotReady,
			Message: fmt.Sprintf("payload service is not ready: %s storage is not open", s.storage.db.Type()),
		}
	}
	return framework.Status{Status: framework.StatusReady}
}

func NewPayloadService(s storage.ServiceStorage) (*Service, error) {
	payloadStorage, err := NewPayloadStorage(s)
	if err != nil {
		return nil, sdkutil.LoggingErrorMsg(err, "could not instantiate storage for the payload service")
	}
	return &Service{storage: payloadStorage}, nil
}

func (s Service) Record(ctx context.Context, record Record) error {
	logrus.Debugf("recording signing request: %s", record.UUID)
	if err := s.storage.StoreRecord(ctx, record); err != nil {
		return errors.Wrap(err, "recording signing request")
	}
	return nil
}

func (s Service) Get(ctx context.Context, uuid string) (*Record, error) {
	logrus.Debugf("getting signing request: %s", uuid)
	return s.storage.GetRecord(ctx, uuid)
}

// List returns one page of journaled signing requests, newest first, and the token of the next page if
// there is one.
func (s Service) List(ctx context.Context, page Page) ([]Record, string, error) {
	records, err := s.storage.ListRecords(ctx)
	if err != nil {
		return nil, "", err
	}
	return page.apply(records)
}

// IsNotFound reports whether err means no signing request exists for the requested uuid.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}
