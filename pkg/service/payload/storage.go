package payload

import (
	"context"
	"sort"

	"github.com/TBD54566975/ssi-sdk/util"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ledgercred/credential-service/pkg/storage"
)

const (
	namespace = "payload"
)

var ErrRecordNotFound = errors.New("signing request not found")

type Storage struct {
	db storage.ServiceStorage
}

func NewPayloadStorage(db storage.ServiceStorage) (*Storage, error) {
	if db == nil {
		return nil, errors.New("db reference is nil")
	}
	return &Storage{db: db}, nil
}

func (ps *Storage) StoreRecord(ctx context.Context, record Record) error {
	id := record.UUID
	if id == "" {
		return util.LoggingNewError("could not store signing request without a uuid")
	}
	recordBytes, err := json.Marshal(record)
	if err != nil {
		return util.LoggingErrorMsgf(err, "could not store signing request: %s", id)
	}
	return ps.db.Write(ctx, namespace, id, recordBytes)
}

func (ps *Storage) GetRecord(ctx context.Context, id string) (*Record, error) {
	recordBytes, err := ps.db.Read(ctx, namespace, id)
	if err != nil {
		return nil, util.LoggingErrorMsgf(err, "could not get signing request: %s", id)
	}
	if len(recordBytes) == 0 {
		return nil, errors.Wrapf(ErrRecordNotFound, "uuid %s", id)
	}
	var stored Record
	if err = json.Unmarshal(recordBytes, &stored); err != nil {
		return nil, util.LoggingErrorMsgf(err, "could not unmarshal stored signing request: %s", id)
	}
	return &stored, nil
}

// ListRecords returns every journaled signing request, newest first. Entries that fail to decode are skipped.
func (ps *Storage) ListRecords(ctx context.Context) ([]Record, error) {
	gotRecords, err := ps.db.ReadAll(ctx, namespace)
	if err != nil {
		return nil, util.LoggingErrorMsg(err, "could not list signing requests")
	}
	records := make([]Record, 0, len(gotRecords))
	for id, recordBytes := range gotRecords {
		var next Record
		if err = json.Unmarshal(recordBytes, &next); err != nil {
			logrus.WithError(err).Errorf("could not unmarshal signing request: %s", id)
			continue
		}
		records = append(records, next)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}
