package payload

import (
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/ledgercred/credential-service/internal/xrpl"
)

// Record is the journal entry kept for each signing request handed to the signing service. It is request
// bookkeeping only: whether the transaction was ever signed is not tracked.
type Record struct {
	UUID                string               `json:"uuid"`
	TransactionType     xrpl.TransactionType `json:"transactionType"`
	Account             string               `json:"account"`
	SignURL             string               `json:"signUrl"`
	PreparedTransaction json.RawMessage      `json:"preparedTransaction" swaggertype:"object"`
	SubmitOnSign        bool                 `json:"submitOnSign"`
	// Expire is the payload expiry in minutes, as sent to the signing service.
	Expire              int                  `json:"expire"`
	CreatedAt           time.Time            `json:"createdAt"`
}

// ExpiresAt is the moment the signing service drops the request if it was left unsigned.
func (r Record) ExpiresAt() time.Time {
	return r.CreatedAt.Add(time.Duration(r.Expire) * time.Minute)
}

func NewRecord(uuid, signURL string, tx xrpl.Transaction, submitOnSign bool, expireMinutes int, now time.Time) (*Record, error) {
	txBytes, err := json.Marshal(tx)
	if err != nil {
		return nil, err
	}
	return &Record{
		UUID:                uuid,
		TransactionType:     tx.Type(),
		Account:             tx.Signer(),
		SignURL:             signURL,
		PreparedTransaction: txBytes,
		SubmitOnSign:        submitOnSign,
		Expire:              expireMinutes,
		CreatedAt:           now.UTC(),
	}, nil
}

// AllPages as a page size returns every record.
const AllPages = -1

// Page selects a window of the journal. Token is the offset of the first record as returned by a previous
// List; empty means the first page.
type Page struct {
	Token string
	Size  int
}

func (p Page) apply(records []Record) ([]Record, string, error) {
	offset := 0
	if p.Token != "" {
		var err error
		if offset, err = strconv.Atoi(p.Token); err != nil || offset < 0 {
			return nil, "", errors.Errorf("invalid page token: %s", p.Token)
		}
	}
	if offset >= len(records) {
		return []Record{}, "", nil
	}
	records = records[offset:]
	if p.Size <= 0 || p.Size >= len(records) {
		return records, "", nil
	}
	return records[:p.Size], strconv.Itoa(offset + p.Size), nil
}
