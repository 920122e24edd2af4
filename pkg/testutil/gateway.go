package testutil

import (
	"context"
	"sync"

	"github.com/ledgercred/credential-service/internal/xrpl"
	"github.com/ledgercred/credential-service/pkg/service/signing"
)

// FakeGateway stands in for the signing service. It returns Result and Err as configured and records
// every transaction it was asked to submit.
type FakeGateway struct {
	Result *signing.Result
	Err    error

	mu        sync.Mutex
	submitted []xrpl.Transaction
	cancelled bool
}

func (f *FakeGateway) Submit(ctx context.Context, tx xrpl.Transaction) (*signing.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, tx)
	if ctx.Err() != nil {
		f.cancelled = true
	}
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Result, nil
}

// Calls is the number of Submit calls made so far.
func (f *FakeGateway) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submitted)
}

// Submitted returns the transactions passed to Submit, in call order.
func (f *FakeGateway) Submitted() []xrpl.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]xrpl.Transaction{}, f.submitted...)
}

// SawCancelledContext reports whether any Submit call received an already cancelled context.
func (f *FakeGateway) SawCancelledContext() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancelled
}

func CompleteGateway(uuid, signURL string) *FakeGateway {
	return &FakeGateway{Result: &signing.Result{UUID: uuid, SignURL: signURL}}
}

func FailingGateway(kind signing.ErrorKind, err error) *FakeGateway {
	return &FakeGateway{Err: &signing.GatewayError{Kind: kind, Err: err}}
}
