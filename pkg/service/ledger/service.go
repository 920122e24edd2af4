package ledger

import (
	"context"

	sdkutil "github.com/TBD54566975/ssi-sdk/util"

	"github.com/ledgercred/credential-service/config"
	"github.com/ledgercred/credential-service/pkg/service/framework"
)

// Service owns the ledger connection and exposes it as the connectivity probe for the health surface.
type Service struct {
	config     config.LedgerConfig
	connection *Connection
}

func (s Service) Type() framework.Type {
	return framework.Ledger
}

func (s Service) Status() framework.Status {
	if s.connection == nil {
		return framework.Status{Status: framework.StatusNotReady, Message: "ledger service is not ready: no connection configured"}
	}
	if !s.connection.IsConnected() {
		return framework.Status{
			Status:  framework.StatusNotReady,
			Message: "ledger service is not ready: not connected to " + s.connection.Endpoint(),
		}
	}
	return framework.Status{Status: framework.StatusReady}
}

func (s Service) Config() config.LedgerConfig {
	return s.config
}

func NewLedgerService(cfg config.LedgerConfig) (*Service, error) {
	connection, err := NewConnection(cfg.Endpoint, cfg.DialTimeout, cfg.PingInterval)
	if err != nil {
		return nil, sdkutil.LoggingErrorMsg(err, "could not create ledger connection")
	}
	return &Service{config: cfg, connection: connection}, nil
}

// Connect establishes the ledger connection. Callers usually run it in the background at startup.
func (s Service) Connect(ctx context.Context) error {
	return s.connection.Connect(ctx)
}

// IsConnected reports the current ledger connection state.
func (s Service) IsConnected() bool {
	return s.connection.IsConnected()
}

func (s Service) Close() error {
	return s.connection.Close()
}
