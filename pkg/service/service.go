package service

import (
	"fmt"

	sdkutil "github.com/TBD54566975/ssi-sdk/util"

	"github.com/ledgercred/credential-service/config"
	"github.com/ledgercred/credential-service/pkg/service/credential"
	"github.com/ledgercred/credential-service/pkg/service/framework"
	"github.com/ledgercred/credential-service/pkg/service/ledger"
	"github.com/ledgercred/credential-service/pkg/service/payload"
	"github.com/ledgercred/credential-service/pkg/service/signing"
	"github.com/ledgercred/credential-service/pkg/storage"
)

// CredentialService represents all services and their dependencies independent of transport
type CredentialService struct {
	Ledger     *ledger.Service
	Signing    *signing.Service
	Credential *credential.Service
	Payload    *payload.Service

	storage storage.ServiceStorage
}

// InstantiateCredentialService creates all services and their dependencies independent of transport.
// The ledger connection is created but not dialed; callers connect it once the server is up.
func InstantiateCredentialService(cfg config.CredentialServiceConfig) (*CredentialService, error) {
	if err := validateServiceConfig(cfg); err != nil {
		return nil, sdkutil.LoggingErrorMsg(err, "could not instantiate credential service, invalid config")
	}
	service, err := instantiateServices(cfg)
	if err != nil {
		return nil, sdkutil.LoggingErrorMsg(err, "could not instantiate the credential service")
	}
	return service, nil
}

func validateServiceConfig(cfg config.CredentialServiceConfig) error {
	if cfg.Ledger.Endpoint == "" {
		return fmt.Errorf("%s no endpoint configured", framework.Ledger)
	}
	if cfg.Signing.APIKey == "" || cfg.Signing.APISecret == "" {
		return fmt.Errorf("%s api key and secret must be set via %s and %s",
			framework.Signing, config.SigningKey, config.SigningSecret)
	}
	if cfg.Signing.Expire <= 0 {
		return fmt.Errorf("%s expire must be positive, got %s", framework.Signing, cfg.Signing.Expire)
	}
	return nil
}

// StorageOptions maps the storage section of the config onto provider options.
func StorageOptions(cfg config.StorageConfig) []storage.Option {
	switch storage.Type(cfg.Provider) {
	case storage.Bolt:
		return []storage.Option{{ID: storage.BoltDBFilePathOption, Option: cfg.BoltFile}}
	case storage.Redis:
		return []storage.Option{
			{ID: storage.RedisAddressOption, Option: cfg.RedisAddress},
			{ID: storage.PasswordOption, Option: cfg.RedisPassword},
		}
	case storage.DatabaseSQL:
		return []storage.Option{{ID: storage.SQLConnectionString, Option: cfg.SQLConnection}}
	default:
		return nil
	}
}

// instantiateServices begins all instantiates and their dependencies
func instantiateServices(cfg config.CredentialServiceConfig) (*CredentialService, error) {
	storageProvider, err := storage.NewStorage(storage.Type(cfg.Storage.Provider), StorageOptions(cfg.Storage)...)
	if err != nil {
		return nil, sdkutil.LoggingErrorMsgf(err, "could not instantiate storage provider: %s", cfg.Storage.Provider)
	}

	ledgerService, err := ledger.NewLedgerService(cfg.Ledger)
	if err != nil {
		return nil, sdkutil.LoggingErrorMsg(err, "could not instantiate the ledger service")
	}

	signingService, err := signing.NewSigningService(cfg.Signing)
	if err != nil {
		return nil, sdkutil.LoggingErrorMsg(err, "could not instantiate the signing service")
	}

	payloadService, err := payload.NewPayloadService(storageProvider)
	if err != nil {
		return nil, sdkutil.LoggingErrorMsg(err, "could not instantiate the payload service")
	}

	credentialService, err := credential.NewCredentialService(cfg.Signing, signingService, payloadService)
	if err != nil {
		return nil, sdkutil.LoggingErrorMsg(err, "could not instantiate the credential service")
	}

	return &CredentialService{
		Ledger:     ledgerService,
		Signing:    signingService,
		Credential: credentialService,
		Payload:    payloadService,
		storage:    storageProvider,
	}, nil
}

// GetServices returns all services
func (s *CredentialService) GetServices() []framework.Service {
	return []framework.Service{
		s.Ledger,
		s.Signing,
		s.Credential,
		s.Payload,
	}
}

// Close releases the ledger connection and the storage provider.
func (s *CredentialService) Close() error {
	ae := sdkutil.NewAppendError()
	if err := s.Ledger.Close(); err != nil {
		ae.AppendString(err.Error())
	}
	if err := s.storage.Close(); err != nil {
		ae.AppendString(err.Error())
	}
	if ae.IsEmpty() {
		return nil
	}
	return ae.Error()
}
