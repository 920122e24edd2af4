package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type (
	Type      string
	OptionKey string
)

const (
	Bolt        Type = "bolt"
	Redis       Type = "redis"
	DatabaseSQL Type = "postgres"
	Memory      Type = "memory"

	BoltDBFilePathOption OptionKey = "boltdb-filepath-option"
	RedisAddressOption   OptionKey = "redis-address-option"
	PasswordOption       OptionKey = "storage-password-option"
)

type Option struct {
	ID     OptionKey `json:"id,omitempty"`
	Option any       `json:"option,omitempty"`
}

// ServiceStorage describes the api for storage independent of DB providers. Reading a key that was never
// written returns a nil value and no error.
type ServiceStorage interface {
	Init(opts ...Option) error
	Type() Type
	URI() string
	IsOpen() bool
	Close() error
	Write(ctx context.Context, namespace, key string, value []byte) error
	Read(ctx context.Context, namespace, key string) ([]byte, error)
	ReadAll(ctx context.Context, namespace string) (map[string][]byte, error)
	Delete(ctx context.Context, namespace, key string) error
}

var availableStorages map[Type]func() ServiceStorage

// RegisterStorage registers a constructor for a storage provider. Providers register themselves on init.
func RegisterStorage(t Type, constructor func() ServiceStorage) error {
	if availableStorages == nil {
		availableStorages = make(map[Type]func() ServiceStorage)
	}
	if _, ok := availableStorages[t]; ok {
		return fmt.Errorf("storage provider<%s> already registered", t)
	}
	logrus.Debugf("registering storage provider: %s", t)
	availableStorages[t] = constructor
	return nil
}

// NewStorage creates and initializes a storage provider by type.
func NewStorage(storageProvider Type, opts ...Option) (ServiceStorage, error) {
	constructor, ok := availableStorages[storageProvider]
	if !ok {
		return nil, fmt.Errorf("unsupported storage provider: %s", storageProvider)
	}
	s := constructor()
	if err := s.Init(opts...); err != nil {
		return nil, errors.Wrapf(err, "initializing %s storage", storageProvider)
	}
	return s, nil
}

// Join combines a namespace and a key using the package's key convention.
func Join(parts ...string) string {
	return strings.Join(parts, "-")
}

func stringOption(opts []Option, key OptionKey) (string, error) {
	for _, opt := range opts {
		if opt.ID != key {
			continue
		}
		value, ok := opt.Option.(string)
		if !ok {
			return "", fmt.Errorf("%s option must be a string", key)
		}
		return value, nil
	}
	return "", nil
}
