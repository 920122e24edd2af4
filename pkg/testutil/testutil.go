package testutil

import (
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/ledgercred/credential-service/pkg/storage"
)

// Well formed ledger accounts used across tests.
const (
	IssuerAddress    = "rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe"
	SubjectAddress   = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"
	RequesterAddress = "rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe"
	XAddress         = "XVPcpSm47b1CZkf5AkKM9a84dQHe3m4sBhsrA4XtnBECTAc"
	InvalidAddress   = "rInvalid"
)

var TestDatabases = []struct {
	Name           string
	ServiceStorage func(t *testing.T) storage.ServiceStorage
}{
	{
		Name:           "Test with Bolt DB",
		ServiceStorage: setupBoltTestDB,
	},
	{
		Name:           "Test with Redis DB",
		ServiceStorage: setupRedisTestDB,
	},
	{
		Name:           "Test with Memory DB",
		ServiceStorage: setupMemoryTestDB,
	},
}

func setupBoltTestDB(t *testing.T) storage.ServiceStorage {
	name := filepath.Join(t.TempDir(), "bolt.db")
	s, err := storage.NewStorage(storage.Bolt, storage.Option{
		ID:     storage.BoltDBFilePathOption,
		Option: name,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func setupRedisTestDB(t *testing.T) storage.ServiceStorage {
	server := miniredis.RunT(t)
	s, err := storage.NewStorage(storage.Redis, storage.Option{
		ID:     storage.RedisAddressOption,
		Option: server.Addr(),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func setupMemoryTestDB(t *testing.T) storage.ServiceStorage {
	s, err := storage.NewStorage(storage.Memory)
	require.NoError(t, err)
	return s
}
