package credential

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgercred/credential-service/config"
	"github.com/ledgercred/credential-service/internal/xrpl"
	"github.com/ledgercred/credential-service/pkg/service/payload"
	"github.com/ledgercred/credential-service/pkg/service/signing"
	"github.com/ledgercred/credential-service/pkg/storage"
	"github.com/ledgercred/credential-service/pkg/testutil"
)

func testSigningConfig() config.SigningConfig {
	return config.SigningConfig{SubmitOnSign: true, Expire: 5 * time.Minute}
}

func testCredentialService(t *testing.T, gateway Gateway) (*Service, *payload.Service) {
	db, err := storage.NewStorage(storage.Memory)
	require.NoError(t, err)
	journal, err := payload.NewPayloadService(db)
	require.NoError(t, err)
	service, err := NewCredentialService(testSigningConfig(), gateway, journal)
	require.NoError(t, err)
	require.NotEmpty(t, service)
	return service, journal
}

func boolPtr(b bool) *bool {
	return &b
}

func TestNewCredentialService(t *testing.T) {
	_, err := NewCredentialService(testSigningConfig(), nil, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no signing gateway configured")
	assert.Contains(t, err.Error(), "no payload journal configured")
}

func TestCreate(t *testing.T) {
	t.Run("prepares and journals a credential create", func(tt *testing.T) {
		gateway := testutil.CompleteGateway("u1", "https://signing/abc")
		service, journal := testCredentialService(tt, gateway)
		created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		service.now = func() time.Time { return created }

		resp, err := service.Create(context.Background(), CreateRequest{
			Subject:        testutil.SubjectAddress,
			CredentialType: "KYC",
			Requester:      testutil.RequesterAddress,
		})
		assert.NoError(tt, err)
		require.NotEmpty(tt, resp)
		assert.Equal(tt, "u1", resp.UUID)
		assert.Equal(tt, "https://signing/abc", resp.SignURL)
		assert.Equal(tt, xrpl.CredentialCreateType, resp.PreparedTransaction.TransactionType)
		assert.Equal(tt, testutil.RequesterAddress, resp.PreparedTransaction.Account)
		assert.Equal(tt, testutil.SubjectAddress, resp.PreparedTransaction.Subject)
		assert.Equal(tt, hex.EncodeToString([]byte("KYC")), resp.PreparedTransaction.CredentialType)
		assert.Empty(tt, resp.PreparedTransaction.URI)
		assert.Equal(tt, 1, gateway.Calls())

		record, err := journal.Get(context.Background(), "u1")
		assert.NoError(tt, err)
		assert.Equal(tt, xrpl.CredentialCreateType, record.TransactionType)
		assert.Equal(tt, 5, record.Expire)
		assert.True(tt, created.Add(5*time.Minute).Equal(record.ExpiresAt()))
		assert.True(tt, record.SubmitOnSign)
	})

	t.Run("uri is carried verbatim", func(tt *testing.T) {
		gateway := testutil.CompleteGateway("u1", "https://signing/abc")
		service, _ := testCredentialService(tt, gateway)

		resp, err := service.Create(context.Background(), CreateRequest{
			Subject:        testutil.SubjectAddress,
			CredentialType: "KYC",
			URI:            "https://example.com/credential/1",
			Requester:      testutil.RequesterAddress,
		})
		assert.NoError(tt, err)
		assert.Equal(tt, "https://example.com/credential/1", resp.PreparedTransaction.URI)
	})

	t.Run("hex credential type passes through", func(tt *testing.T) {
		gateway := testutil.CompleteGateway("u1", "https://signing/abc")
		service, _ := testCredentialService(tt, gateway)

		resp, err := service.Create(context.Background(), CreateRequest{
			Subject:        testutil.SubjectAddress,
			CredentialType: "4B5943",
			Requester:      testutil.RequesterAddress,
		})
		assert.NoError(tt, err)
		assert.Equal(tt, "4B5943", resp.PreparedTransaction.CredentialType)
	})

	t.Run("explicit literal flag encodes hex-looking labels", func(tt *testing.T) {
		gateway := testutil.CompleteGateway("u1", "https://signing/abc")
		service, _ := testCredentialService(tt, gateway)

		resp, err := service.Create(context.Background(), CreateRequest{
			Subject:               testutil.SubjectAddress,
			CredentialType:        "face",
			Requester:             testutil.RequesterAddress,
			CredentialTypeEncoded: boolPtr(false),
		})
		assert.NoError(tt, err)
		assert.Equal(tt, "66616365", resp.PreparedTransaction.CredentialType)
	})

	t.Run("x-address subject is accepted", func(tt *testing.T) {
		gateway := testutil.CompleteGateway("u1", "https://signing/abc")
		service, _ := testCredentialService(tt, gateway)

		_, err := service.Create(context.Background(), CreateRequest{
			Subject:        testutil.XAddress,
			CredentialType: "KYC",
			Requester:      testutil.RequesterAddress,
		})
		assert.NoError(tt, err)
	})
}

func TestCreateRequestErrors(t *testing.T) {
	tests := []struct {
		name    string
		request CreateRequest
		kind    ErrorKind
		message string
	}{
		{
			name:    "all fields missing",
			request: CreateRequest{},
			kind:    MissingFields,
			message: "Missing fields: subject, credentialType, requester",
		},
		{
			name:    "requester missing",
			request: CreateRequest{Subject: testutil.SubjectAddress, CredentialType: "KYC"},
			kind:    MissingFields,
			message: "Missing fields: requester",
		},
		{
			name:    "invalid subject",
			request: CreateRequest{Subject: testutil.InvalidAddress, CredentialType: "KYC", Requester: testutil.RequesterAddress},
			kind:    InvalidAddress,
			message: "Invalid XRPL address: subject",
		},
		{
			name:    "invalid requester",
			request: CreateRequest{Subject: testutil.SubjectAddress, CredentialType: "KYC", Requester: testutil.InvalidAddress},
			kind:    InvalidAddress,
			message: "Invalid XRPL address: requester",
		},
		{
			name:    "subject is checked before requester",
			request: CreateRequest{Subject: testutil.InvalidAddress, CredentialType: "KYC", Requester: testutil.InvalidAddress},
			kind:    InvalidAddress,
			message: "Invalid XRPL address: subject",
		},
		{
			name: "claimed hex that is not hex",
			request: CreateRequest{
				Subject: testutil.SubjectAddress, CredentialType: "KYC", Requester: testutil.RequesterAddress,
				CredentialTypeEncoded: boolPtr(true),
			},
			kind:    EncodingError,
			message: "Invalid credentialType",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(tt *testing.T) {
			gateway := testutil.CompleteGateway("u1", "https://signing/abc")
			service, _ := testCredentialService(tt, gateway)

			resp, err := service.Create(context.Background(), test.request)
			assert.Nil(tt, resp)
			require.Error(tt, err)

			reqErr, ok := AsRequestError(err)
			require.True(tt, ok)
			assert.Equal(tt, test.kind, reqErr.Kind)
			assert.Contains(tt, reqErr.Error(), test.message)

			// nothing external is touched before submission
			assert.Equal(tt, 0, gateway.Calls())
		})
	}
}

func TestAccept(t *testing.T) {
	t.Run("signer is always the subject", func(tt *testing.T) {
		gateway := testutil.CompleteGateway("u2", "https://signing/def")
		service, journal := testCredentialService(tt, gateway)

		resp, err := service.Accept(context.Background(), AcceptRequest{
			Issuer:         testutil.IssuerAddress,
			Subject:        testutil.SubjectAddress,
			CredentialType: "KYC",
		})
		assert.NoError(tt, err)
		require.NotEmpty(tt, resp)
		assert.Equal(tt, testutil.SubjectAddress, resp.PreparedTransaction.Account)
		assert.Equal(tt, testutil.IssuerAddress, resp.PreparedTransaction.Issuer)
		assert.Equal(tt, "4b5943", resp.PreparedTransaction.CredentialType)
		assert.Equal(tt, "u2", resp.UUID)
		assert.Equal(tt, "https://signing/def", resp.SignURL)

		submitted := gateway.Submitted()
		require.Len(tt, submitted, 1)
		assert.Equal(tt, testutil.SubjectAddress, submitted[0].Signer())

		record, err := journal.Get(context.Background(), "u2")
		assert.NoError(tt, err)
		assert.Equal(tt, testutil.SubjectAddress, record.Account)
	})

	t.Run("issuer is validated before subject", func(tt *testing.T) {
		gateway := testutil.CompleteGateway("u2", "https://signing/def")
		service, _ := testCredentialService(tt, gateway)

		_, err := service.Accept(context.Background(), AcceptRequest{
			Issuer:         testutil.InvalidAddress,
			Subject:        testutil.InvalidAddress,
			CredentialType: "KYC",
		})
		reqErr, ok := AsRequestError(err)
		require.True(tt, ok)
		assert.Equal(tt, InvalidAddress, reqErr.Kind)
		assert.Equal(tt, []string{"issuer"}, reqErr.Fields)
		assert.Equal(tt, 0, gateway.Calls())
	})

	t.Run("missing fields", func(tt *testing.T) {
		gateway := testutil.CompleteGateway("u2", "https://signing/def")
		service, _ := testCredentialService(tt, gateway)

		_, err := service.Accept(context.Background(), AcceptRequest{Subject: testutil.SubjectAddress})
		reqErr, ok := AsRequestError(err)
		require.True(tt, ok)
		assert.Equal(tt, MissingFields, reqErr.Kind)
		assert.Equal(tt, []string{"issuer", "credentialType"}, reqErr.Fields)
		assert.Equal(tt, 0, gateway.Calls())
	})
}

func TestGatewayFailures(t *testing.T) {
	create := CreateRequest{Subject: testutil.SubjectAddress, CredentialType: "KYC", Requester: testutil.RequesterAddress}
	accept := AcceptRequest{Issuer: testutil.IssuerAddress, Subject: testutil.SubjectAddress, CredentialType: "KYC"}

	t.Run("incomplete response on both variants", func(tt *testing.T) {
		gateway := testutil.FailingGateway(signing.IncompleteResponse, errors.New("response is missing uuid"))
		service, journal := testCredentialService(tt, gateway)

		_, err := service.Create(context.Background(), create)
		upErr, ok := AsUpstreamError(err)
		require.True(tt, ok)
		assert.True(tt, upErr.Incomplete())

		_, err = service.Accept(context.Background(), accept)
		upErr, ok = AsUpstreamError(err)
		require.True(tt, ok)
		assert.True(tt, upErr.Incomplete())

		records, _, err := journal.List(context.Background(), payload.Page{Size: payload.AllPages})
		assert.NoError(tt, err)
		assert.Empty(tt, records)
	})

	t.Run("service unavailable", func(tt *testing.T) {
		gateway := testutil.FailingGateway(signing.ServiceUnavailable, errors.New("connection refused"))
		service, _ := testCredentialService(tt, gateway)

		_, err := service.Create(context.Background(), create)
		upErr, ok := AsUpstreamError(err)
		require.True(tt, ok)
		assert.False(tt, upErr.Incomplete())
		assert.True(tt, signing.IsGatewayError(err, signing.ServiceUnavailable))
	})

	t.Run("unexpected error is neither request nor upstream", func(tt *testing.T) {
		gateway := &testutil.FakeGateway{Err: errors.New("boom")}
		service, _ := testCredentialService(tt, gateway)

		_, err := service.Create(context.Background(), create)
		require.Error(tt, err)
		_, isRequest := AsRequestError(err)
		_, isUpstream := AsUpstreamError(err)
		assert.False(tt, isRequest)
		assert.False(tt, isUpstream)
	})

	t.Run("gateway without result or error", func(tt *testing.T) {
		gateway := &testutil.FakeGateway{}
		service, journal := testCredentialService(tt, gateway)

		var err error
		assert.NotPanics(tt, func() {
			_, err = service.Create(context.Background(), create)
		})
		require.Error(tt, err)
		assert.Contains(tt, err.Error(), "no result")

		assert.NotPanics(tt, func() {
			_, err = service.Accept(context.Background(), accept)
		})
		require.Error(tt, err)
		_, isUpstream := AsUpstreamError(err)
		assert.False(tt, isUpstream)

		records, _, err := journal.List(context.Background(), payload.Page{Size: payload.AllPages})
		assert.NoError(tt, err)
		assert.Empty(tt, records)
	})
}

func TestSubmitIgnoresCallerCancellation(t *testing.T) {
	gateway := testutil.CompleteGateway("u1", "https://signing/abc")
	service, journal := testCredentialService(t, gateway)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := service.Create(ctx, CreateRequest{
		Subject:        testutil.SubjectAddress,
		CredentialType: "KYC",
		Requester:      testutil.RequesterAddress,
	})
	assert.NoError(t, err)
	assert.Equal(t, "u1", resp.UUID)
	assert.False(t, gateway.SawCancelledContext())

	_, err = journal.Get(context.Background(), "u1")
	assert.NoError(t, err)
}

func TestPreparedTransactionJSON(t *testing.T) {
	gateway := testutil.CompleteGateway("u1", "https://signing/abc")
	service, _ := testCredentialService(t, gateway)

	resp, err := service.Create(context.Background(), CreateRequest{
		Subject:        testutil.SubjectAddress,
		CredentialType: "KYC",
		Requester:      testutil.RequesterAddress,
	})
	require.NoError(t, err)

	txBytes, err := json.Marshal(resp.PreparedTransaction)
	require.NoError(t, err)
	assert.NotContains(t, string(txBytes), "URI")
}

func TestMissingFieldReasons(t *testing.T) {
	gateway := testutil.CompleteGateway("u1", "https://signing/abc")
	service, _ := testCredentialService(t, gateway)

	_, err := service.Create(context.Background(), CreateRequest{CredentialType: "KYC"})
	reqErr, ok := AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"subject", "requester"}, reqErr.Fields)
	assert.Equal(t, []string{"subject is a required field", "requester is a required field"}, reqErr.Reasons)
}
