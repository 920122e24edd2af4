package signing

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	sdkutil "github.com/TBD54566975/ssi-sdk/util"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ledgercred/credential-service/config"
	"github.com/ledgercred/credential-service/internal/util"
	"github.com/ledgercred/credential-service/internal/xrpl"
	"github.com/ledgercred/credential-service/pkg/service/framework"
)

const (
	payloadPath = "/platform/payload"

	apiKeyHeader    = "X-API-Key"
	apiSecretHeader = "X-API-Secret"

	maxResponseBytes = 1 << 20
)

var submissions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "signing_gateway_submissions_total",
	Help: "Signing requests submitted to the signing service, by outcome.",
}, []string{"outcome"})

// Service is the gateway to the wallet signing service. Each Submit queues one transaction for a human to sign.
type Service struct {
	config     config.SigningConfig
	client     *http.Client
	payloadURL string
}

func (s Service) Type() framework.Type {
	return framework.Signing
}

func (s Service) Status() framework.Status {
	ae := sdkutil.NewAppendError()
	if s.client == nil {
		ae.AppendString("no http client configured")
	}
	if s.config.APIKey == "" || s.config.APISecret == "" {
		ae.AppendString("no api credentials configured")
	}
	if !ae.IsEmpty() {
		return framework.Status{
			Status:  framework.StatusNotReady,
			Message: fmt.Sprintf("signing service is not ready: %s", ae.Error().Error()),
		}
	}
	return framework.Status{Status: framework.StatusReady}
}

func (s Service) Config() config.SigningConfig {
	return s.config
}

func NewSigningService(cfg config.SigningConfig) (*Service, error) {
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, sdkutil.LoggingNewError("signing service api key and secret are required")
	}
	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, sdkutil.LoggingNewErrorf("invalid signing service base url: %s", cfg.BaseURL)
	}
	return &Service{
		config: cfg,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		payloadURL: base.String() + payloadPath,
	}, nil
}

// Submit queues tx on the signing service with the configured submit and expire options, returning the
// sign link and the correlation uuid. Every failure is a *GatewayError.
func (s Service) Submit(ctx context.Context, tx xrpl.Transaction) (*Result, error) {
	body, err := json.Marshal(payloadRequest{
		TxJSON: tx,
		Options: payloadOptions{
			Submit: s.config.SubmitOnSign,
			Expire: s.config.ExpireMinutes(),
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshaling payload request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.payloadURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "building payload request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(apiKeyHeader, s.config.APIKey)
	req.Header.Set(apiSecretHeader, s.config.APISecret)

	logrus.WithFields(logrus.Fields{
		"transactionType": tx.Type(),
		"apiKey":          util.Redact(s.config.APIKey),
	}).Debug("submitting signing request")

	resp, err := s.client.Do(req)
	if err != nil {
		submissions.WithLabelValues(string(ServiceUnavailable)).Inc()
		return nil, newGatewayError(ServiceUnavailable, errors.Wrap(err, "calling signing service"))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		submissions.WithLabelValues(string(ServiceUnavailable)).Inc()
		return nil, newGatewayError(ServiceUnavailable, errors.Wrap(err, "reading signing service response"))
	}

	if !util.Is2xxResponse(resp.StatusCode) {
		submissions.WithLabelValues(string(ServiceUnavailable)).Inc()
		return nil, newGatewayError(ServiceUnavailable, describeFailure(resp.StatusCode, respBody))
	}

	parsed := parsePayloadResponse(respBody)
	if parsed.kind == incomplete {
		submissions.WithLabelValues(string(IncompleteResponse)).Inc()
		return nil, newGatewayError(IncompleteResponse, errors.New(parsed.reason))
	}

	submissions.WithLabelValues("complete").Inc()
	logrus.Infof("signing request<%s> created for %s", parsed.result.UUID, tx.Type())
	return &parsed.result, nil
}

// parsePayloadResponse decides whether a successful response carries both the sign link and the uuid.
func parsePayloadResponse(body []byte) payloadOutcome {
	var resp payloadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return payloadOutcome{kind: incomplete, reason: "response body is not a payload: " + err.Error()}
	}

	var missing []string
	if resp.Next == nil || resp.Next.Always == "" {
		missing = append(missing, "next.always")
	}
	if resp.UUID == "" {
		missing = append(missing, "uuid")
	}
	if len(missing) > 0 {
		return payloadOutcome{kind: incomplete, reason: "response is missing " + strings.Join(missing, ", ")}
	}

	return payloadOutcome{
		kind: complete,
		result: Result{
			UUID:    resp.UUID,
			SignURL: resp.Next.Always,
			Pushed:  resp.Pushed,
		},
	}
}

func describeFailure(statusCode int, body []byte) error {
	var platformErr platformError
	if err := json.Unmarshal(body, &platformErr); err == nil && platformErr.Error.Code != 0 {
		return errors.Errorf("signing service responded %d: error code %d (reference %s)",
			statusCode, platformErr.Error.Code, platformErr.Error.Reference)
	}
	return errors.Errorf("signing service responded %d: %s", statusCode, util.SanitizeLog(string(body)))
}
