// Package telemetry mirrors signups and global activity entries to the
// GeoSick directory service. Every call here is best-effort: the client is
// fully functional offline, so network and server failures are logged for
// the operator and swallowed.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/geosick-health/geosick/internal/client/accounts"
	"github.com/geosick-health/geosick/internal/client/activity"
	"github.com/geosick-health/geosick/internal/logging"
	"github.com/sethvargo/go-retry"
)

// Publisher posts to the directory service's JSON API. Transient failures
// are retried with capped exponential backoff before giving up silently.
type Publisher struct {
	baseURL string
	client  *http.Client
	logger  logging.Logger

	token string // bearer token from the directory login, empty until obtained

	maxRetries uint64
	baseDelay  time.Duration
}

func NewPublisher(baseURL string, logger logging.Logger) *Publisher {
	return &Publisher{
		baseURL:    baseURL,
		client:     &http.Client{Timeout: 5 * time.Second},
		logger:     logger.With("module", "telemetry"),
		maxRetries: 3,
		baseDelay:  500 * time.Millisecond,
	}
}

type credentials struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type sessionResponse struct {
	AccessToken string `json:"access_token"`
}

// Login obtains a bearer token from the directory service for subsequent
// activity pushes. Failure leaves the publisher tokenless, which is fine:
// pushes will be rejected server-side and swallowed client-side.
func (p *Publisher) Login(ctx context.Context, phone, password string) {
	body, err := p.post(ctx, "/api/v1/sessions", credentials{Phone: phone, Password: password}, false)
	if err != nil {
		p.logger.Warn(ctx, "directory login failed", "error", err.Error())
		return
	}

	var resp sessionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		p.logger.Warn(ctx, "unexpected directory session response", "error", err.Error())
		return
	}
	p.token = resp.AccessToken
}

// RegisterAccount mirrors a new signup to the directory.
func (p *Publisher) RegisterAccount(ctx context.Context, account accounts.Account) {
	if _, err := p.post(ctx, "/api/v1/accounts", account, false); err != nil {
		p.logger.Warn(ctx, "account mirror failed", "phone", account.Phone, "error", err.Error())
	}
}

// Publish pushes one global-log entry. Implements activity.Publisher.
func (p *Publisher) Publish(ctx context.Context, entry activity.Entry) {
	if _, err := p.post(ctx, "/api/v1/activity", entry, true); err != nil {
		p.logger.Warn(ctx, "activity push failed", "id", entry.ID, "error", err.Error())
	}
}

func (p *Publisher) post(ctx context.Context, path string, payload any, authed bool) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var body []byte
	backoff := retry.WithMaxRetries(p.maxRetries, retry.NewExponential(p.baseDelay))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(data))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		if authed && p.token != "" {
			req.Header.Set("Authorization", "Bearer "+p.token)
		}

		resp, err := p.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(err)
		}

		if resp.StatusCode >= 500 {
			return retry.RetryableError(fmt.Errorf("server error: %s", resp.Status))
		}
		if resp.StatusCode >= 400 {
			// client errors will not get better on retry
			return fmt.Errorf("request rejected: %s", resp.Status)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}
