package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/confsync/internal/common"
	"github.com/dmitrijs2005/confsync/internal/logging"
	"github.com/dmitrijs2005/confsync/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sethvargo/go-retry"
)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 2 * time.Second
	maxRetries     = 3
)

// Client implements Source over HTTP/JSON: GET {base}/tables/{name} returns
// a row array. Transient failures (transport errors, 5xx) are retried with
// capped exponential backoff; auth and client errors are not.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     logging.Logger
}

func NewClient(baseURL, token string, log logging.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log.With("component", "remote"),
	}
}

// SetToken replaces the access token used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) FetchTable(ctx context.Context, name string) ([]models.Record, error) {
	var records []models.Record

	backoff := retry.WithCappedDuration(maxBackoff, retry.NewExponential(initialBackoff))
	backoff = retry.WithMaxRetries(maxRetries, backoff)

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		rows, err := c.fetchOnce(ctx, name)
		if err != nil {
			if isRetryable(err) {
				c.log.Warn(ctx, "fetch failed, will retry", "table", name, "error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		records = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) fetchOnce(ctx context.Context, name string) ([]models.Record, error) {
	url := fmt.Sprintf("%s/tables/%s", c.baseURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(common.AuthHeaderName, "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %v: %w", name, err, common.ErrNetwork)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("fetch %q: %s: %w", name, resp.Status, common.ErrAuth)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("fetch %q: %w", name, common.ErrUnknownTable)
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("fetch %q: %s: %w", name, resp.Status, common.ErrNetwork)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch %q: unexpected status %s: %s", name, resp.Status, body)
	}

	var rows []models.Record
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("fetch %q: decode: %w", name, err)
	}
	return rows, nil
}

func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ping: %v: %w", err, common.ErrNetwork)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping: %s: %w", resp.Status, common.ErrNetwork)
	}
	return nil
}

// TokenExpiresSoon reports whether the bearer token is a JWT expiring within
// the given window. Opaque (non-JWT) tokens report false; the signature is
// not verified here, only the exp claim is read.
func (c *Client) TokenExpiresSoon(within time.Duration) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) < within
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return errors.Is(err, common.ErrNetwork)
}
