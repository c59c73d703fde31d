package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rovicpogi/Stoninonew/internal/domain/attendance"
)

const LiveFeedPath = "/api/v1/admin/attendance-live"

const maxBodyBytes = 4 << 20

var (
	ErrFeedUnavailable = errors.New("live feed unavailable")
	// ErrUnauthorized means the API refused the monitor's credentials and
	// renewing them did not help. Retrying on the next tick will not fix it.
	ErrUnauthorized = errors.New("live feed rejected credentials")
)

// Credentials supplies the bearer token for feed requests.
type Credentials interface {
	Token(ctx context.Context) (string, error)
	// Renew replaces a token the API rejected.
	Renew(ctx context.Context) (string, error)
}

// StaticToken is a fixed access token. It cannot be renewed.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }

func (t StaticToken) Renew(context.Context) (string, error) {
	return "", fmt.Errorf("%w: static access token expired or revoked", ErrUnauthorized)
}

// HTTPSource reads the live attendance feed from the API.
type HTTPSource struct {
	baseURL string
	creds   Credentials
	client  *http.Client
}

// NewHTTPSource builds a source; creds may be nil for an unauthenticated feed.
func NewHTTPSource(baseURL string, creds Credentials, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		client:  client,
	}
}

// Fetch asks the feed for q. A 401 renews the credentials and retries once.
func (s *HTTPSource) Fetch(ctx context.Context, q Query) ([]attendance.LiveRecord, error) {
	token := ""
	if s.creds != nil {
		var err error
		if token, err = s.creds.Token(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := s.get(ctx, q, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized && s.creds != nil {
		drain(resp)
		if token, err = s.creds.Renew(ctx); err != nil {
			return nil, err
		}
		if resp, err = s.get(ctx, q, token); err != nil {
			return nil, err
		}
	}
	defer drain(resp)

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	}

	var body attendance.LiveFeedResponse
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body)
	if resp.StatusCode != http.StatusOK {
		msg := http.StatusText(resp.StatusCode)
		if decodeErr == nil && body.Error != "" {
			msg = body.Error
		}
		return nil, fmt.Errorf("%w: status %d: %s", ErrFeedUnavailable, resp.StatusCode, msg)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrFeedUnavailable, decodeErr)
	}
	if !body.Success {
		return nil, fmt.Errorf("%w: %s", ErrFeedUnavailable, body.Error)
	}

	return body.Records, nil
}

func (s *HTTPSource) get(ctx context.Context, q Query, token string) (*http.Response, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(attendance.ClampLimit(q.Limit)))
	if q.Since != nil {
		params.Set("since", q.Since.UTC().Format(time.RFC3339Nano))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+LiveFeedPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build live feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	return resp, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	resp.Body.Close()
}
