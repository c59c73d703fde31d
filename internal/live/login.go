package live

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/rovicpogi/Stoninonew/internal/domain/auth"
)

const LoginPath = "/api/v1/auth/login"

// PasswordLogin signs in with an admin account and signs in again whenever
// the feed rejects the current access token.
type PasswordLogin struct {
	baseURL  string
	email    string
	password string
	client   *http.Client

	mu    sync.Mutex
	token string
}

func NewPasswordLogin(baseURL, email, password string, client *http.Client) *PasswordLogin {
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &PasswordLogin{
		baseURL:  strings.TrimRight(baseURL, "/"),
		email:    email,
		password: password,
		client:   client,
	}
}

func (p *PasswordLogin) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.token != "" {
		return p.token, nil
	}
	return p.login(ctx)
}

func (p *PasswordLogin) Renew(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = ""
	return p.login(ctx)
}

type loginEnvelope struct {
	Success bool               `json:"success"`
	Data    auth.TokenResponse `json:"data"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *PasswordLogin) login(ctx context.Context) (string, error) {
	payload, err := json.Marshal(auth.LoginRequest{Email: p.email, Password: p.password})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+LoginPath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: login: %v", ErrFeedUnavailable, err)
	}
	defer drain(resp)

	var body loginEnvelope
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusUnprocessableEntity:
		msg := http.StatusText(resp.StatusCode)
		if decodeErr == nil && body.Error != nil {
			msg = body.Error.Message
		}
		return "", fmt.Errorf("%w: login as %s: status %d: %s", ErrUnauthorized, p.email, resp.StatusCode, msg)
	case resp.StatusCode >= 300:
		return "", fmt.Errorf("%w: login: status %d", ErrFeedUnavailable, resp.StatusCode)
	case decodeErr != nil:
		return "", fmt.Errorf("%w: login: decode: %v", ErrFeedUnavailable, decodeErr)
	case !body.Success || body.Data.AccessToken == "":
		return "", fmt.Errorf("%w: login returned no access token", ErrUnauthorized)
	}

	p.token = body.Data.AccessToken
	return p.token, nil
}
