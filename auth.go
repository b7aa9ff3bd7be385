package smartcar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// AuthClient holds the application credentials for the Connect flow and
// token exchanges. Construct one per application and share it across calls;
// it is immutable apart from the optional logger and safe for concurrent
// use. The client secret is never logged and never appears in a URL.
type AuthClient struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	// TestMode routes the Connect flow to the simulated environment.
	TestMode bool

	logger *zap.Logger
}

// New creates an AuthClient from the credentials issued in the developer
// dashboard.
func New(clientID, clientSecret, redirectURI string, testMode bool) *AuthClient {
	return &AuthClient{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURI:  redirectURI,
		TestMode:     testMode,
		logger:       zap.NewNop(),
	}
}

// NewFromEnv creates an AuthClient from the SMARTCAR_CLIENT_ID,
// SMARTCAR_CLIENT_SECRET and SMARTCAR_REDIRECT_URI environment variables.
func NewFromEnv(testMode bool) (*AuthClient, error) {
	clientID := os.Getenv("SMARTCAR_CLIENT_ID")
	if clientID == "" {
		return nil, fmt.Errorf("smartcar: SMARTCAR_CLIENT_ID environment variable not set")
	}
	clientSecret := os.Getenv("SMARTCAR_CLIENT_SECRET")
	if clientSecret == "" {
		return nil, fmt.Errorf("smartcar: SMARTCAR_CLIENT_SECRET environment variable not set")
	}
	redirectURI := os.Getenv("SMARTCAR_REDIRECT_URI")
	if redirectURI == "" {
		return nil, fmt.Errorf("smartcar: SMARTCAR_REDIRECT_URI environment variable not set")
	}
	return New(clientID, clientSecret, redirectURI, testMode), nil
}

// WithLogger attaches a logger for debug-level request logging. Tokens and
// the client secret are never part of the log output.
func (c *AuthClient) WithLogger(logger *zap.Logger) *AuthClient {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// AuthURLOptions tunes the Connect URL. The zero value emits no optional
// parameters, leaving every behavior at the provider default.
type AuthURLOptions struct {
	// ForcePrompt shows the approval screen even if the user has already
	// approved the application.
	ForcePrompt bool

	// State is round-tripped on the redirect back to the application,
	// typically to correlate the user or prevent CSRF.
	State string

	// MakeBypass skips the brand selection screen, e.g. "TESLA".
	MakeBypass string

	// SingleSelect restricts the user to connecting one vehicle.
	SingleSelect bool

	// SingleSelectVIN restricts the selection to the vehicle with this
	// VIN. Implies SingleSelect.
	SingleSelectVIN string

	// Flags enables early-access feature flags, as name -> value.
	Flags map[string]string
}

// GetAuthURL builds the Connect URL the user visits to grant the requested
// scope. Pure string assembly: identical inputs produce identical URLs.
func (c *AuthClient) GetAuthURL(scope *Scope, opts *AuthURLOptions) string {
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", c.ClientID)
	q.Set("redirect_uri", c.RedirectURI)
	if scope != nil {
		q.Set("scope", scope.String())
	}
	if c.TestMode {
		q.Set("mode", "test")
	}

	if opts != nil {
		if opts.ForcePrompt {
			q.Set("approval_prompt", "force")
		}
		if opts.State != "" {
			q.Set("state", opts.State)
		}
		if opts.MakeBypass != "" {
			q.Set("make", opts.MakeBypass)
		}
		switch {
		case opts.SingleSelectVIN != "":
			q.Set("single_select_vin", opts.SingleSelectVIN)
			q.Set("single_select", "true")
		case opts.SingleSelect:
			q.Set("single_select", "true")
		}
		if len(opts.Flags) > 0 {
			q.Set("flags", formatFlags(opts.Flags))
		}
	}

	return connectOrigin() + "/oauth/authorize?" + q.Encode()
}

// formatFlags renders feature flags as space-separated key:value pairs,
// keys sorted so the URL stays deterministic.
func formatFlags(flags map[string]string) string {
	keys := make([]string, 0, len(flags))
	for k := range flags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + ":" + flags[k]
	}
	return strings.Join(pairs, " ")
}

// tokenResponse is the token endpoint's wire shape for both grant types.
// Expiries arrive as relative seconds.
type tokenResponse struct {
	AccessToken           string `json:"access_token"`
	RefreshToken          string `json:"refresh_token"`
	TokenType             string `json:"token_type"`
	ExpiresIn             int    `json:"expires_in"`
	RefreshTokenExpiresIn int    `json:"refresh_token_expires_in"`
}

// defaultRefreshTokenTTL is the documented refresh-token lifetime, assumed
// when the token response carries no refresh_token_expires_in.
const defaultRefreshTokenTTL = 60 * 24 * time.Hour

// Access is the credential pair produced by a token exchange. The caller
// owns persistence and rotation; the SDK never caches one and never
// refreshes it on its own.
type Access struct {
	AccessToken  string
	RefreshToken string

	// ExpiresAt is when the access token stops working, computed from the
	// response's relative expiry at receipt time.
	ExpiresAt time.Time

	// RefreshExpiresAt is advisory only. An invalid_grant response on
	// refresh is the authoritative signal that the refresh token is gone.
	RefreshExpiresAt time.Time

	Meta Meta
}

// Expired reports whether the access token is past, or within a minute of,
// its expiry. Advisory; the API's 401 is authoritative.
func (a *Access) Expired() bool {
	return time.Now().After(a.ExpiresAt.Add(-time.Minute))
}

// ExchangeCode trades an authorization code from the Connect redirect for
// an access/refresh token pair. Codes are single-use: a failed exchange
// means restarting the consent flow, so nothing here retries.
func (c *AuthClient) ExchangeCode(ctx context.Context, code string) (*Access, error) {
	if code == "" {
		return nil, fmt.Errorf("smartcar: empty authorization code")
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.RedirectURI)

	return c.tokenRequest(ctx, form)
}

// ExchangeRefreshToken trades a refresh token for a brand-new token pair.
// The old pair is invalidated provider-side. Safe for the caller to retry
// within the refresh token's validity window.
func (c *AuthClient) ExchangeRefreshToken(ctx context.Context, refreshToken string) (*Access, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("smartcar: empty refresh token")
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	return c.tokenRequest(ctx, form)
}

func (c *AuthClient) tokenRequest(ctx context.Context, form url.Values) (*Access, error) {
	res, err := newRequest(http.MethodPost, authOrigin()+"/oauth/token").
		withHeader("Authorization", basicAuthHeader(c.ClientID, c.ClientSecret)).
		withForm(form).
		withLogger(c.logger).
		send(ctx)
	if err != nil {
		return nil, err
	}
	if res.status < 200 || res.status > 299 {
		return nil, res.authError()
	}

	var token tokenResponse
	if err := json.Unmarshal(res.body, &token); err != nil {
		return nil, &ParseError{Err: err, Body: res.body}
	}

	now := time.Now()
	access := &Access{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    now.Add(time.Duration(token.ExpiresIn) * time.Second),
		Meta:         res.meta,
	}
	if token.RefreshTokenExpiresIn > 0 {
		access.RefreshExpiresAt = now.Add(time.Duration(token.RefreshTokenExpiresIn) * time.Second)
	} else {
		access.RefreshExpiresAt = now.Add(defaultRefreshTokenTTL)
	}
	return access, nil
}
