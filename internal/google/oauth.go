package google

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// LoadOAuthConfig reads a client secret JSON file and returns the OAuth2
// configuration for the calendar scope.
func LoadOAuthConfig(path string) (*oauth2.Config, error) {
	if path == "" {
		return nil, fmt.Errorf("google client secret file is not set")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read client secret file: %w", err)
	}

	conf, err := google.ConfigFromJSON(data, DefaultOAuthScopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse client secret file: %w", err)
	}
	return conf, nil
}

// TokenSource returns a token source backed by store. A stored token is
// used when present; otherwise authorizer obtains a new one, which is
// saved before returning. Refreshed tokens are written back to store.
func TokenSource(ctx context.Context, conf *oauth2.Config, store TokenStore, authorizer Authorizer) (oauth2.TokenSource, error) {
	token, err := store.Load()
	switch {
	case err == nil:
	case IsNoToken(err):
		if authorizer == nil {
			return nil, fmt.Errorf("no Google OAuth token found, run 'voicecal auth' first")
		}
		token, err = authorizer.Authorize(ctx, conf)
		if err != nil {
			return nil, fmt.Errorf("failed to authorize with Google: %w", err)
		}
		if err := store.Save(token); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return &savingTokenSource{
		base:  conf.TokenSource(ctx, token),
		store: store,
		last:  token.AccessToken,
	}, nil
}

// HTTPClient returns an HTTP client authenticated with ts.
// The client is configured to use HTTP/1.1 to avoid HTTP/2 protocol errors.
func HTTPClient(ctx context.Context, ts oauth2.TokenSource) *http.Client {
	client := oauth2.NewClient(ctx, ts)

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
		Proxy:             http.ProxyFromEnvironment,
	}

	return client
}
