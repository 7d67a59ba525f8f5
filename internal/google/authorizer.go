package google

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/teemow/voicecal/internal/logging"
)

// DefaultLoopbackAddr is where the authorization redirect is received.
const DefaultLoopbackAddr = "127.0.0.1:8080"

// Authorizer obtains a fresh token by asking the user for consent.
type Authorizer interface {
	Authorize(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error)
}

// LoopbackAuthorizer runs the installed-app flow: it prints the consent URL
// and serves a one-shot HTTP endpoint that receives the authorization code.
type LoopbackAuthorizer struct {
	// Addr is the listen address, DefaultLoopbackAddr when empty.
	Addr string
	// Out receives the consent URL.
	Out    io.Writer
	Logger logging.Logger
}

type authResult struct {
	code string
	err  error
}

// Authorize blocks until the redirect arrives or ctx is done.
func (a *LoopbackAuthorizer) Authorize(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	addr := a.Addr
	if addr == "" {
		addr = DefaultLoopbackAddr
	}
	logger := a.Logger
	if logger == nil {
		logger = logging.DefaultLogger()
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen for OAuth redirect: %w", err)
	}

	local := *conf
	local.RedirectURL = "http://" + ln.Addr().String() + "/"

	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()
	results := make(chan authResult, 1)

	srv := &http.Server{
		Handler:           callbackHandler(state, results),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("oauth redirect listener stopped", logging.Err(err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	authURL := local.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier))
	if a.Out != nil {
		fmt.Fprintf(a.Out, "Open the following link in your browser to authorize access to Google Calendar:\n\n%s\n\n", authURL)
	}
	logger.Info("waiting for OAuth redirect", logging.Operation("authorize"), "addr", ln.Addr().String())

	var res authResult
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-results:
	}
	if res.err != nil {
		return nil, res.err
	}

	token, err := local.Exchange(ctx, res.code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange auth code: %w", err)
	}
	logger.Info("authorization complete", logging.Operation("authorize"), logging.Status(logging.StatusSuccess))
	return token, nil
}

func callbackHandler(state string, results chan<- authResult) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}

		var res authResult
		switch {
		case q.Get("error") != "":
			res.err = fmt.Errorf("authorization denied: %s", q.Get("error"))
			http.Error(w, "Authorization failed, you can close this window.", http.StatusForbidden)
		case q.Get("code") == "":
			res.err = errors.New("authorization redirect carried no code")
			http.Error(w, "Missing authorization code.", http.StatusBadRequest)
		default:
			res.code = q.Get("code")
			fmt.Fprintln(w, "Authorization complete, you can close this window.")
		}

		select {
		case results <- res:
		default:
		}
	})
}
