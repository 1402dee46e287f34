package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"

	"github.com/desertthunder/taskbridge/internal/server"
	"github.com/desertthunder/taskbridge/internal/shared"
)

const (
	todoistAuthURL  = "https://todoist.com/oauth/authorize"
	todoistTokenURL = "https://todoist.com/oauth/access_token"
	todoistScope    = "data:read_write"

	authTimeout = 5 * time.Minute
)

// TodoistAuth runs the OAuth2 authorization code flow against Todoist.
//
// A temporary HTTP server is started on the redirect URI's host to receive
// the callback; the exchanged token is stored in the config file.
func (r *Runner) TodoistAuth(ctx context.Context, cmd *cli.Command) error {
	creds := r.config.Credentials.Todoist
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return fmt.Errorf("%w: todoist client_id and client_secret must be configured", shared.ErrMissingCredentials)
	}

	redirect := creds.RedirectURI
	if redirect == "" {
		redirect = "http://localhost:8080/callback"
	}

	redirectURL, err := url.Parse(redirect)
	if err != nil {
		return fmt.Errorf("%w: invalid redirect_uri %q: %v", shared.ErrInvalidConfig, redirect, err)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  redirect,
		Scopes:       []string{todoistScope},
		Endpoint: oauth2.Endpoint{
			AuthURL:  todoistAuthURL,
			TokenURL: todoistTokenURL,
		},
	}

	state := shared.GenerateID()
	handler := server.NewOAuthHandler(oauthConfig, state)

	router := server.NewBasicRouter()
	router.Handler(handler)

	srv := &http.Server{Addr: redirectURL.Host, Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.logger.Error("callback server failed", "error", err)
		}
	}()
	defer srv.Shutdown(context.Background())

	authURL := oauthConfig.AuthCodeURL(state)
	r.writePlain("Opening browser for Todoist authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.writePlain("Open this URL in your browser:\n%s\n", authURL)
	}

	select {
	case result := <-handler.Result():
		if result.Error() != nil {
			return result.Error()
		}
		if err := r.saveToken(result.Token); err != nil {
			return err
		}
		r.logger.Info("todoist authentication successful")
		return r.writePlain("✓ Todoist authentication successful\n")

	case <-time.After(authTimeout):
		return fmt.Errorf("%w: authorization not completed within %s", shared.ErrTimeout, authTimeout)

	case <-ctx.Done():
		return ctx.Err()
	}
}
