// Package oauth implements the Asana authorization flow: issuing
// authorization URLs, exchanging callback codes, and finishing the
// connect handshake started by a slash command.
package oauth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/Devansht420/Apps.Asana.Integration/internal/store"
)

const (
	asanaAuthURL  = "https://app.asana.com/-/oauth_authorize"
	asanaTokenURL = "https://app.asana.com/-/oauth_token"
)

// CodeExchanger trades an authorization code for an access token
type CodeExchanger interface {
	Exchange(ctx context.Context, code string) (string, error)
}

// Authorizer starts and completes OAuth authorizations against Asana
type Authorizer struct {
	cfg   *oauth2.Config
	store store.CredentialStore
}

// NewAuthorizer creates an Authorizer. redirectURL is this service's
// /oauth/callback endpoint.
func NewAuthorizer(clientID, clientSecret, redirectURL string, s store.CredentialStore) *Authorizer {
	return &Authorizer{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  asanaAuthURL,
				TokenURL: asanaTokenURL,
			},
		},
		store: s,
	}
}

// BeginAuthorization records the pending interaction context and
// returns the URL the user must visit. The state value ties the
// redirect back to the user and room that initiated it.
func (a *Authorizer) BeginAuthorization(userID, roomID string) (string, error) {
	state := uuid.NewString()
	if err := a.store.SaveRoomContext(state, userID, roomID); err != nil {
		return "", fmt.Errorf("failed to save interaction context: %w", err)
	}
	return a.cfg.AuthCodeURL(state), nil
}

// Exchange trades an authorization code for an access token
func (a *Authorizer) Exchange(ctx context.Context, code string) (string, error) {
	tok, err := a.cfg.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("token exchange failed: %w", err)
	}
	return tok.AccessToken, nil
}
