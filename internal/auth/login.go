package auth

import "golang.org/x/oauth2"

// LoginConfig is what a browser client needs to start the OIDC
// authorization code flow
type LoginConfig struct {
	AuthorizationURL string   `json:"authorization_url"`
	ClientID         string   `json:"client_id"`
	RedirectURI      string   `json:"redirect_uri"`
	Scopes           []string `json:"scopes"`
}

// Flow builds authorization URLs for the configured OIDC provider
type Flow struct {
	config *oauth2.Config
}

// NewFlow creates a login flow for a public OIDC client. The token
// exchange happens in the browser with PKCE, so no client secret is held
// server-side.
func NewFlow(issuer, clientID, redirectURI string) *Flow {
	return &Flow{
		config: &oauth2.Config{
			ClientID:    clientID,
			RedirectURL: redirectURI,
			Scopes:      []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  issuer + "/oauth2/authorize",
				TokenURL: issuer + "/oauth2/token",
			},
		},
	}
}

// LoginConfig returns the flow's client-facing configuration with a
// ready-to-use authorization URL
func (f *Flow) LoginConfig(state string) *LoginConfig {
	return &LoginConfig{
		AuthorizationURL: f.config.AuthCodeURL(state),
		ClientID:         f.config.ClientID,
		RedirectURI:      f.config.RedirectURL,
		Scopes:           f.config.Scopes,
	}
}
