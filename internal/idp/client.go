package idp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"go-admin-portal/internal/config"
)

// UserInfo is the verified identity returned by the provider after a
// successful code exchange. Mail is the identity key.
type UserInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Mail        string `json:"mail"`
}

// Client talks to the external identity provider. The token exchange itself
// is a black box: the service only cares that a code turns into a verified
// mail and display name.
type Client struct {
	oauth       oauth2.Config
	userInfoURL string
}

func New(cfg *config.Config) *Client {
	return &Client{
		oauth: oauth2.Config{
			ClientID:     cfg.IDPClientID,
			ClientSecret: cfg.IDPClientSecret,
			RedirectURL:  cfg.IDPRedirectURI,
			Scopes:       cfg.IDPScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.IDPAuthURL,
				TokenURL: cfg.IDPTokenURL,
			},
		},
		userInfoURL: cfg.IDPUserInfoURL,
	}
}

// AuthCodeURL builds the provider's authorization URL for a login attempt.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// Exchange trades the authorization code for a provider access token.
func (c *Client) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return c.oauth.Exchange(ctx, code)
}

// UserInfo fetches the authenticated user's profile with the provider token.
func (c *Client) UserInfo(ctx context.Context, token *oauth2.Token) (*UserInfo, error) {
	httpClient := c.oauth.Client(ctx, token)
	resp, err := httpClient.Get(c.userInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed with status %d", resp.StatusCode)
	}

	var info UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.Mail == "" {
		return nil, errors.New("userinfo response has no mail")
	}
	return &info, nil
}
