package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTokenURL    = "https://kauth.kakao.com/oauth/token"
	defaultUserInfoURL = "https://kapi.kakao.com/v2/user/me"
)

// Profile is the provider identity fetched after the code exchange.
type Profile struct {
	ID       string
	Nickname string
}

// Client performs the Kakao authorization-code exchange plus the user
// info lookup. URLs are overridable for tests.
type Client struct {
	HTTP        *http.Client
	TokenURL    string
	UserInfoURL string
	clientID    string
	redirectURI string
}

func New(clientID, redirectURI string) *Client {
	return &Client{
		HTTP:        &http.Client{Timeout: 10 * time.Second},
		TokenURL:    defaultTokenURL,
		UserInfoURL: defaultUserInfoURL,
		clientID:    clientID,
		redirectURI: redirectURI,
	}
}

// Login exchanges an authorization code for an access token and resolves
// the user's id and nickname.
func (c *Client) Login(ctx context.Context, code string) (*Profile, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", c.clientID)
	form.Set("redirect_uri", c.redirectURI)
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.doJSON(req, &tokenResp); err != nil {
		return nil, fmt.Errorf("kakao token exchange: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("kakao token exchange: empty access token")
	}

	infoReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.UserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	infoReq.Header.Set("Authorization", "Bearer "+tokenResp.AccessToken)

	var infoResp struct {
		ID         json.Number `json:"id"`
		Properties struct {
			Nickname string `json:"nickname"`
		} `json:"properties"`
	}
	if err := c.doJSON(infoReq, &infoResp); err != nil {
		return nil, fmt.Errorf("kakao user info: %w", err)
	}

	return &Profile{
		ID:       infoResp.ID.String(),
		Nickname: infoResp.Properties.Nickname,
	}, nil
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return json.Unmarshal(body, out)
}
