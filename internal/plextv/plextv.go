package plextv

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client returns a [Client] that uses the provided TokenSource to query the plex.tv API.
// Passing in the TokenSource allows it to be shared with other API clients,
// so a device is only registered once.
func (c Config) Client(tokenSource TokenSource) Client {
	return Client{
		config:      &c,
		tokenSource: tokenSource,
	}
}

// A Client is a plex.tv client that can be used to interact with the public Plex API.
type Client struct {
	config      *Config
	tokenSource TokenSource
}

// User represents a plex.tv user. It is the response from the /api/v2/user endpoint.
// Only the fields the watch history commands care about are decoded.
type User struct {
	Id           int    `json:"id"`
	Uuid         string `json:"uuid"`
	Username     string `json:"username"`
	Title        string `json:"title"`
	Email        string `json:"email"`
	FriendlyName string `json:"friendlyName"`
	Thumb        string `json:"thumb"`
	AuthToken    string `json:"authToken"`
}

// User returns the information of the user associated with the Client's TokenSource.
// This call also updates the Device information in plex.tv.
func (c Client) User(ctx context.Context) (User, error) {
	resp, err := c.doWithToken(ctx, http.MethodGet, c.config.URL+"/api/v2/user", nil, http.StatusOK)
	if err != nil {
		return User{}, err
	}
	defer func() { _ = resp.Body.Close() }()
	var user User
	if err = json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return user, fmt.Errorf("decode: %w", err)
	}
	return user, nil
}

func (c Client) doWithToken(ctx context.Context, method, target string, body io.Reader, wantStatus int, formatters ...requestFormatter) (*http.Response, error) {
	token, err := c.tokenSource.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}
	formatters = append(formatters, func(req *http.Request) {
		req.Header.Set("X-Plex-Token", token.String())
	})
	return c.config.do(ctx, method, target, body, wantStatus, formatters...)
}
