package community

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/clambin/plex-watch-history/internal/plextv"
)

// DefaultURL is the base URL of the Plex community API.
const DefaultURL = "https://community.plex.tv/api"

const defaultPageSize = 100

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) {
		client.httpClient = httpClient
	}
}

func WithURL(url string) Option {
	return func(client *Client) {
		client.url = url
	}
}

// WithPageSize sets the number of watch history entries requested per page.
func WithPageSize(pageSize int) Option {
	return func(client *Client) {
		client.pageSize = pageSize
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) {
		client.logger = logger
	}
}

// Client calls the Plex community API. It authenticates with the Token
// provided by the TokenSource, identifying itself with the same client ID
// used to register the device.
type Client struct {
	httpClient  *http.Client
	tokenSource plextv.TokenSource
	logger      *slog.Logger
	url         string
	clientID    string
	pageSize    int
}

func New(clientID string, tokenSource plextv.TokenSource, opts ...Option) *Client {
	client := Client{
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		tokenSource: tokenSource,
		logger:      slog.New(slog.DiscardHandler),
		url:         DefaultURL,
		clientID:    clientID,
		pageSize:    defaultPageSize,
	}
	for _, o := range opts {
		o(&client)
	}
	return &client
}

// graphQLRequest is the body of a community API call.
type graphQLRequest struct {
	Variables     map[string]any `json:"variables"`
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
}

type graphQLError struct {
	Message string `json:"message"`
}

// query posts a GraphQL request and decodes the data object into response.
// HTTP-level errors are parsed with [plextv.ParsePlexError]; GraphQL-level
// errors (a 200 response carrying an errors array) are returned as an error.
func (c *Client) query(ctx context.Context, request graphQLRequest, response any) error {
	token, err := c.tokenSource.Token(ctx)
	if err != nil {
		return fmt.Errorf("token: %w", err)
	}

	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Plex-Token", token.String())
	req.Header.Set("X-Plex-Client-Identifier", c.clientID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return plextv.ParsePlexError(resp)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphQLError  `json:"errors"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if len(envelope.Errors) > 0 {
		messages := make([]string, len(envelope.Errors))
		for i, e := range envelope.Errors {
			messages[i] = e.Message
		}
		return errors.New("graphql: " + strings.Join(messages, "; "))
	}
	if err = json.Unmarshal(envelope.Data, response); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
