package plextv

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// TokenSource creates a Plex authentication Token.
type TokenSource interface {
	Token(ctx context.Context) (Token, error)
}

// TokenSource returns a [TokenSource] built from the provided options.
// The returned source caches the token it obtains, so a device is registered
// at most once, regardless of how many calls are made with it.
func (c Config) TokenSource(opts ...TokenSourceOption) TokenSource {
	cfg := tokenSourceConfiguration{
		config: &c,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg.tokenSource()
}

// TokenSourceOption provides the configuration to create the desired TokenSource.
type TokenSourceOption func(*tokenSourceConfiguration)

// WithLogger configures an optional logger.
func WithLogger(logger *slog.Logger) TokenSourceOption {
	return func(c *tokenSourceConfiguration) {
		c.logger = logger
	}
}

// WithToken configures a TokenSource to use an existing, fixed token.
func WithToken(token Token) TokenSourceOption {
	return func(c *tokenSourceConfiguration) {
		c.token = token
	}
}

// WithCredentials uses the given credentials to register a device and get a token.
func WithCredentials(username, password string) TokenSourceOption {
	return func(c *tokenSourceConfiguration) {
		c.registrar = tokenSourceFunc(func(ctx context.Context) (Token, error) {
			c.logger.Debug("registering device with credentials", "username", username)
			return c.config.RegisterWithCredentials(ctx, username, password)
		})
	}
}

// WithPIN uses the PIN flow to register a device and get a token.
// Use the callback to inform the user of the PIN URL and to confirm the PIN.
func WithPIN(cb func(PINResponse, string), pollInterval time.Duration) TokenSourceOption {
	return func(c *tokenSourceConfiguration) {
		c.registrar = tokenSourceFunc(func(ctx context.Context) (Token, error) {
			c.logger.Debug("registering device with pin")
			return c.config.RegisterWithPIN(ctx, cb, pollInterval)
		})
	}
}

type tokenSourceConfiguration struct {
	registrar TokenSource
	config    *Config
	logger    *slog.Logger
	token     Token
}

func (c tokenSourceConfiguration) tokenSource() TokenSource {
	// if we have a fixed token, we're done.
	if c.token != "" {
		return fixedTokenSource{token: c.token}
	}
	// otherwise cache whatever the registrar obtains: cachingTokenSource -> registrar
	return &cachingTokenSource{
		tokenSource: c.registrar,
	}
}

var _ TokenSource = (*tokenSourceFunc)(nil)

// tokenSourceFunc is an adapter to convert a function with the correct signature into a TokenSource.
type tokenSourceFunc func(context.Context) (Token, error)

func (a tokenSourceFunc) Token(ctx context.Context) (Token, error) {
	return a(ctx)
}

var (
	_ TokenSource = fixedTokenSource{}
	_ TokenSource = (*cachingTokenSource)(nil)
)

// fixedTokenSource returns a fixed token.
type fixedTokenSource struct {
	token Token
}

func (f fixedTokenSource) Token(_ context.Context) (Token, error) {
	return f.token, nil
}

// A cachingTokenSource caches the token obtained by the underlying TokenSource.
type cachingTokenSource struct {
	tokenSource TokenSource
	token       *Token
	lock        sync.Mutex
}

func (s *cachingTokenSource) Token(ctx context.Context) (Token, error) {
	if s.tokenSource == nil {
		return "", ErrNoTokenSource
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	// if we have a valid token cached, return it
	if s.token != nil && s.token.IsValid() {
		return *s.token, nil
	}

	// no valid token cached, get a new one
	token, err := s.tokenSource.Token(ctx)
	if err != nil {
		return "", err
	}
	s.token = &token
	return token, nil
}
