package cli

import (
	"context"
	"fmt"

	"github.com/clambin/plex-watch-history/internal/community"
	"github.com/clambin/plex-watch-history/internal/plextv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// A session is an authenticated handle to the account's watch history.
type session struct {
	user      plextv.User
	community *community.Client
}

// connect resolves credentials, authenticates with plex.tv and returns a
// session. Fetching the user both validates the token and yields the account
// UUID the watch history query needs.
func connect(cmd *cobra.Command, opts *options) (*session, error) {
	logger := opts.logger(cmd.ErrOrStderr())
	creds, err := opts.resolve(afero.NewOsFs(), func() (string, string, error) {
		return promptCredentials(cmd)
	})
	if err != nil {
		return nil, err
	}

	cfg := plextv.DefaultConfig()
	if opts.plexTVURL != "" {
		cfg.URL = opts.plexTVURL
		cfg.V2URL = opts.plexTVURL
	}

	tokenOpts := []plextv.TokenSourceOption{plextv.WithLogger(logger)}
	switch {
	case creds.token != "":
		tokenOpts = append(tokenOpts, plextv.WithToken(plextv.Token(creds.token)))
	case creds.pin:
		tokenOpts = append(tokenOpts, plextv.WithPIN(func(_ plextv.PINResponse, pinURL string) {
			fmt.Fprintf(cmd.ErrOrStderr(), "To sign in, confirm the PIN at %s\n", pinURL)
		}, 0))
	default:
		tokenOpts = append(tokenOpts, plextv.WithCredentials(creds.username, creds.password))
	}
	tokenSource := cfg.TokenSource(tokenOpts...)

	user, err := cfg.Client(tokenSource).User(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	logger.Debug("authenticated", "username", user.Username, "uuid", user.Uuid)

	communityOpts := []community.Option{community.WithLogger(logger)}
	if opts.communityURL != "" {
		communityOpts = append(communityOpts, community.WithURL(opts.communityURL))
	}
	return &session{
		user:      user,
		community: community.New(cfg.ClientID, tokenSource, communityOpts...),
	}, nil
}

func (s *session) watchHistory(ctx context.Context) ([]community.HistoryEntry, error) {
	return s.community.WatchHistory(ctx, s.user.Uuid)
}

func (s *session) remove(ctx context.Context, id string) error {
	return s.community.RemoveWatchHistoryEntry(ctx, id)
}
