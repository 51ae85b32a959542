// Package cli implements the plex-watch-history command.
//
// Both subcommands (list, delete) share one path: resolve credentials, build a
// token source, authenticate with plex.tv and query the community API for the
// account's watch history.
package cli

import (
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Main runs the plex-watch-history command with the given arguments, writing
// output to stdout and errors to stderr. It returns the process exit code.
func Main(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

type options struct {
	token        string
	username     string
	password     string
	configPath   string
	plexTVURL    string
	communityURL string
	pin          bool
	verbose      bool
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "plex-watch-history",
		Short: "Manage the watch history synced to your Plex account",
		Long: `Manage your Plex watch history.

Note: this works with the watch history that is synced to your Plex account.`,
		Version:      version(),
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.token, "token", "", "your Plex token")
	pf.StringVar(&opts.username, "username", "", "your Plex username")
	pf.StringVar(&opts.password, "password", "", "your Plex password")
	pf.StringVar(&opts.configPath, "config-path", "", "path to a plexapi config file (default ~/.config/plexapi/config.ini)")
	pf.BoolVar(&opts.pin, "pin", false, "sign in by confirming a PIN on plex.tv/pin")
	pf.BoolVar(&opts.verbose, "verbose", false, "enable debug logging")
	pf.StringVar(&opts.plexTVURL, "plextv-url", "", "")
	pf.StringVar(&opts.communityURL, "community-url", "", "")
	_ = pf.MarkHidden("plextv-url")
	_ = pf.MarkHidden("community-url")

	cmd.AddCommand(listCommand(&opts), deleteCommand(&opts))
	return cmd
}

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

func (o *options) logger(w io.Writer) *slog.Logger {
	if !o.verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
