package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// promptCredentials interactively asks for a username and password. The
// password is read without echo, which requires stdin to be a terminal; when
// it isn't, prompting is not possible and resolution fails.
func promptCredentials(cmd *cobra.Command) (string, string, error) {
	in, ok := cmd.InOrStdin().(*os.File)
	if !ok || !term.IsTerminal(int(in.Fd())) {
		return "", "", ErrNoCredentials
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Plex username: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return "", "", fmt.Errorf("read username: %w", err)
	}
	username := strings.TrimSpace(line)

	fmt.Fprint(cmd.ErrOrStderr(), "Plex password: ")
	raw, err := term.ReadPassword(int(in.Fd()))
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", "", fmt.Errorf("read password: %w", err)
	}

	if username == "" || len(raw) == 0 {
		return "", "", ErrNoCredentials
	}
	return username, string(raw), nil
}
