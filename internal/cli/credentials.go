package cli

import (
	"errors"

	"github.com/clambin/plex-watch-history/internal/config"
	"github.com/spf13/afero"
)

// ErrNoCredentials indicates that no credential source yielded usable credentials.
var ErrNoCredentials = errors.New("no Plex credentials provided")

// credentials is the outcome of credential resolution. Exactly one of token,
// username/password or pin is set.
type credentials struct {
	token    string
	username string
	password string
	pin      bool
}

type promptFunc func() (username, password string, err error)

// resolve gathers credentials in order of precedence: the --token flag, the
// --username/--password flags, the --pin flag, the config file (with its
// environment overrides), and finally the interactive prompt.
func (o *options) resolve(fs afero.Fs, prompt promptFunc) (credentials, error) {
	if o.token != "" {
		return credentials{token: o.token}, nil
	}
	if o.username != "" || o.password != "" {
		if o.username == "" || o.password == "" {
			return credentials{}, errors.New("both username and password must be given together")
		}
		return credentials{username: o.username, password: o.password}, nil
	}
	if o.pin {
		return credentials{pin: true}, nil
	}

	path := o.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	creds, err := config.Load(fs, path)
	if err != nil {
		return credentials{}, err
	}
	if creds.Token != "" {
		return credentials{token: creds.Token}, nil
	}
	if creds.Username != "" && creds.Password != "" {
		return credentials{username: creds.Username, password: creds.Password}, nil
	}

	username, password, err := prompt()
	if err != nil {
		return credentials{}, err
	}
	return credentials{username: username, password: password}, nil
}
