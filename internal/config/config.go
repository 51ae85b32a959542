// Package config reads Plex credentials from a plexapi-compatible config file.
//
// The file is an INI file with an [auth] section holding server_token,
// myplex_username and myplex_password, typically at
// ~/.config/plexapi/config.ini. As with plexapi, values can be overridden
// through PLEXAPI_AUTH_* environment variables, and the file location through
// PLEXAPI_CONFIG_PATH.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

const (
	envConfigPath = "PLEXAPI_CONFIG_PATH"
	envToken      = "PLEXAPI_AUTH_SERVER_TOKEN"
	envUsername   = "PLEXAPI_AUTH_MYPLEX_USERNAME"
	envPassword   = "PLEXAPI_AUTH_MYPLEX_PASSWORD"
)

// Credentials holds the credentials found in the config file and environment.
// Any field may be empty.
type Credentials struct {
	Token    string
	Username string
	Password string
}

// DefaultPath returns the config file location: $PLEXAPI_CONFIG_PATH if set,
// otherwise ~/.config/plexapi/config.ini.
func DefaultPath() string {
	if path := os.Getenv(envConfigPath); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "plexapi", "config.ini")
}

// Load reads credentials from the config file at path and applies the
// environment overrides. A missing file is not an error: plexapi treats the
// file as optional, and the environment may carry the credentials on its own.
func Load(fs afero.Fs, path string) (Credentials, error) {
	var creds Credentials
	data, err := afero.ReadFile(fs, path)
	switch {
	case err == nil:
		file, err := ini.Load(data)
		if err != nil {
			return Credentials{}, fmt.Errorf("parse %s: %w", path, err)
		}
		auth := file.Section("auth")
		creds.Token = auth.Key("server_token").String()
		creds.Username = auth.Key("myplex_username").String()
		creds.Password = auth.Key("myplex_password").String()
	case errors.Is(err, os.ErrNotExist) || path == "":
	default:
		return Credentials{}, fmt.Errorf("read %s: %w", path, err)
	}

	if token := os.Getenv(envToken); token != "" {
		creds.Token = token
	}
	if username := os.Getenv(envUsername); username != "" {
		creds.Username = username
	}
	if password := os.Getenv(envPassword); password != "" {
		creds.Password = password
	}
	return creds, nil
}
