/*
Package config loads the four connection values LTNM_SERVER_URL,
LTNM_SERVER_PORT, LTNM_USERNAME, LTNM_PASSWORD and an optional TLS trust
bundle path. It is modeled on bzerolib/envconfig's Entry-oriented design
(each value is an id plus the environment variable that can override
it), scoped down to this module's fixed, closed set of settings: there
is no generic Set/Get/Delete or file-persistence machinery, since
StompSession has nothing analogous to envconfig's cross-process shared
state to reconcile.

An optional YAML override file supplies defaults for local development;
the environment variable always wins when both are present, the same
precedence rule bzerolib/envconfig documents for its Entry.EnvVar.
*/
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	idServerURL    = "server-url"
	idServerPort   = "server-port"
	idUsername     = "username"
	idPassword     = "password"
	idCABundlePath = "ca-bundle-path"
)

// Environment variable names.
const (
	EnvServerURL    = "LTNM_SERVER_URL"
	EnvServerPort   = "LTNM_SERVER_PORT"
	EnvUsername     = "LTNM_USERNAME"
	EnvPassword     = "LTNM_PASSWORD"
	EnvCABundlePath = "LTNM_CA_BUNDLE_PATH"
)

// Config holds everything needed to dial and authenticate against the
// LTNM STOMP server. CABundlePath is optional; when empty the caller
// should trust the host's system certificate pool instead.
type Config struct {
	ServerURL    string
	ServerPort   string
	Username     string
	Password     string
	CABundlePath string
}

func defaultEntries() []*entry {
	return []*entry{
		{id: idServerURL, envVar: EnvServerURL, comment: "STOMP server hostname"},
		{id: idServerPort, envVar: EnvServerPort, value: "443", comment: "STOMP server port"},
		{id: idUsername, envVar: EnvUsername, comment: "STOMP login"},
		{id: idPassword, envVar: EnvPassword, comment: "STOMP passcode"},
		{id: idCABundlePath, envVar: EnvCABundlePath, comment: "optional PEM CA bundle for server verification"},
	}
}

// overrideFile is the shape of the optional YAML dev-override file: a
// flat mapping from entry id to the default value it should carry
// before environment variables are reconciled in.
type overrideFile map[string]string

// Load builds a Config from an optional YAML override file followed by
// environment variables, with the environment always taking precedence.
// overridePath may be empty, in which case only the built-in defaults
// and the environment are consulted.
func Load(overridePath string) (*Config, error) {
	entries := defaultEntries()

	if overridePath != "" {
		if err := applyOverrideFile(overridePath, entries); err != nil {
			return nil, err
		}
	}

	for _, e := range entries {
		e.reconcile()
	}

	cfg := &Config{}
	for _, e := range entries {
		switch e.id {
		case idServerURL:
			cfg.ServerURL = e.value
		case idServerPort:
			cfg.ServerPort = e.value
		case idUsername:
			cfg.Username = e.value
		case idPassword:
			cfg.Password = e.value
		case idCABundlePath:
			cfg.CABundlePath = e.value
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, &ValidationError{InnerErr: err}
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("%s is required", EnvServerURL)
	}
	if c.ServerPort == "" {
		return fmt.Errorf("%s is required", EnvServerPort)
	}
	if c.Username == "" {
		return fmt.Errorf("%s is required", EnvUsername)
	}
	if c.Password == "" {
		return fmt.Errorf("%s is required", EnvPassword)
	}
	return nil
}

func applyOverrideFile(path string, entries []*entry) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return &FileError{Path: path, InnerErr: err}
	}

	var overrides overrideFile
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return &ValidationError{InnerErr: err}
	}

	byID := make(map[string]*entry, len(entries))
	for _, e := range entries {
		byID[e.id] = e
	}

	for id, value := range overrides {
		e, ok := byID[id]
		if !ok {
			return &KeyError{Key: id}
		}
		e.value = value
	}
	return nil
}
