package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// ClientCredentials is the OAuth2 client id/secret pair read once at startup.
type ClientCredentials struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
}

// LoadClientCredentials reads the credentials file at path. The format is
// taken from the extension and defaults to JSON. A missing file, a malformed
// file and empty fields are all errors.
func LoadClientCredentials(path string) (*ClientCredentials, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("json")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read credentials file %q: %w", path, err)
	}

	var creds ClientCredentials
	if err := v.Unmarshal(&creds); err != nil {
		return nil, fmt.Errorf("decode credentials file %q: %w", path, err)
	}

	if err := creds.validate(); err != nil {
		return nil, fmt.Errorf("credentials file %q: %w", path, err)
	}

	return &creds, nil
}

func (c *ClientCredentials) validate() error {
	var errs []error
	if c.ClientID == "" {
		errs = append(errs, errors.New("client_id is required"))
	}
	if c.ClientSecret == "" {
		errs = append(errs, errors.New("client_secret is required"))
	}
	return errors.Join(errs...)
}
