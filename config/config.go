// Package config loads client.Options from a YAML or TOML file, the way
// this corpus's deployable services configure themselves
// (alibo-simple-mqtt-network-lab loads YAML for its broker config;
// chenquan-lighthouse loads TOML). A loaded config is validated with
// go-playground/validator before it's handed to client.New, so a bad host
// or an out-of-range port fails fast instead of surfacing as an opaque
// dial error.
package config

import (
	"crypto/tls"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/breezymind/mqttcore/client"
)

// file is the on-disk shape of a client configuration. It maps onto
// client.Options but lives here (rather than in package client) so the
// core package has no YAML/TOML/validator import at all for callers who
// construct Options programmatically.
type file struct {
	Host         string `yaml:"host" toml:"host" validate:"required"`
	Port         uint16 `yaml:"port" toml:"port" validate:"required"`
	ClientID     string `yaml:"client_id" toml:"client_id"`
	Username     string `yaml:"username" toml:"username"`
	Password     string `yaml:"password" toml:"password"`
	KeepAlive    uint16 `yaml:"keepalive" toml:"keepalive" validate:"required"`
	CleanSession bool   `yaml:"clean_session" toml:"clean_session"`
	UseTLS       bool   `yaml:"use_tls" toml:"use_tls"`
}

var validate = validator.New()

// Load reads path, parsing it as YAML or TOML based on its extension
// (.yaml/.yml or .toml), validates the result, and returns it as
// client.Options ready for client.New.
func Load(path string) (client.Options, error) {
	f, err := loadFile(path)
	if err != nil {
		return client.Options{}, err
	}
	return f.toOptions(), nil
}

func loadFile(path string) (file, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return file{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var f file
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return file{}, fmt.Errorf("config: parse yaml %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return file{}, fmt.Errorf("config: parse toml %s: %w", path, err)
		}
	default:
		return file{}, fmt.Errorf("config: unsupported file extension %q", ext)
	}

	if err := validate.Struct(f); err != nil {
		return file{}, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return f, nil
}

// toOptions converts a parsed file into client.Options. UseTLS builds a
// minimal client-side tls.Config rather than leaving TLSConfig nil; a
// caller who needs a custom cert pool or lower min version still sets
// Options.TLSConfig directly after Load returns.
func (f file) toOptions() client.Options {
	opts := client.Options{
		Host:         f.Host,
		Port:         f.Port,
		ClientID:     f.ClientID,
		Username:     f.Username,
		Password:     f.Password,
		HasUsername:  f.Username != "",
		HasPassword:  f.Password != "",
		KeepAlive:    f.KeepAlive,
		CleanSession: f.CleanSession,
	}
	if f.UseTLS {
		opts.TLSConfig = &tls.Config{ServerName: f.Host, MinVersion: tls.VersionTLS12}
	}
	return opts
}
