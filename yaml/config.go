// Package yaml loads scraper configuration from YAML files.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"os"

	"dario.cat/mergo"
	"github.com/fwojciec/capdata"
	yamlv3 "gopkg.in/yaml.v3"
)

// LoadConfig reads the configuration at path. Fields the file leaves unset
// take their values from capdata.DefaultConfig. Unknown fields are rejected.
func LoadConfig(path string) (*capdata.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	return DecodeConfig(f)
}

// DecodeConfig reads a configuration from r, filling unset fields with
// defaults and validating the result.
func DecodeConfig(r io.Reader) (*capdata.Config, error) {
	var cfg capdata.Config
	dec := yamlv3.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, capdata.Errorf(capdata.EINVALID, "failed to parse config: %v", err)
	}

	if err := mergo.Merge(&cfg, *capdata.DefaultConfig()); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
