// Package config defines the CLI configuration and its validation.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config holds all runtime options, populated from flags and environment
// variables via viper.
type Config struct {
	// Key material, in chain order: --key entries first, then --key-hex,
	// then the lines of --key-file.
	Keys    []string `mapstructure:"key"`
	HexKeys []string `mapstructure:"key-hex"`
	KeyFile string   `mapstructure:"key-file"`

	// Chain shape
	Times int    `mapstructure:"times" validate:"min=1"`
	Coder string `mapstructure:"coder"`

	// Armor selects text output: ciphertext is run through the coder.
	Armor bool

	// Processing
	Parallel           int `validate:"min=1"`
	Quiet              bool
	Delete             bool
	Stats              bool
	Dry                bool
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`

	EncryptSuffix string `mapstructure:"encrypt-ext"`
	DecryptSuffix string `mapstructure:"decrypt-ext"`

	Include     []string
	Exclude     []string
	IncludeFrom string `mapstructure:"include-from"`
	ExcludeFrom string `mapstructure:"exclude-from"`

	// Mode and positional arguments
	Decrypt bool     `mapstructure:"-"`
	Files   []string `mapstructure:"-" validate:"min=1"`
}

// keyCount returns the number of key specs given directly on the command
// line. Key file entries are only known after reading the file.
func (c Config) keyCount() int {
	return len(c.Keys) + len(c.HexKeys)
}

// Validate validates the configuration against the struct tags and the
// cross-field rules the tags cannot express.
func (c Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	if c.keyCount() == 0 && c.KeyFile == "" {
		return errors.New("no key material: provide --key, --key-hex or --key-file")
	}

	if c.Times > 1 && c.keyCount() > 1 {
		return errors.New("--times applies to a single key only")
	}

	return nil
}
