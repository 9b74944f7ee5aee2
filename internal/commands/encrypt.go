package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/frodlund/cascade/internal/config"
	"github.com/frodlund/cascade/internal/logger"
	"github.com/frodlund/cascade/internal/logic"
)

// NewEncryptCommand creates the encrypt subcommand.
func NewEncryptCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "encrypt [flags] files...",
		Aliases: []string{"enc"},
		Short:   "Encrypt files",
		Args:    cobra.MinimumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(cmd)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := unmarshalConfig(args, false)
			if err != nil {
				return err
			}

			return logic.Run(cfg, logger.New(cfg.Quiet))
		},
	}
}

// unmarshalConfig populates and validates the configuration from viper.
func unmarshalConfig(args []string, decrypt bool) (*config.Config, error) {
	var cfg config.Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Files = args
	cfg.Decrypt = decrypt

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
