package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/frodlund/cascade/internal/config"
	"github.com/frodlund/cascade/internal/logger"
	"github.com/frodlund/cascade/internal/logic"
)

// NewCheckCommand creates the check subcommand, validating that every
// include/exclude pattern matches at least one file.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [flags] [paths...]",
		Short: "Validate that include/exclude patterns match files",
		Args:  cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(cmd)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			var cfg config.Config

			if err := viper.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("parsing config: %w", err)
			}

			if len(args) == 0 {
				args = []string{"."}
			}

			cfg.Files = args

			return logic.RunCheck(&cfg, logger.New(cfg.Quiet))
		},
	}
}
