package commands

import (
	"github.com/spf13/cobra"

	"github.com/frodlund/cascade/internal/logger"
	"github.com/frodlund/cascade/internal/logic"
)

// NewDecryptCommand creates the decrypt subcommand.
func NewDecryptCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "decrypt [flags] files...",
		Aliases: []string{"dec"},
		Short:   "Decrypt files",
		Args:    cobra.MinimumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(cmd)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := unmarshalConfig(args, true)
			if err != nil {
				return err
			}

			return logic.Run(cfg, logger.New(cfg.Quiet))
		},
	}
}
