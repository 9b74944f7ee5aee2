package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

// NewKeygenCommand creates the keygen subcommand, printing a fresh random
// 32-byte key as hex, suitable for --key-hex.
func NewKeygenCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "keygen",
		Aliases: []string{"gen"},
		Short:   "Generate a new encryption key",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			key := make([]byte, 32)
			if _, err := rand.Read(key); err != nil {
				return fmt.Errorf("generating key: %w", err)
			}

			fmt.Println(hex.EncodeToString(key)) //nolint:forbidigo

			return nil
		},
	}
}
