package commands

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand creates the root command with the flags shared by all
// subcommands.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "cascade [flags] command [flags]",
		Short: "Chained file encryption utility",
		Long: `A file encryption utility that chains one or more AES stages (CBC, CTR, GCM),
each independently keyed, applied in order for encryption and in reverse for
decryption. Provides commands for key generation, encryption and decryption.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()

	flags.StringArrayP("key", "k", nil, "Key spec '[ALG:]passphrase' (repeatable; order defines the chain)")
	flags.StringArray("key-hex", nil, "Raw key spec '[ALG:]hex' (repeatable)")
	flags.StringP("key-file", "f", "", "Path to a file with one key spec per line")
	flags.IntP("times", "t", 1, "Apply a single key this many times (layered encryption)")
	flags.String("coder", "base64", "Cipher text coder for --armor: base64 or base64url")
	flags.BoolP("armor", "a", false, "Write/read ciphertext as printable text")

	flags.IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.Bool("delete", false, "Delete the original file after successful processing")
	flags.Bool("stats", false, "Print processing statistics")
	flags.Bool("dry", false, "Preview what would be processed without writing")
	flags.Bool("preserve-timestamps", false, "Carry the source modification time over to the output")

	flags.String("encrypt-ext", ".enc", "Suffix to append to encrypted files")
	flags.String("decrypt-ext", "", "Suffix to append to decrypted files, after stripping the encrypted suffix")

	flags.StringArray("include", nil, "Include glob pattern (repeatable)")
	flags.StringArray("exclude", nil, "Exclude glob pattern (repeatable)")
	flags.String("include-from", "", "JSONC file with include patterns")
	flags.String("exclude-from", "", "JSONC file with exclude patterns")

	root.AddCommand(
		NewEncryptCommand(),
		NewDecryptCommand(),
		NewKeygenCommand(),
		NewCheckCommand(),
	)

	return root
}

// bindFlags wires environment variables (CASCADE_*) and flags into viper.
// Bound in each subcommand so inherited persistent flags are included.
func bindFlags(cmd *cobra.Command) error {
	viper.SetEnvPrefix("CASCADE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}

	return viper.BindPFlags(cmd.Flags())
}
