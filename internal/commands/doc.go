// Package commands provides the command-line interface for the cascade tool.
//
// It implements commands for:
//   - encryption
//   - decryption
//   - key generation
//   - pattern checking
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands
