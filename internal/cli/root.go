// Package cli builds the jade-signer command tree: persistent
// --base-path/-v/-V flags plus the server subcommand, following the
// teacher's cobra+viper pairing (the original internal/cli package's
// root command), generalized from HD-wallet demo commands to the
// offline signer's own surface (spec.md §6, SPEC_FULL.md §10.2).
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version, GitCommit, and BuildTime are overridden via -ldflags at
// release build time (SPEC_FULL.md §12's "-V/--version and build
// metadata").
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	basePath  string
	verbosity int
	showVer   bool
)

var rootCmd = &cobra.Command{
	Use:   "jade-signer",
	Short: "Jade Signer — offline EVM key custody and transaction signer",
	Long: `Jade Signer generates, imports, stores, and uses secp256k1 private keys to
sign raw transactions, messages, and EIP-712 typed data for EVM-compatible
chains. It never connects to a blockchain node: every key lives on disk as
a passphrase-encrypted Web3 Secret Storage v3 keyfile, optionally derived
from a BIP-39 mnemonic via a BIP-32 HD path.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if showVer {
			fmt.Printf("jade-signer %s (commit %s, built %s)\n", Version, GitCommit, BuildTime)
			os.Exit(0)
		}
		return nil
	},
	// A runnable root lets cobra reach PersistentPreRunE for a bare
	// "jade-signer -V"; with no subcommand it prints help.
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the command tree; cmd/jade-signer's main calls this.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&basePath, "base-path", defaultBasePath(), "base directory for chain-tagged keystores")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v debug, -vv trace)")
	rootCmd.PersistentFlags().BoolVarP(&showVer, "version", "V", false, "print version information and exit")

	_ = viper.BindPFlag("base-path", rootCmd.PersistentFlags().Lookup("base-path"))
	viper.SetEnvPrefix("jade_signer")
	viper.AutomaticEnv()
}

func defaultBasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".jade-signer"
	}
	return filepath.Join(home, ".jade-signer")
}
