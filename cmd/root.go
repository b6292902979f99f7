package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/tallycash/tokenlist-cli/internal/config"
	"github.com/tallycash/tokenlist-cli/internal/tokenlist"
)

// sysexits-style exit statuses. 64 and 66 are reserved for usage and
// missing-input errors; 66 is used when the token directory itself is
// missing, everything unclassified exits 1.
const (
	exitUsage   = 64
	exitData    = 65
	exitNoInput = 66
)

var (
	// Global flags
	cfgFile string
	quiet   bool

	// Loaded configuration
	cfg *cfgpkg.Config
)

var rootCmd = &cobra.Command{
	Use:   "tokenlist",
	Short: "Build the Tally Ho token list from per-chain token files",
	Long: `tokenlist aggregates a directory of <chainId>.json token files into a
single schema-validated token-list document, optionally pinning logos
and the final artifact to content-addressed storage.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

// Execute is the entry point called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(exitCodeFor(err))
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.tokenlist/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress progress narration")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands that need config fail on their own.
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
	if cfg.Storage.Partial() {
		fmt.Fprintln(os.Stderr, "⚠ Warning: only one of PINATA_API_KEY / PINATA_SECRET_API_KEY is set; uploads disabled")
	}
}

// exitCodeFor classifies an error into an exit status using error
// types, never string matching.
func exitCodeFor(err error) int {
	var de *tokenlist.DataError
	if errors.As(err, &de) {
		return exitData
	}
	if errors.Is(err, fs.ErrNotExist) {
		return exitNoInput
	}
	return 1
}
