package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tallycash/tokenlist-cli/internal/tokenlist"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate an existing token-list document against the schema",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if cfg != nil {
			path = cfg.OutputPath
		}
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("no token list path given and no configuration loaded")
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read token list: %w", err)
		}
		if err := tokenlist.ValidateBytes(b); err != nil {
			reportViolations(err)
			return err
		}
		fmt.Printf("✓ %s is a valid token list\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
