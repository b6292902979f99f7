package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	cfgpkg "github.com/tallycash/tokenlist-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set tokenlist configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("tokens_dir: %s\n", cfg.TokensDir)
		fmt.Printf("template_path: %s\n", cfg.TemplatePath)
		fmt.Printf("manifest_path: %s\n", cfg.ManifestPath)
		fmt.Printf("output_path: %s\n", cfg.OutputPath)
		fmt.Printf("logo_base_url: %s\n", cfg.LogoBaseURL)
		fmt.Printf("storage_endpoint: %s\n", cfg.StorageEndpoint)
		fmt.Printf("storage_api_key: %s\n", mask(cfg.Storage.APIKey))
		fmt.Printf("storage_api_secret: %s\n", mask(cfg.Storage.APISecret))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "tokens_dir":
			cfg.TokensDir = val
		case "template_path":
			cfg.TemplatePath = val
		case "manifest_path":
			cfg.ManifestPath = val
		case "output_path":
			cfg.OutputPath = val
		case "logo_base_url":
			cfg.LogoBaseURL = val
		case "storage_endpoint":
			cfg.StorageEndpoint = val
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s\n", key)
		return nil
	},
}

func mask(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + "****" + s[len(s)-2:]
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
