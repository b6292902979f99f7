package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tallycash/tokenlist-cli/internal/logo"
	"github.com/tallycash/tokenlist-cli/internal/storage"
	"github.com/tallycash/tokenlist-cli/internal/tokenlist"
	"github.com/tallycash/tokenlist-cli/internal/utils"
)

var incrementVersion bool

func init() {
	rootCmd.Flags().BoolVar(&incrementVersion, "increment", false, "bump the template's minor version (patch resets to 0) before assembly")
}

// runBuild is the whole pipeline, top to bottom: discover, validate
// names, order by chain id, parse and tag, resolve logos, optionally
// bump the version, assemble, schema-validate, publish.
func runBuild(cmd *cobra.Command, args []string) error {
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}
	runID := uuid.NewString()
	if !quiet {
		fmt.Printf("Build ID: %s\n", runID)
	}

	if _, err := os.Stat(cfg.TokensDir); err != nil {
		return fmt.Errorf("token directory %s: %w", cfg.TokensDir, err)
	}
	// Only .json files are build candidates; stray files like
	// .gitkeep or READMEs are not the filename validator's problem.
	paths, err := filepath.Glob(filepath.Join(cfg.TokensDir, "*.json"))
	if err != nil {
		return fmt.Errorf("discover chain files: %w", err)
	}

	files, err := tokenlist.CollectChainFiles(paths)
	if err != nil {
		return err
	}

	var tokens []tokenlist.Token
	for i, f := range files {
		if !quiet {
			fmt.Printf("[%d/%d] Reading %s (chain %d)...\n", i+1, len(files), filepath.Base(f.Path), f.ChainID)
		}
		recs, err := tokenlist.ParseChainFile(f)
		if err != nil {
			return err
		}
		tokens = append(tokens, recs...)
	}

	var client *storage.Client
	resolver := &logo.Resolver{TokensDir: cfg.TokensDir, BaseURL: cfg.LogoBaseURL}
	if cfg.Storage.Present() {
		client = storage.NewClient(cfg.StorageEndpoint, cfg.Storage.APIKey, cfg.Storage.APISecret)
		resolver.Uploader = client
		if !quiet {
			fmt.Println("⚙ Storage credentials found, pinning logo assets...")
		}
	}
	tokens, err = resolver.Resolve(cmd.Context(), tokens)
	if err != nil {
		return err
	}

	tmpl, err := tokenlist.LoadTemplate(cfg.TemplatePath)
	if err != nil {
		return err
	}
	if incrementVersion {
		next := tmpl.Bump(time.Now())
		if err := next.Save(cfg.TemplatePath); err != nil {
			return fmt.Errorf("persist template: %w", err)
		}
		if err := tokenlist.SyncManifestVersion(cfg.ManifestPath, next.Version); err != nil {
			return err
		}
		if !quiet {
			fmt.Printf("✓ Version bumped %s → %s\n", tmpl.Version, next.Version)
		}
		tmpl = next
	}

	doc := tokenlist.Assemble(tmpl, tokens)
	if err := tokenlist.ValidateDocument(doc); err != nil {
		reportViolations(err)
		return err
	}

	data, err := doc.Encode()
	if err != nil {
		return err
	}
	if err := utils.WriteFileMkdir(cfg.OutputPath, data); err != nil {
		return fmt.Errorf("write token list: %w", err)
	}
	if !quiet {
		fmt.Printf("✓ Wrote %s (%d tokens, version %s)\n", cfg.OutputPath, len(tokens), tmpl.Version)
	}

	if client != nil {
		addr, err := client.PinFile(cmd.Context(), filepath.Base(cfg.OutputPath), data)
		if err != nil {
			return fmt.Errorf("publish token list: %w", err)
		}
		fmt.Printf("✓ Pinned token list: %s\n", addr)
	}
	return nil
}

// reportViolations prints the full violation set to stderr before the
// run aborts; anything that is not a schema error is left to the
// caller's normal error path.
func reportViolations(err error) {
	var se *tokenlist.SchemaError
	if !errors.As(err, &se) {
		return
	}
	fmt.Fprintf(os.Stderr, "✗ Token list failed schema validation (%d violations):\n", len(se.Violations))
	for _, v := range se.Violations {
		fmt.Fprintf(os.Stderr, "  - %s\n", v)
	}
}
