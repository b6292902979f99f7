package config_test

import (
	"path/filepath"
	"testing"

	"github.com/tallycash/tokenlist-cli/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.TokensDir != "tokens" {
		t.Fatalf("tokens_dir = %q, want tokens", c.TokensDir)
	}
	if c.TemplatePath != "base.json" {
		t.Fatalf("template_path = %q, want base.json", c.TemplatePath)
	}
	if c.OutputPath != filepath.Join("build", "tokenlist.json") {
		t.Fatalf("output_path = %q", c.OutputPath)
	}
	if c.LogoBaseURL != "https://github.com/tallycash/token-list/raw/main" {
		t.Fatalf("logo_base_url = %q", c.LogoBaseURL)
	}
	if c.Storage.Present() {
		t.Fatalf("credentials should be absent by default")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TOKENLIST_TOKENS_DIR", "alt-tokens")
	t.Setenv("TOKENLIST_OUTPUT_PATH", "out/list.json")
	c, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.TokensDir != "alt-tokens" {
		t.Fatalf("tokens_dir = %q, want alt-tokens", c.TokensDir)
	}
	if c.OutputPath != "out/list.json" {
		t.Fatalf("output_path = %q, want out/list.json", c.OutputPath)
	}
}

func TestCredentialsGate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PINATA_API_KEY", "key")
	t.Setenv("PINATA_SECRET_API_KEY", "secret")
	c, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !c.Storage.Present() {
		t.Fatalf("both variables set, expected Present")
	}
	if c.Storage.Partial() {
		t.Fatalf("both variables set, expected not Partial")
	}
}

func TestCredentialsHalfSet(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PINATA_API_KEY", "key")
	t.Setenv("PINATA_SECRET_API_KEY", "")
	c, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Storage.Present() {
		t.Fatalf("half-set credentials must count as absent")
	}
	if !c.Storage.Partial() {
		t.Fatalf("half-set credentials must report Partial")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	c, err := config.Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	c.TokensDir = "custom-tokens"
	if err := config.Save(c, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	back, err := config.Load(path)
	if err != nil {
		t.Fatalf("load back: %v", err)
	}
	if back.TokensDir != "custom-tokens" {
		t.Fatalf("tokens_dir = %q, want custom-tokens", back.TokensDir)
	}
}
