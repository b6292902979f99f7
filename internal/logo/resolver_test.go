package logo_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/tallycash/tokenlist-cli/internal/logo"
	"github.com/tallycash/tokenlist-cli/internal/tokenlist"
)

type fakeUploader struct {
	mu     sync.Mutex
	pinned map[string][]byte
	failOn string
}

func (f *fakeUploader) PinFile(ctx context.Context, name string, data []byte) (string, error) {
	if name == f.failOn {
		return "", errors.New("pin rejected")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pinned == nil {
		f.pinned = map[string][]byte{}
	}
	f.pinned[name] = data
	return "Qm" + name, nil
}

func token(symbol, logoURI string) tokenlist.Token {
	return tokenlist.Token{
		ChainID:  1,
		Address:  "0x6B175474E89094C44Da98b954EedeAC495271d0F",
		Symbol:   symbol,
		Name:     symbol,
		Decimals: 18,
		LogoURI:  logoURI,
	}
}

func TestResolveFallbackRewritesRelative(t *testing.T) {
	r := &logo.Resolver{BaseURL: "https://github.com/tallycash/token-list/raw/main"}
	in := []tokenlist.Token{token("DAI", "../logo.png")}
	out, err := r.Resolve(context.Background(), in)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := "https://github.com/tallycash/token-list/raw/main/logo.png"
	if out[0].LogoURI != want {
		t.Fatalf("logoURI = %q, want %q", out[0].LogoURI, want)
	}
	// Input untouched.
	if in[0].LogoURI != "../logo.png" {
		t.Fatalf("input mutated: %q", in[0].LogoURI)
	}
}

func TestResolveFallbackLeavesAbsoluteAndEmpty(t *testing.T) {
	r := &logo.Resolver{BaseURL: "https://example.com/assets"}
	in := []tokenlist.Token{
		token("USDC", "https://cdn.example.com/usdc.png"),
		token("BARE", ""),
	}
	out, err := r.Resolve(context.Background(), in)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if out[0].LogoURI != "https://cdn.example.com/usdc.png" {
		t.Fatalf("absolute logoURI rewritten: %q", out[0].LogoURI)
	}
	if out[1].LogoURI != "" {
		t.Fatalf("empty logoURI set: %q", out[1].LogoURI)
	}
}

func TestResolveUploadsLocalAssets(t *testing.T) {
	root := t.TempDir()
	tokensDir := filepath.Join(root, "tokens")
	if err := os.MkdirAll(tokensDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	asset := []byte("png-bytes")
	if err := os.WriteFile(filepath.Join(root, "dai.png"), asset, 0o644); err != nil {
		t.Fatalf("write asset: %v", err)
	}

	up := &fakeUploader{}
	r := &logo.Resolver{TokensDir: tokensDir, Uploader: up}
	in := []tokenlist.Token{
		token("DAI", "../dai.png"),
		token("BARE", ""),
		token("REMOTE", "https://cdn.example.com/usdc.png"),
	}
	out, err := r.Resolve(context.Background(), in)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if out[0].LogoURI != "ipfs://Qmdai.png" {
		t.Fatalf("logoURI = %q, want ipfs://Qmdai.png", out[0].LogoURI)
	}
	if !bytes.Equal(up.pinned["dai.png"], asset) {
		t.Fatalf("uploader did not receive asset bytes")
	}
	if out[1].LogoURI != "" {
		t.Fatalf("tokens without logo must stay without: %q", out[1].LogoURI)
	}
	if out[2].LogoURI != "https://cdn.example.com/usdc.png" {
		t.Fatalf("already-remote logo re-pinned: %q", out[2].LogoURI)
	}
}

func TestResolveUploadFailureAbortsBatch(t *testing.T) {
	root := t.TempDir()
	tokensDir := filepath.Join(root, "tokens")
	if err := os.MkdirAll(tokensDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"a.png", "b.png"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte(name), 0o644); err != nil {
			t.Fatalf("write asset: %v", err)
		}
	}

	up := &fakeUploader{failOn: "b.png"}
	r := &logo.Resolver{TokensDir: tokensDir, Uploader: up}
	in := []tokenlist.Token{
		token("A", "../a.png"),
		token("B", "../b.png"),
	}
	if _, err := r.Resolve(context.Background(), in); err == nil {
		t.Fatalf("expected batch failure when one upload fails")
	}
}

func TestResolveUploadMissingAssetFails(t *testing.T) {
	root := t.TempDir()
	tokensDir := filepath.Join(root, "tokens")
	if err := os.MkdirAll(tokensDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	r := &logo.Resolver{TokensDir: tokensDir, Uploader: &fakeUploader{}}
	if _, err := r.Resolve(context.Background(), []tokenlist.Token{token("X", "../missing.png")}); err == nil {
		t.Fatalf("expected error for missing local asset")
	}
}
