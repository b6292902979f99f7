// Package logo rewrites token logo references for the final list:
// either to content-addressed URIs via upload, or to a static
// fallback host. The two branches are mutually exclusive per run.
package logo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tallycash/tokenlist-cli/internal/tokenlist"
)

// Uploader pins bytes to content-addressed storage and returns the
// resulting content address.
type Uploader interface {
	PinFile(ctx context.Context, name string, data []byte) (string, error)
}

// Resolver rewrites logo references on aggregated token records.
// With an Uploader set, local assets are read and pinned; without
// one, ../-relative references are rewritten against BaseURL.
type Resolver struct {
	TokensDir string // directory the chain files live in; ../-relative logos resolve against it
	BaseURL   string
	Uploader  Uploader
}

// Resolve returns a new record slice with logo references rewritten.
// The input is never mutated. Records without a logo reference keep
// no logo reference. In upload mode any single failure aborts the
// whole batch.
func (r *Resolver) Resolve(ctx context.Context, tokens []tokenlist.Token) ([]tokenlist.Token, error) {
	out := make([]tokenlist.Token, len(tokens))
	copy(out, tokens)
	if r.Uploader == nil {
		base := strings.TrimRight(r.BaseURL, "/")
		for i := range out {
			if rest, ok := strings.CutPrefix(out[i].LogoURI, "../"); ok {
				out[i].LogoURI = base + "/" + rest
			}
		}
		return out, nil
	}

	// Fire all uploads, await all. Each goroutine owns exactly one
	// slice index, so there is no shared mutable state; the first
	// error cancels the group and fails the run.
	g, ctx := errgroup.WithContext(ctx)
	for i := range out {
		uri := out[i].LogoURI
		if uri == "" || isRemote(uri) {
			continue
		}
		i := i
		g.Go(func() error {
			local := filepath.Join(r.TokensDir, filepath.FromSlash(uri))
			data, err := os.ReadFile(local)
			if err != nil {
				return fmt.Errorf("read logo asset: %w", err)
			}
			addr, err := r.Uploader.PinFile(ctx, filepath.Base(local), data)
			if err != nil {
				return fmt.Errorf("pin logo %s: %w", filepath.Base(local), err)
			}
			out[i].LogoURI = "ipfs://" + addr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func isRemote(uri string) bool {
	return strings.HasPrefix(uri, "http://") ||
		strings.HasPrefix(uri, "https://") ||
		strings.HasPrefix(uri, "ipfs://")
}
