// Package tokenlist implements the deterministic merge of per-chain
// token files into a single schema-validated token-list document.
package tokenlist

// Token is one entry of the aggregated list. Address presence is
// enforced at ingestion; everything else is the schema's job.
// Duplicates are not deduplicated; they pass through unchanged.
type Token struct {
	ChainID  int    `json:"chainId"`
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`
	LogoURI  string `json:"logoURI,omitempty"`
}
