package tokenlist

import (
	"bytes"
	"encoding/json"

	"github.com/tallycash/tokenlist-cli/internal/utils"
)

// Document is the final token-list artifact: the template's metadata
// fields plus the aggregated token array. Template fields win for
// everything except Tokens; extra template metadata is carried
// through verbatim.
type Document struct {
	Name      string
	Timestamp string
	Version   Version
	Keywords  []string
	LogoURI   string
	Extra     map[string]json.RawMessage
	Tokens    []Token
}

var knownDocumentKeys = []string{"name", "timestamp", "version", "keywords", "logoURI", "tokens"}

func (d *Document) UnmarshalJSON(b []byte) error {
	var f struct {
		templateFields
		Tokens []Token `json:"tokens"`
	}
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	extra, err := extraFields(b, knownDocumentKeys)
	if err != nil {
		return err
	}
	*d = Document{
		Name:      f.Name,
		Timestamp: f.Timestamp,
		Version:   f.Version,
		Keywords:  f.Keywords,
		LogoURI:   f.LogoURI,
		Extra:     extra,
		Tokens:    f.Tokens,
	}
	return nil
}

// MarshalJSON serializes the known metadata head, then extra template
// fields, then the token array last.
func (d *Document) MarshalJSON() ([]byte, error) {
	head, err := json.Marshal(templateFields{
		Name:      d.Name,
		Timestamp: d.Timestamp,
		Version:   d.Version,
		Keywords:  d.Keywords,
		LogoURI:   d.LogoURI,
	})
	if err != nil {
		return nil, err
	}
	head, err = spliceExtra(head, d.Extra)
	if err != nil {
		return nil, err
	}
	toks, err := json.Marshal(d.Tokens)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Write(head[:len(head)-1])
	buf.WriteString(`,"tokens":`)
	buf.Write(toks)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Assemble merges template and token array into a new candidate
// document. Neither input is mutated.
func Assemble(t *Template, tokens []Token) *Document {
	return &Document{
		Name:      t.Name,
		Timestamp: t.Timestamp,
		Version:   t.Version,
		Keywords:  t.Keywords,
		LogoURI:   t.LogoURI,
		Extra:     t.Extra,
		Tokens:    tokens,
	}
}

// Encode serializes the document with stable field order and
// two-space indentation. Identical inputs encode byte-identically.
func (d *Document) Encode() ([]byte, error) {
	return utils.PrettyJSON(d)
}
