package tokenlist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/tallycash/tokenlist-cli/internal/utils"
)

// timestampFormat is RFC 3339 with millisecond resolution, so bumps
// inside the same second still produce strictly increasing timestamps.
const timestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Version is the token list's three-component version.
type Version struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Patch int `json:"patch"`
}

// Bump returns the successor version: minor incremented, patch reset,
// major untouched. Pure; the receiver is not modified.
func (v Version) Bump() Version {
	return Version{Major: v.Major, Minor: v.Minor + 1, Patch: 0}
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Template is the list's metadata document. It is merged with the
// aggregated token array at assembly; field order here fixes the
// field order of the serialized artifact. The template may carry
// arbitrary metadata beyond the known fields; those are preserved
// verbatim in Extra so they flow into the document and survive the
// in-place rewrite on a version bump.
type Template struct {
	Name      string
	Timestamp string
	Version   Version
	Keywords  []string
	LogoURI   string
	Extra     map[string]json.RawMessage
}

// templateFields is the typed head shared by Template and Document.
type templateFields struct {
	Name      string   `json:"name"`
	Timestamp string   `json:"timestamp"`
	Version   Version  `json:"version"`
	Keywords  []string `json:"keywords,omitempty"`
	LogoURI   string   `json:"logoURI,omitempty"`
}

var knownTemplateKeys = []string{"name", "timestamp", "version", "keywords", "logoURI"}

func (t *Template) UnmarshalJSON(b []byte) error {
	var f templateFields
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	extra, err := extraFields(b, knownTemplateKeys)
	if err != nil {
		return err
	}
	*t = Template{
		Name:      f.Name,
		Timestamp: f.Timestamp,
		Version:   f.Version,
		Keywords:  f.Keywords,
		LogoURI:   f.LogoURI,
		Extra:     extra,
	}
	return nil
}

func (t *Template) MarshalJSON() ([]byte, error) {
	head, err := json.Marshal(templateFields{
		Name:      t.Name,
		Timestamp: t.Timestamp,
		Version:   t.Version,
		Keywords:  t.Keywords,
		LogoURI:   t.LogoURI,
	})
	if err != nil {
		return nil, err
	}
	return spliceExtra(head, t.Extra)
}

// extraFields collects every key of a JSON object not in known,
// preserving the raw values verbatim.
func extraFields(b []byte, known []string) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(raw, k)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// spliceExtra appends extra fields, sorted by key for deterministic
// output, to an already-marshaled JSON object.
func spliceExtra(obj []byte, extra map[string]json.RawMessage) ([]byte, error) {
	if len(extra) == 0 {
		return obj, nil
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(obj[:len(obj)-1]) // drop closing brace
	for _, k := range keys {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// LoadTemplate reads the template document. A malformed template is
// an input shape error, same as a malformed chain file.
func LoadTemplate(path string) (*Template, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	var t Template
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, dataErrf(path, "parse template: %v", err)
	}
	return &t, nil
}

// Save persists the template with the artifact's serialization rules
// (two-space indent, atomic write).
func (t *Template) Save(path string) error {
	data, err := utils.PrettyJSON(t)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(path, data)
}

// Bump returns a copy of the template carrying the successor version
// and a fresh timestamp. Copy-and-replace: the receiver is untouched,
// so the pre-bump template stays valid until the new one is persisted.
func (t *Template) Bump(now time.Time) *Template {
	next := *t
	next.Version = t.Version.Bump()
	next.Timestamp = now.UTC().Format(timestampFormat)
	return &next
}

// SyncManifestVersion rewrites the manifest's version string in
// place. Only the version key is touched; every other field of the
// package-manifest-like file is preserved.
func SyncManifestVersion(path string, v Version) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return dataErrf(path, "parse manifest: %v", err)
	}
	vb, err := json.Marshal(v.String())
	if err != nil {
		return fmt.Errorf("encode version: %w", err)
	}
	m["version"] = vb
	data, err := utils.PrettyJSON(m)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(path, data)
}
