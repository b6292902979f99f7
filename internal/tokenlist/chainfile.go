package tokenlist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

// chainFilePattern: one or more digits followed by ".json".
var chainFilePattern = regexp.MustCompile(`^([0-9]+)\.json$`)

// ChainFile is a discovered per-chain token file whose name encodes
// its chain identifier.
type ChainFile struct {
	Path    string
	ChainID int
}

// CollectChainFiles validates every candidate filename and returns
// the set ordered by ascending numeric chain id, independent of
// discovery order ("9" sorts before "10"). Any name that does not
// encode a positive integer chain id is a DataError: the whole run
// aborts, no partial results.
func CollectChainFiles(paths []string) ([]ChainFile, error) {
	files := make([]ChainFile, 0, len(paths))
	for _, p := range paths {
		m := chainFilePattern.FindStringSubmatch(filepath.Base(p))
		if m == nil {
			return nil, dataErrf(p, "chain file name must be <chainId>.json")
		}
		id, err := strconv.Atoi(m[1])
		if err != nil || id <= 0 {
			return nil, dataErrf(p, "chain id must be a positive integer")
		}
		files = append(files, ChainFile{Path: p, ChainID: id})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].ChainID < files[j].ChainID })
	return files, nil
}

// ParseChainFile reads a chain file as a JSON array of token records,
// requires a non-empty address on every record, and stamps each with
// the file's chain id, overriding any chainId the record carried.
// Record order within the file is preserved.
func ParseChainFile(f ChainFile) ([]Token, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read chain file: %w", err)
	}
	var records []Token
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, dataErrf(f.Path, "parse chain file: %v", err)
	}
	out := make([]Token, len(records))
	for i, rec := range records {
		if rec.Address == "" {
			return nil, dataErrf(f.Path, "record %d has no address", i)
		}
		rec.ChainID = f.ChainID
		out[i] = rec
	}
	return out, nil
}
