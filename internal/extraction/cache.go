package extraction

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Cache persists extraction documents as one JSON artifact per docID
// under a directory. Writes go through a temp file and rename so a
// crashed run never leaves a partial artifact behind.
type Cache struct {
	dir string
}

func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Save writes the artifact for docID atomically.
func (c *Cache) Save(docID string, doc *Document) error {
	path, err := c.path(docID)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, "."+docID+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("publish artifact: %w", err)
	}
	return nil
}

// Load reads the artifact for docID. os.IsNotExist applies to the
// wrapped error when the document was never extracted.
func (c *Cache) Load(docID string) (*Document, error) {
	path, err := c.path(docID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", docID, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", docID, err)
	}
	return &doc, nil
}

// List returns the docIDs of every stored artifact, sorted.
func (c *Cache) List() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("list cache dir: %w", err)
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes the artifact for docID.
func (c *Cache) Delete(docID string) error {
	path, err := c.path(docID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete artifact %s: %w", docID, err)
	}
	return nil
}

// Exists reports whether an artifact is stored for docID.
func (c *Cache) Exists(docID string) bool {
	path, err := c.path(docID)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func (c *Cache) path(docID string) (string, error) {
	if docID == "" || !isSafeID(docID) {
		return "", fmt.Errorf("invalid doc id %q", docID)
	}
	return filepath.Join(c.dir, docID+".json"), nil
}

func isSafeID(id string) bool {
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
