package collect

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed is a snapshot of every source, loaded from a YAML or JSON file.
type Seed struct {
	Documents   []map[string]any `yaml:"documents" json:"documents"`
	Collections []Collection     `yaml:"collections" json:"collections"`
	Bookmarks   []Bookmark       `yaml:"bookmarks" json:"bookmarks"`
	Content     []Content        `yaml:"content" json:"content"`
}

// LoadSeed reads a seed file. JSON input is accepted as YAML.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}
	return &seed, nil
}

// Apply populates the index from seed. Content goes first so collections
// and explicit documents merge on top of it, and bookmarks last so they
// only fill URLs nothing else knows.
func (c *Collector) Apply(seed *Seed) error {
	store := NewStore()
	for _, col := range seed.Collections {
		if err := store.Put(col); err != nil {
			return fmt.Errorf("seed collection %q: %w", col.Name, err)
		}
	}

	if _, err := c.IndexContent(seed.Content, store.ContainsURL); err != nil {
		return err
	}
	if _, err := c.IndexCollections(store.List()); err != nil {
		return err
	}
	for i, raw := range seed.Documents {
		if err := c.ix.Upsert(raw); err != nil {
			return fmt.Errorf("seed document %d: %w", i, err)
		}
	}
	if _, err := c.IndexBookmarks(seed.Bookmarks); err != nil {
		return err
	}

	c.logger.Info("seed applied",
		"documents", c.ix.Len(),
		"collections", len(seed.Collections),
		"bookmarks", len(seed.Bookmarks),
		"content", len(seed.Content))
	return nil
}
