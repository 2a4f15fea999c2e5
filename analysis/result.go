// Package analysis holds the results of morphological analysis, and caches them by
// word id.
package analysis

import (
	"fmt"
	"strings"

	"github.com/philpearl/intmap"
	"github.com/pkg/errors"
)

// DictionaryItem is the lexicon entry an analysis was derived from
type DictionaryItem struct {
	ID         string
	Lemma      string
	PrimaryPos string
}

func (d DictionaryItem) String() string {
	return d.Lemma + " [" + d.PrimaryPos + "]"
}

// MorphemeSurfaceForm is a morpheme together with the text it produced in the word
type MorphemeSurfaceForm struct {
	Morpheme string
	Surface  string
}

func (m MorphemeSurfaceForm) String() string {
	if m.Surface == "" {
		return m.Morpheme
	}
	return m.Surface + ":" + m.Morpheme
}

// AnalysisResult is one possible analysis of a word
type AnalysisResult struct {
	DictionaryItem DictionaryItem
	Root           string
	Morphemes      []MorphemeSurfaceForm
}

func (r AnalysisResult) String() string {
	parts := make([]string, len(r.Morphemes))
	for i, m := range r.Morphemes {
		parts[i] = m.String()
	}
	return fmt.Sprintf("AnalysisResult{dictionaryItem=%s, root='%s', morphemes=[%s]}", r.DictionaryItem, r.Root, strings.Join(parts, ", "))
}

// Cache stores the analyses of words keyed by word id. It is not safe for concurrent
// use.
type Cache struct {
	m *intmap.IntMap[[]AnalysisResult]
}

// NewCache creates a cache sized for about cap words
func NewCache(cap int) (*Cache, error) {
	m, err := intmap.NewWithCapacity[[]AnalysisResult](cap)
	if err != nil {
		return nil, errors.Wrap(err, "analysis cache")
	}
	return &Cache{m: m}, nil
}

// Add appends results to those already cached for wordID
func (c *Cache) Add(wordID int32, results ...AnalysisResult) error {
	existing, _ := c.m.Get(wordID)
	if _, _, err := c.m.Put(wordID, append(existing, results...)); err != nil {
		return errors.Wrapf(err, "caching analyses of word %d", wordID)
	}
	return nil
}

// Lookup returns the cached analyses of wordID. ok is false if the word has never
// been added.
func (c *Cache) Lookup(wordID int32) (results []AnalysisResult, ok bool) {
	return c.m.Get(wordID)
}

// Len returns the number of words cached
func (c *Cache) Len() int {
	return c.m.Len()
}
