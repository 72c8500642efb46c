package tokenizer

import (
	"bytes"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/blevesearch/vellum"
)

// DictEntry is one known word. Entries are immutable once the dictionary is
// built and are shared read-only across all lookups and tokenize calls.
type DictEntry struct {
	Surface  string
	LeftID   uint16
	RightID  uint16
	Cost     int16
	POS      string
	InflType string
	InflForm string
	BaseForm string
	Reading  string
	Phonetic string
}

// Match is one Lookup result: a dictionary entry whose surface form is a
// prefix of the probed text, together with the surface length in runes.
type Match struct {
	ID    int32
	Entry *DictEntry
	Len   int
}

// Dict bundles everything the tokenizer needs: the FST mapping surface forms
// to entry groups, the entries table, the connection cost matrix, character
// definitions, and per-category unknown-word entries. A Dict is read-only
// after construction and safe for concurrent use.
//
// Context class 0 is reserved for the sentence boundary: the lattice's BOS
// and EOS nodes carry class 0, so row and column 0 of the connection matrix
// hold the boundary transition costs and no entry should use class 0.
type Dict struct {
	fst     *vellum.FST
	fstData []byte
	entries []DictEntry
	// groups resolves an FST value to the ids of all entries sharing that
	// surface form, in insertion order.
	groups   [][]int32
	matrix   *ConnMatrix
	chars    *CharDefs
	unknowns map[string][]UnknownEntry
	// maxSurfaceLen bounds prefix probing, in runes.
	maxSurfaceLen int
}

// BuildDict constructs an in-memory dictionary from its raw parts. The FST is
// built directly into memory; use Save to produce the compiled on-disk form.
func BuildDict(entries []DictEntry, matrix [][]int16, chars *CharDefs, unknowns map[string][]UnknownEntry) (*Dict, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("dictionary entries are empty")
	}
	conn, err := NewConnMatrix(matrix)
	if err != nil {
		return nil, err
	}
	if chars == nil {
		return nil, fmt.Errorf("character definitions are missing")
	}
	if err := chars.Validate(); err != nil {
		return nil, err
	}
	if err := validateUnknowns(chars, unknowns, conn.Size()); err != nil {
		return nil, err
	}

	maxID := uint16(conn.Size() - 1)
	maxLen := 0
	for i, e := range entries {
		if e.Surface == "" {
			return nil, fmt.Errorf("entry %d has empty surface", i)
		}
		if e.LeftID > maxID || e.RightID > maxID {
			return nil, fmt.Errorf("entry %d (%q) has context class out of range (left=%d right=%d max=%d)",
				i, e.Surface, e.LeftID, e.RightID, maxID)
		}
		if n := utf8.RuneCountInString(e.Surface); n > maxLen {
			maxLen = n
		}
	}

	// Group entry ids by surface, preserving insertion order within a group.
	bySurface := make(map[string][]int32, len(entries))
	for i, e := range entries {
		bySurface[e.Surface] = append(bySurface[e.Surface], int32(i))
	}
	surfaces := make([]string, 0, len(bySurface))
	for s := range bySurface {
		surfaces = append(surfaces, s)
	}
	// vellum requires keys in byte order.
	sort.Strings(surfaces)

	var buf bytes.Buffer
	builder, err := vellum.New(&buf, nil)
	if err != nil {
		return nil, fmt.Errorf("create fst builder: %w", err)
	}
	groups := make([][]int32, 0, len(surfaces))
	for _, s := range surfaces {
		if err := builder.Insert([]byte(s), uint64(len(groups))); err != nil {
			return nil, fmt.Errorf("insert %q into fst: %w", s, err)
		}
		groups = append(groups, bySurface[s])
	}
	if err := builder.Close(); err != nil {
		return nil, fmt.Errorf("finish fst: %w", err)
	}
	fstData := buf.Bytes()
	fst, err := vellum.Load(fstData)
	if err != nil {
		return nil, fmt.Errorf("load built fst: %w", err)
	}

	return &Dict{
		fst:           fst,
		fstData:       fstData,
		entries:       entries,
		groups:        groups,
		matrix:        conn,
		chars:         chars,
		unknowns:      unknowns,
		maxSurfaceLen: maxLen,
	}, nil
}

func validateUnknowns(chars *CharDefs, unknowns map[string][]UnknownEntry, classes int) error {
	if len(unknowns[DefaultCategory]) == 0 {
		return fmt.Errorf("no unknown-word entries for %s category", DefaultCategory)
	}
	// Every category a rune can classify as must be able to synthesize a
	// candidate, or an unmatched rune of that category leaves a gap in the
	// lattice.
	for _, r := range chars.Ranges {
		if len(unknowns[r.Category]) == 0 {
			return fmt.Errorf("no unknown-word entries for category %q referenced by range %#U..%#U", r.Category, r.From, r.To)
		}
	}
	for cat, entries := range unknowns {
		if _, ok := chars.Categories[cat]; !ok {
			return fmt.Errorf("unknown-word entries reference undefined category %q", cat)
		}
		for i, e := range entries {
			if int(e.LeftID) >= classes || int(e.RightID) >= classes {
				return fmt.Errorf("unknown entry %d of category %q has context class out of range (left=%d right=%d classes=%d)",
					i, cat, e.LeftID, e.RightID, classes)
			}
		}
	}
	return nil
}

// Lookup returns every dictionary entry whose surface form is a prefix of
// text, shortest surface first, insertion order within equal surfaces. An
// empty result is not an error; it defers the position to unknown-word
// synthesis.
func (d *Dict) Lookup(text string) []Match {
	var matches []Match
	byteLen := 0
	runeLen := 0
	for _, r := range text {
		byteLen += utf8.RuneLen(r)
		runeLen++
		if runeLen > d.maxSurfaceLen {
			break
		}
		v, ok, _ := d.fst.Get([]byte(text[:byteLen]))
		if !ok {
			continue
		}
		for _, id := range d.groups[v] {
			matches = append(matches, Match{ID: id, Entry: &d.entries[id], Len: runeLen})
		}
	}
	return matches
}

// Connections returns the connection cost matrix loaded with this dictionary.
func (d *Dict) Connections() *ConnMatrix {
	return d.matrix
}

// CharDefs returns the character classification table.
func (d *Dict) CharDefs() *CharDefs {
	return d.chars
}

// UnknownEntries returns the unknown-word entries for a category, nil when
// the category has none.
func (d *Dict) UnknownEntries(category string) []UnknownEntry {
	return d.unknowns[category]
}

// Entry returns the entry with the given id.
func (d *Dict) Entry(id int32) *DictEntry {
	return &d.entries[id]
}

// EntryCount returns the number of entries in the dictionary.
func (d *Dict) EntryCount() int {
	return len(d.entries)
}

// MaxSurfaceLen returns the length of the longest surface form, in runes.
func (d *Dict) MaxSurfaceLen() int {
	return d.maxSurfaceLen
}

// Close releases FST resources. The dictionary must not be used afterwards.
func (d *Dict) Close() error {
	if d.fst != nil {
		err := d.fst.Close()
		d.fst = nil
		return err
	}
	return nil
}
