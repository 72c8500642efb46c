package tokenizer

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/blevesearch/vellum"
)

// Compiled dictionary package layout. The package is an opaque, versioned,
// load-once artifact produced by Save (or by external dictionary-compilation
// tooling emitting the same format).
const (
	metaFile    = "meta.bin"
	fstFile     = "dict.fst"
	entriesFile = "entries.bin"
	groupsFile  = "groups.bin"
	connFile    = "conn.bin"
	charFile    = "chardef.bin"
	unknownFile = "unknown.bin"
)

// formatVersion tags the on-disk layout. Load rejects any other version.
const formatVersion = 1

const dictMagic = "jptok-dict"

type dictMeta struct {
	Magic   string
	Version int
	// Structural sizes, cross-checked against the decoded tables.
	Entries int
	Groups  int
	Classes int
}

type connData struct {
	Size  int
	Costs []int16
}

// Load reads a compiled dictionary package from dir. All data is brought
// fully into memory; the returned Dict is immutable and ready for concurrent
// use. Any structural or version inconsistency fails with a *LoadError.
func Load(dir string) (*Dict, error) {
	var meta dictMeta
	if err := readGob(dir, metaFile, &meta); err != nil {
		return nil, err
	}
	if meta.Magic != dictMagic {
		return nil, &LoadError{Path: dir, Reason: fmt.Sprintf("not a compiled dictionary (magic %q)", meta.Magic)}
	}
	if meta.Version != formatVersion {
		return nil, &LoadError{Path: dir, Reason: fmt.Sprintf("unsupported format version %d, want %d", meta.Version, formatVersion)}
	}

	var entries []DictEntry
	if err := readGob(dir, entriesFile, &entries); err != nil {
		return nil, err
	}
	var groups [][]int32
	if err := readGob(dir, groupsFile, &groups); err != nil {
		return nil, err
	}
	var conn connData
	if err := readGob(dir, connFile, &conn); err != nil {
		return nil, err
	}
	var chars CharDefs
	if err := readGob(dir, charFile, &chars); err != nil {
		return nil, err
	}
	var unknowns map[string][]UnknownEntry
	if err := readGob(dir, unknownFile, &unknowns); err != nil {
		return nil, err
	}

	fstData, err := os.ReadFile(filepath.Join(dir, fstFile))
	if err != nil {
		return nil, &LoadError{Path: dir, Reason: "read " + fstFile, Err: err}
	}
	fst, err := vellum.Load(fstData)
	if err != nil {
		return nil, &LoadError{Path: dir, Reason: "parse " + fstFile, Err: err}
	}

	d := &Dict{
		fst:      fst,
		fstData:  fstData,
		entries:  entries,
		groups:   groups,
		matrix:   &ConnMatrix{size: conn.Size, costs: conn.Costs},
		chars:    &chars,
		unknowns: unknowns,
	}
	if err := validateLoaded(d, meta); err != nil {
		return nil, &LoadError{Path: dir, Reason: "inconsistent dictionary data", Err: err}
	}
	for _, e := range entries {
		if n := utf8.RuneCountInString(e.Surface); n > d.maxSurfaceLen {
			d.maxSurfaceLen = n
		}
	}
	return d, nil
}

func validateLoaded(d *Dict, meta dictMeta) error {
	if len(d.entries) == 0 {
		return fmt.Errorf("dictionary entries are empty")
	}
	if len(d.entries) != meta.Entries {
		return fmt.Errorf("entry count %d does not match metadata %d", len(d.entries), meta.Entries)
	}
	if len(d.groups) != meta.Groups {
		return fmt.Errorf("group count %d does not match metadata %d", len(d.groups), meta.Groups)
	}
	if d.matrix.size != meta.Classes {
		return fmt.Errorf("connection matrix size %d does not match metadata %d", d.matrix.size, meta.Classes)
	}
	if d.matrix.size <= 0 || len(d.matrix.costs) != d.matrix.size*d.matrix.size {
		return fmt.Errorf("connection matrix is not square (%d costs for %d classes)", len(d.matrix.costs), d.matrix.size)
	}
	if err := d.chars.Validate(); err != nil {
		return err
	}
	if err := validateUnknowns(d.chars, d.unknowns, d.matrix.size); err != nil {
		return err
	}
	maxID := uint16(d.matrix.size - 1)
	for i, e := range d.entries {
		if e.Surface == "" {
			return fmt.Errorf("entry %d has empty surface", i)
		}
		if e.LeftID > maxID || e.RightID > maxID {
			return fmt.Errorf("entry %d (%q) has context class out of range", i, e.Surface)
		}
	}
	for gi, g := range d.groups {
		if len(g) == 0 {
			return fmt.Errorf("surface group %d is empty", gi)
		}
		for _, id := range g {
			if id < 0 || int(id) >= len(d.entries) {
				return fmt.Errorf("surface group %d references entry %d out of range", gi, id)
			}
		}
	}
	return validateFST(d.fst, len(d.groups))
}

// validateFST walks every key of the loaded FST and checks its value against
// the groups table. A well-formed FST from a different package would
// otherwise pass all the table checks and blow up on the first lookup.
func validateFST(fst *vellum.FST, groups int) error {
	keys := 0
	itr, err := fst.Iterator(nil, nil)
	for err == nil {
		key, v := itr.Current()
		if v >= uint64(groups) {
			return fmt.Errorf("fst maps %q to surface group %d, have %d groups", key, v, groups)
		}
		keys++
		err = itr.Next()
	}
	if err != vellum.ErrIteratorDone {
		return fmt.Errorf("walk fst: %w", err)
	}
	if keys != groups {
		return fmt.Errorf("fst has %d keys for %d surface groups", keys, groups)
	}
	return nil
}

// Save writes the compiled dictionary package to dir, creating it if needed.
// Load(dir) reproduces this dictionary exactly.
func (d *Dict) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dictionary dir: %w", err)
	}
	meta := dictMeta{
		Magic:   dictMagic,
		Version: formatVersion,
		Entries: len(d.entries),
		Groups:  len(d.groups),
		Classes: d.matrix.size,
	}
	if err := writeGob(dir, metaFile, meta); err != nil {
		return err
	}
	if err := writeGob(dir, entriesFile, d.entries); err != nil {
		return err
	}
	if err := writeGob(dir, groupsFile, d.groups); err != nil {
		return err
	}
	if err := writeGob(dir, connFile, connData{Size: d.matrix.size, Costs: d.matrix.costs}); err != nil {
		return err
	}
	if err := writeGob(dir, charFile, d.chars); err != nil {
		return err
	}
	if err := writeGob(dir, unknownFile, d.unknowns); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, fstFile), d.fstData, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fstFile, err)
	}
	return nil
}

func readGob(dir, name string, v any) error {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return &LoadError{Path: dir, Reason: "open " + name, Err: err}
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return &LoadError{Path: dir, Reason: "decode " + name, Err: err}
	}
	return nil
}

func writeGob(dir, name string, v any) error {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := gob.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return f.Close()
}
