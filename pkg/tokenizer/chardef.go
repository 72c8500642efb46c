package tokenizer

import "fmt"

// DefaultCategory is the fallback category for runes not covered by any code
// point range. A dictionary must always define it, together with at least one
// unknown-word entry for it, so that unknown-word synthesis covers all input.
const DefaultCategory = "DEFAULT"

// CharCategory holds the unknown-word rules for one character category.
type CharCategory struct {
	// Invoke forces unknown-word synthesis even when the dictionary matched
	// at the same position.
	Invoke bool
	// Group enables greedy grouping of adjacent runes of the same category
	// into a single candidate.
	Group bool
	// Length caps the grouped run, in runes. Zero or negative means no
	// category-specific cap.
	Length int
}

// CodeRange assigns a category to an inclusive range of code points. Compat
// lists additional categories whose greedy runs may absorb these runes.
type CodeRange struct {
	From     rune
	To       rune
	Category string
	Compat   []string
}

// CharDefs classifies runes into character categories. Built once per
// dictionary and immutable afterwards.
type CharDefs struct {
	Categories map[string]CharCategory
	Ranges     []CodeRange
}

// Validate checks that every range references a defined category and that the
// DEFAULT fallback exists.
func (d *CharDefs) Validate() error {
	if _, ok := d.Categories[DefaultCategory]; !ok {
		return fmt.Errorf("character definitions missing %s category", DefaultCategory)
	}
	for _, r := range d.Ranges {
		if r.From > r.To {
			return fmt.Errorf("code range %#U..%#U is inverted", r.From, r.To)
		}
		if _, ok := d.Categories[r.Category]; !ok {
			return fmt.Errorf("code range %#U..%#U references undefined category %q", r.From, r.To, r.Category)
		}
		for _, c := range r.Compat {
			if _, ok := d.Categories[c]; !ok {
				return fmt.Errorf("code range %#U..%#U references undefined compatible category %q", r.From, r.To, c)
			}
		}
	}
	return nil
}

// CategoryNames returns the categories of r in range-definition order,
// without duplicates. Runes outside every range classify as DEFAULT.
func (d *CharDefs) CategoryNames(r rune) []string {
	var names []string
	for _, cr := range d.Ranges {
		if r >= cr.From && r <= cr.To && !contains(names, cr.Category) {
			names = append(names, cr.Category)
		}
	}
	if names == nil {
		names = []string{DefaultCategory}
	}
	return names
}

// InCategory reports whether r belongs to the named category, either directly
// or through a matching range's compatible-category list. Greedy grouping
// uses this to decide whether a run may continue.
func (d *CharDefs) InCategory(r rune, name string) bool {
	matched := false
	for _, cr := range d.Ranges {
		if r < cr.From || r > cr.To {
			continue
		}
		matched = true
		if cr.Category == name || contains(cr.Compat, name) {
			return true
		}
	}
	// Unranged runes classify as DEFAULT.
	return !matched && name == DefaultCategory
}

// Category returns the rules for the named category.
func (d *CharDefs) Category(name string) (CharCategory, bool) {
	c, ok := d.Categories[name]
	return c, ok
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
