package tokenizer

// UnknownEntry is the morphological template applied to a synthesized
// unknown-word span of its character category. Costs are typically higher
// than dictionary word costs so that known words win when both exist.
type UnknownEntry struct {
	LeftID  uint16
	RightID uint16
	Cost    int16
	POS     string
}

// unknownCandidate is one synthesized span starting at the probed position.
// Each of the category's entries becomes a separate lattice node over the
// same span.
type unknownCandidate struct {
	surface string
	length  int
	entries []UnknownEntry
}

// synthesizeUnknown builds unknown-word candidates for the rune at
// runes[pos]. A category contributes candidates when the dictionary found
// nothing at this position or the category is marked Invoke, so dictionary
// matches are complemented, never suppressed. Grouping categories contribute
// a greedy same-category run plus a single-rune candidate; non-grouping
// categories contribute the single rune only. maxLen caps every grouped run.
func synthesizeUnknown(d *Dict, runes []rune, pos int, matched bool, maxLen int) []unknownCandidate {
	var candidates []unknownCandidate
	for _, name := range d.chars.CategoryNames(runes[pos]) {
		cat, ok := d.chars.Category(name)
		if !ok {
			continue
		}
		if matched && !cat.Invoke {
			continue
		}
		entries := d.UnknownEntries(name)
		if len(entries) == 0 {
			continue
		}

		if cat.Group {
			limit := cat.Length
			if limit <= 0 || limit > maxLen {
				limit = maxLen
			}
			n := 1
			for pos+n < len(runes) && n < limit && d.chars.InCategory(runes[pos+n], name) {
				n++
			}
			if n > 1 {
				candidates = append(candidates, unknownCandidate{
					surface: string(runes[pos : pos+n]),
					length:  n,
					entries: entries,
				})
			}
		}

		// The single-rune candidate keeps short segmentations comparable
		// against the grouped run.
		candidates = append(candidates, unknownCandidate{
			surface: string(runes[pos : pos+1]),
			length:  1,
			entries: entries,
		})
	}
	return candidates
}
