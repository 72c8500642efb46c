package tokenizer

import "fmt"

// NodeClass identifies where a token came from.
type NodeClass int

const (
	// ClassKnown marks tokens backed by a dictionary entry.
	ClassKnown NodeClass = iota
	// ClassUnknown marks tokens synthesized from character-category heuristics.
	ClassUnknown
)

func (c NodeClass) String() string {
	switch c {
	case ClassKnown:
		return "KNOWN"
	case ClassUnknown:
		return "UNKNOWN"
	}
	return "INVALID"
}

// Token is one morpheme of the analyzed text. Start and End are rune offsets
// into the original input; concatenating the surfaces of all tokens in order
// reconstructs the input exactly. Tokens are plain values and never mutated
// after the lattice search that produced them.
type Token struct {
	Surface  string
	POS      string
	InflType string
	InflForm string
	BaseForm string
	Reading  string
	Phonetic string
	Start    int
	End      int
	Class    NodeClass
}

// String formats the token as "surface\tPOS,inflType,inflForm,baseForm,reading,phonetic",
// the line format emitted by MeCab-style analyzers.
func (t Token) String() string {
	return fmt.Sprintf("%s\t%s,%s,%s,%s,%s,%s",
		t.Surface, t.POS, t.InflType, t.InflForm, t.BaseForm, t.Reading, t.Phonetic)
}
