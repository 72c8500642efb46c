package tokenizer

import (
	"iter"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// maxChunkSize is the hard upper bound on a chunk, in runes. Long inputs
	// are tokenized chunk by chunk so one call never materializes a lattice
	// over the whole text.
	maxChunkSize = 1024
	// chunkPreferredSize is where chunking starts looking for a sentence
	// boundary to split at.
	chunkPreferredSize = 500
)

// DefaultCacheSize is the default capacity of the chunk result cache.
// Entries hold the tokens of one chunk, so memory use is bounded by
// cache size times chunk size.
const DefaultCacheSize = 4096

// DefaultMaxUnknownLength is the default cap for grouped unknown words,
// in runes.
const DefaultMaxUnknownLength = 1024

// Config controls optional tokenizer behavior.
type Config struct {
	// CacheSize is the capacity of the LRU cache of per-chunk results.
	// Zero disables caching; use this when inputs rarely repeat.
	CacheSize int
	// MaxUnknownLength caps greedy unknown-word grouping, in runes.
	MaxUnknownLength int
	// BaseFormUnknown sets the base form of unknown tokens to their surface
	// instead of "*".
	BaseFormUnknown bool
}

// DefaultConfig returns the configuration used by New.
func DefaultConfig() Config {
	return Config{
		CacheSize:        DefaultCacheSize,
		MaxUnknownLength: DefaultMaxUnknownLength,
		BaseFormUnknown:  true,
	}
}

// Tokenizer performs Japanese morphological analysis against one compiled
// dictionary. It is read-only after construction; concurrent Tokenize calls
// on the same instance are safe because each call owns its lattice state.
type Tokenizer struct {
	dict  *Dict
	cfg   Config
	cache *lru.Cache[string, []Token]
}

// New creates a tokenizer with the default configuration.
func New(dict *Dict) *Tokenizer {
	return NewWithConfig(dict, DefaultConfig())
}

// NewWithConfig creates a tokenizer with explicit configuration.
func NewWithConfig(dict *Dict, cfg Config) *Tokenizer {
	if cfg.MaxUnknownLength <= 0 {
		cfg.MaxUnknownLength = DefaultMaxUnknownLength
	}
	t := &Tokenizer{dict: dict, cfg: cfg}
	if cfg.CacheSize > 0 {
		// LRU is thread-safe, so cached chunks are shared across
		// concurrent calls.
		t.cache, _ = lru.New[string, []Token](cfg.CacheSize)
	}
	return t
}

// Tokenize analyzes text and returns a lazy, finite sequence of tokens.
// The sequence is restartable: ranging over it again re-runs the analysis
// and yields the identical tokens. The lattice search for a chunk always
// completes before any of its tokens is yielded. Empty input yields an
// empty sequence. Returns ErrInvalidEncoding when text is not valid UTF-8.
func (t *Tokenizer) Tokenize(text string) (iter.Seq[Token], error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidEncoding
	}
	return func(yield func(Token) bool) {
		t.run(text, false, yield)
	}, nil
}

// Wakati analyzes text and returns only the surface forms. The lattice
// search and cost model are identical to Tokenize; only the morphological
// annotation of the winning path is skipped.
func (t *Tokenizer) Wakati(text string) (iter.Seq[string], error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidEncoding
	}
	return func(yield func(string) bool) {
		t.run(text, true, func(tok Token) bool {
			return yield(tok.Surface)
		})
	}, nil
}

// Dict returns the dictionary this tokenizer was built against.
func (t *Tokenizer) Dict() *Dict {
	return t.dict
}

// CacheEnabled reports whether the chunk result cache is active.
func (t *Tokenizer) CacheEnabled() bool {
	return t.cache != nil
}

// CacheLen returns the number of cached chunk results.
func (t *Tokenizer) CacheLen() int {
	if t.cache == nil {
		return 0
	}
	return t.cache.Len()
}

// ClearCache drops all cached chunk results.
func (t *Tokenizer) ClearCache() {
	if t.cache != nil {
		t.cache.Purge()
	}
}

// run drives chunked tokenization. Token offsets are rebased from
// chunk-relative to absolute rune offsets before being yielded.
func (t *Tokenizer) run(text string, wakati bool, yield func(Token) bool) {
	runes := []rune(text)
	base := 0
	byteOff := 0
	for base < len(runes) {
		n := chunkLen(runes[base:])
		chunkBytes := 0
		for _, r := range runes[base : base+n] {
			chunkBytes += utf8.RuneLen(r)
		}
		chunk := text[byteOff : byteOff+chunkBytes]

		tokens := t.tokenizeChunk(chunk, wakati)
		for _, tok := range tokens {
			tok.Start += base
			tok.End += base
			if !yield(tok) {
				return
			}
		}
		base += n
		byteOff += chunkBytes
	}
}

// tokenizeChunk runs the full lattice search over one chunk and returns
// chunk-relative tokens. Full-mode results are cached by chunk text; cached
// slices are never mutated, offsets are rebased on copies by run.
func (t *Tokenizer) tokenizeChunk(chunk string, wakati bool) []Token {
	if !wakati && t.cache != nil {
		if cached, ok := t.cache.Get(chunk); ok {
			return cached
		}
	}

	runes := []rune(chunk)
	n := len(runes)
	la := newLattice(t.dict, n)

	byteOff := 0
	for pos := 0; pos < n; pos++ {
		if la.hasPredecessors(pos) {
			t.addCandidates(la, chunk[byteOff:], runes, pos)
		}
		byteOff += utf8.RuneLen(runes[pos])
	}
	la.end(n)

	path := la.backtrace()
	tokens := make([]Token, 0, len(path))
	for _, i := range path {
		tokens = append(tokens, t.materialize(&la.nodes[i], wakati))
	}

	if !wakati && t.cache != nil {
		t.cache.Add(chunk, tokens)
	}
	return tokens
}

// addCandidates queries the dictionary and the unknown-word synthesizer for
// every candidate starting at pos and adds them to the lattice. Dictionary
// matches come first, shortest surface first, so tie-breaking stays pinned
// to the lookup ordering contract.
func (t *Tokenizer) addCandidates(la *lattice, rest string, runes []rune, pos int) {
	matches := t.dict.Lookup(rest)
	for _, m := range matches {
		e := m.Entry
		la.add(latticeNode{
			kind:     nodeKnown,
			start:    pos,
			end:      pos + m.Len,
			leftID:   e.LeftID,
			rightID:  e.RightID,
			wordCost: e.Cost,
			entryID:  m.ID,
			surface:  e.Surface,
		})
	}
	for _, c := range synthesizeUnknown(t.dict, runes, pos, len(matches) > 0, t.cfg.MaxUnknownLength) {
		for _, u := range c.entries {
			la.add(latticeNode{
				kind:     nodeUnknown,
				start:    pos,
				end:      pos + c.length,
				leftID:   u.LeftID,
				rightID:  u.RightID,
				wordCost: u.Cost,
				entryID:  -1,
				surface:  c.surface,
				unkPOS:   u.POS,
			})
		}
	}
}

func (t *Tokenizer) materialize(n *latticeNode, wakati bool) Token {
	tok := Token{
		Surface: n.surface,
		Start:   n.start,
		End:     n.end,
		Class:   ClassKnown,
	}
	if n.kind == nodeUnknown {
		tok.Class = ClassUnknown
	}
	if wakati {
		return tok
	}
	if n.kind == nodeKnown {
		e := t.dict.Entry(n.entryID)
		tok.POS = e.POS
		tok.InflType = e.InflType
		tok.InflForm = e.InflForm
		tok.BaseForm = e.BaseForm
		tok.Reading = e.Reading
		tok.Phonetic = e.Phonetic
		return tok
	}
	tok.POS = n.unkPOS
	tok.InflType = "*"
	tok.InflForm = "*"
	tok.Reading = "*"
	tok.Phonetic = "*"
	if t.cfg.BaseFormUnknown {
		tok.BaseForm = n.surface
	} else {
		tok.BaseForm = "*"
	}
	return tok
}

// chunkLen decides how many runes of the remaining input form the next
// chunk: everything when short, otherwise up to maxChunkSize preferring a
// sentence boundary after chunkPreferredSize.
func chunkLen(runes []rune) int {
	n := len(runes)
	if n <= chunkPreferredSize {
		return n
	}
	limit := n
	if limit > maxChunkSize {
		limit = maxChunkSize
	}
	for p := chunkPreferredSize; p < limit; p++ {
		if splittable(runes, p) {
			return p
		}
	}
	return limit
}

// splittable reports whether the chunk may end right before offset p, i.e.
// the preceding rune closes a sentence or a blank line just ended.
func splittable(runes []rune, p int) bool {
	switch runes[p-1] {
	case '、', '。', ',', '.', '？', '?', '！', '!':
		return true
	}
	if p >= 2 && runes[p-1] == '\n' && runes[p-2] == '\n' {
		return true
	}
	return false
}
