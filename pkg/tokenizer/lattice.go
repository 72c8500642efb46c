package tokenizer

import (
	"fmt"
	"math"
)

type nodeKind uint8

const (
	nodeBOS nodeKind = iota
	nodeEOS
	nodeKnown
	nodeUnknown
)

// latticeNode is the tagged variant shared by dictionary-sourced and
// synthesized candidates. The search only touches the common
// {start, end, leftID, rightID, wordCost} shape; entryID resolves full
// morphology for known nodes, unkPOS carries it for unknown ones.
type latticeNode struct {
	kind     nodeKind
	start    int
	end      int
	leftID   uint16
	rightID  uint16
	wordCost int16
	entryID  int32
	surface  string
	unkPOS   string

	// minimum cumulative cost from BOS, and the arena index of the
	// predecessor achieving it.
	totalCost int32
	prev      int32
}

// lattice holds the candidate graph for one chunk of input. Nodes live in a
// flat arena and refer to each other by index, so the whole structure is
// dropped in one piece after backtrace. A lattice borrows the Dict; it never
// mutates it.
type lattice struct {
	dict *Dict
	// nodes[0] is BOS.
	nodes []latticeNode
	// ends[i] lists arena indices of nodes ending at rune offset i.
	ends [][]int32
	eos  int32
}

// newLattice prepares a lattice for a chunk of size runes.
func newLattice(dict *Dict, size int) *lattice {
	la := &lattice{
		dict:  dict,
		nodes: make([]latticeNode, 1, size*2+2),
		ends:  make([][]int32, size+1),
		eos:   -1,
	}
	la.nodes[0] = latticeNode{kind: nodeBOS, totalCost: 0, prev: -1}
	la.ends[0] = append(la.ends[0], 0)
	return la
}

// hasPredecessors reports whether any node ends at the given offset. Offsets
// without predecessors are unreachable and need no candidates.
func (la *lattice) hasPredecessors(offset int) bool {
	return len(la.ends[offset]) > 0
}

// add finalizes the node's cumulative cost against every node ending at its
// start offset and stores it in the arena. Positions are processed left to
// right, so all predecessors are final by the time a candidate arrives; a
// single pass suffices and ties keep the first-processed predecessor.
func (la *lattice) add(n latticeNode) {
	preds := la.ends[n.start]
	if len(preds) == 0 {
		panic(fmt.Sprintf("tokenizer: lattice node %q added at unreachable offset %d", n.surface, n.start))
	}
	best := int32(math.MaxInt32)
	bestPrev := int32(-1)
	for _, pi := range preds {
		p := &la.nodes[pi]
		c := p.totalCost + int32(la.dict.matrix.Cost(p.rightID, n.leftID)) + int32(n.wordCost)
		if c < best {
			best = c
			bestPrev = pi
		}
	}
	n.totalCost = best
	n.prev = bestPrev

	idx := int32(len(la.nodes))
	la.nodes = append(la.nodes, n)
	la.ends[n.end] = append(la.ends[n.end], idx)
}

// end closes the lattice with the EOS node at the given offset. Unknown-word
// synthesis guarantees every offset is reachable; failing to reach EOS means
// the dictionary's coverage rules are broken, which is an internal
// consistency bug, not an input condition.
func (la *lattice) end(offset int) {
	if !la.hasPredecessors(offset) {
		panic(fmt.Sprintf("tokenizer: lattice has no path reaching end of input at offset %d", offset))
	}
	la.add(latticeNode{kind: nodeEOS, start: offset, end: offset, prev: -1})
	la.eos = int32(len(la.nodes) - 1)
}

// backtrace follows predecessor indices from EOS to BOS and returns the
// interior node indices in left-to-right order.
func (la *lattice) backtrace() []int32 {
	var path []int32
	for i := la.nodes[la.eos].prev; i > 0; i = la.nodes[i].prev {
		path = append(path, i)
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}
